package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
	"github.com/mkaraca/courseflow/internal/pkg/dberrors"
)

// ScheduledCourseRepository handles database operations for course
// placements. The table enforces at most one placement per
// (user_id, course_code).
type ScheduledCourseRepository struct {
	db *pgxpool.Pool
}

// NewScheduledCourseRepository creates a new ScheduledCourseRepository
func NewScheduledCourseRepository(db *pgxpool.Pool) *ScheduledCourseRepository {
	return &ScheduledCourseRepository{
		db: db,
	}
}

const scheduledCourseColumns = "id, user_id, semester_id, course_code, course_name, credits, status, position_index, created_at"

func scanScheduledCourse(row pgx.Row) (*models.ScheduledCourse, error) {
	var course models.ScheduledCourse
	err := row.Scan(
		&course.ID,
		&course.UserID,
		&course.SemesterID,
		&course.CourseCode,
		&course.CourseName,
		&course.Credits,
		&course.Status,
		&course.PositionIndex,
		&course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create places a course into a semester and sets the generated fields on
// the model. A second placement of the same course code for the same user
// is rejected.
func (r *ScheduledCourseRepository) Create(ctx context.Context, course *models.ScheduledCourse) error {
	query := `
		INSERT INTO scheduled_courses (user_id, semester_id, course_code, course_name, credits, status, position_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		course.UserID, course.SemesterID, course.CourseCode, course.CourseName,
		course.Credits, course.Status, course.PositionIndex, now,
	).Scan(&course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "scheduled_courses_user_id_course_code_key") {
			return apperrors.NewCustomError(apperrors.ErrConflict, "course is already scheduled")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSemesterNotFound
		}
		return fmt.Errorf("error scheduling course: %w", err)
	}

	course.CreatedAt = now
	return nil
}

// GetByID retrieves a placement by ID, scoped to its owner
func (r *ScheduledCourseRepository) GetByID(ctx context.Context, id, userID int64) (*models.ScheduledCourse, error) {
	query := `SELECT ` + scheduledCourseColumns + ` FROM scheduled_courses WHERE id = $1 AND user_id = $2`

	course, err := scanScheduledCourse(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduledCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving scheduled course: %w", err)
	}
	return course, nil
}

// ListByUser returns all of a user's placements ordered by semester and position
func (r *ScheduledCourseRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ScheduledCourse, error) {
	query := `SELECT ` + scheduledCourseColumns + ` FROM scheduled_courses
		WHERE user_id = $1 ORDER BY semester_id ASC, position_index ASC, id ASC`
	return r.queryScheduledCourses(ctx, query, userID)
}

// ListBySemester returns the placements of one semester in position order,
// scoped to the owner.
func (r *ScheduledCourseRepository) ListBySemester(ctx context.Context, semesterID, userID int64) ([]*models.ScheduledCourse, error) {
	query := `SELECT ` + scheduledCourseColumns + ` FROM scheduled_courses
		WHERE semester_id = $1 AND user_id = $2 ORDER BY position_index ASC, id ASC`
	return r.queryScheduledCourses(ctx, query, semesterID, userID)
}

func (r *ScheduledCourseRepository) queryScheduledCourses(ctx context.Context, query string, args ...interface{}) ([]*models.ScheduledCourse, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing scheduled courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.ScheduledCourse, 0)
	for rows.Next() {
		course, err := scanScheduledCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning scheduled course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheduled course rows: %w", err)
	}

	return courses, nil
}

// Move relocates a placement to another semester, scoped to its owner
func (r *ScheduledCourseRepository) Move(ctx context.Context, id, userID, semesterID int64, positionIndex int) error {
	query := `UPDATE scheduled_courses SET semester_id = $1, position_index = $2 WHERE id = $3 AND user_id = $4`

	cmdTag, err := r.db.Exec(ctx, query, semesterID, positionIndex, id, userID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSemesterNotFound
		}
		return fmt.Errorf("error moving scheduled course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduledCourseNotFound
	}
	return nil
}

// UpdateStatus changes a placement's status, scoped to its owner
func (r *ScheduledCourseRepository) UpdateStatus(ctx context.Context, id, userID int64, status models.CourseStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE scheduled_courses SET status = $1 WHERE id = $2 AND user_id = $3`, status, id, userID)
	if err != nil {
		return fmt.Errorf("error updating scheduled course status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduledCourseNotFound
	}
	return nil
}

// Delete removes a placement, scoped to its owner
func (r *ScheduledCourseRepository) Delete(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM scheduled_courses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting scheduled course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduledCourseNotFound
	}
	return nil
}

// SumCreditsBySemester totals the credits of a semester's placements with
// countable status (planned, enrolled, completed; dropped is excluded).
func (r *ScheduledCourseRepository) SumCreditsBySemester(ctx context.Context, semesterID, userID int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(credits), 0) FROM scheduled_courses
		WHERE semester_id = $1 AND user_id = $2 AND status IN ('planned', 'enrolled', 'completed')
	`

	var total int
	if err := r.db.QueryRow(ctx, query, semesterID, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("error summing semester credits: %w", err)
	}
	return total, nil
}
