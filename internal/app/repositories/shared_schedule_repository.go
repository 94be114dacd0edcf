package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/db"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
	"github.com/mkaraca/courseflow/internal/pkg/dberrors"
)

// SharedScheduleRepository reads and writes another user's schedule on
// behalf of a validated share token. Unlike every other repository its
// queries are scoped by owner ID rather than by the caller's identity, so
// it is a deliberately separate type: it is constructed only in bootstrap
// and handed only to the sharing service, never to controllers.
type SharedScheduleRepository struct {
	db *pgxpool.Pool
}

// NewSharedScheduleRepository creates a new SharedScheduleRepository
func NewSharedScheduleRepository(db *pgxpool.Pool) *SharedScheduleRepository {
	return &SharedScheduleRepository{
		db: db,
	}
}

// ListRequirementsByOwner returns the owner's requirements for the shared
// view, newest first.
func (r *SharedScheduleRepository) ListRequirementsByOwner(ctx context.Context, ownerID int64) ([]*models.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing shared requirements: %w", err)
	}
	defer rows.Close()

	reqs := make([]*models.Requirement, 0)
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning shared requirement row: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shared requirement rows: %w", err)
	}

	return reqs, nil
}

// ListSemestersByOwner returns the owner's semesters in chronological order
func (r *SharedScheduleRepository) ListSemestersByOwner(ctx context.Context, ownerID int64) ([]*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE user_id = $1 ORDER BY start_date ASC, id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing shared semesters: %w", err)
	}
	defer rows.Close()

	sems := make([]*models.Semester, 0)
	for rows.Next() {
		sem, err := scanSemester(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning shared semester row: %w", err)
		}
		sems = append(sems, sem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shared semester rows: %w", err)
	}

	return sems, nil
}

// ListScheduledCoursesByOwner returns the owner's placements ordered by
// semester and position.
func (r *SharedScheduleRepository) ListScheduledCoursesByOwner(ctx context.Context, ownerID int64) ([]*models.ScheduledCourse, error) {
	query := `SELECT ` + scheduledCourseColumns + ` FROM scheduled_courses
		WHERE user_id = $1 ORDER BY semester_id ASC, position_index ASC, id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing shared scheduled courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.ScheduledCourse, 0)
	for rows.Next() {
		course, err := scanScheduledCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning shared scheduled course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shared scheduled course rows: %w", err)
	}

	return courses, nil
}

// ReplaceCourse moves a course within the owner's schedule by deleting any
// existing placement of the code and inserting the new one, inside a
// single transaction. The schedule is never observable in the
// deleted-but-not-reinserted state.
func (r *SharedScheduleRepository) ReplaceCourse(ctx context.Context, course *models.ScheduledCourse) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM scheduled_courses WHERE user_id = $1 AND course_code = $2`,
			course.UserID, course.CourseCode)
		if err != nil {
			return fmt.Errorf("error removing prior placement: %w", err)
		}

		now := time.Now()
		err = tx.QueryRow(ctx, `
			INSERT INTO scheduled_courses (user_id, semester_id, course_code, course_name, credits, status, position_index, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`,
			course.UserID, course.SemesterID, course.CourseCode, course.CourseName,
			course.Credits, course.Status, course.PositionIndex, now,
		).Scan(&course.ID)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrSemesterNotFound
			}
			return fmt.Errorf("error inserting placement: %w", err)
		}

		course.CreatedAt = now
		return nil
	})
}

// RemoveCourse deletes the owner's placement of a course code. Removing a
// code that is not scheduled is not an error.
func (r *SharedScheduleRepository) RemoveCourse(ctx context.Context, ownerID int64, courseCode string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM scheduled_courses WHERE user_id = $1 AND course_code = $2`, ownerID, courseCode)
	if err != nil {
		return fmt.Errorf("error removing shared course: %w", err)
	}
	return nil
}
