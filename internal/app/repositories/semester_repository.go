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
)

// SemesterRepository handles database operations for semesters
type SemesterRepository struct {
	db *pgxpool.Pool
}

// NewSemesterRepository creates a new SemesterRepository
func NewSemesterRepository(db *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		db: db,
	}
}

const semesterColumns = "id, user_id, academic_year_id, name, term_type, year, start_date, end_date, max_credits, created_at"

func scanSemester(row pgx.Row) (*models.Semester, error) {
	var sem models.Semester
	err := row.Scan(
		&sem.ID,
		&sem.UserID,
		&sem.AcademicYearID,
		&sem.Name,
		&sem.TermType,
		&sem.Year,
		&sem.StartDate,
		&sem.EndDate,
		&sem.MaxCredits,
		&sem.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sem, nil
}

// Create inserts a new semester and sets the generated fields on the model
func (r *SemesterRepository) Create(ctx context.Context, sem *models.Semester) error {
	query := `
		INSERT INTO semesters (user_id, academic_year_id, name, term_type, year, start_date, end_date, max_credits, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		sem.UserID, sem.AcademicYearID, sem.Name, sem.TermType, sem.Year,
		sem.StartDate, sem.EndDate, sem.MaxCredits, now,
	).Scan(&sem.ID)
	if err != nil {
		return fmt.Errorf("error creating semester: %w", err)
	}

	sem.CreatedAt = now
	return nil
}

// GetByID retrieves a semester by ID, scoped to its owner
func (r *SemesterRepository) GetByID(ctx context.Context, id, userID int64) (*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE id = $1 AND user_id = $2`

	sem, err := scanSemester(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}
	return sem, nil
}

// ListByUser returns all of a user's semesters in chronological order
func (r *SemesterRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE user_id = $1 ORDER BY start_date ASC, id ASC`
	return r.querySemesters(ctx, query, userID)
}

// ListByAcademicYear returns the semesters of one academic year in
// chronological order, scoped to the owner.
func (r *SemesterRepository) ListByAcademicYear(ctx context.Context, academicYearID, userID int64) ([]*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters
		WHERE academic_year_id = $1 AND user_id = $2
		ORDER BY start_date ASC, id ASC`
	return r.querySemesters(ctx, query, academicYearID, userID)
}

func (r *SemesterRepository) querySemesters(ctx context.Context, query string, args ...interface{}) ([]*models.Semester, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing semesters: %w", err)
	}
	defer rows.Close()

	sems := make([]*models.Semester, 0)
	for rows.Next() {
		sem, err := scanSemester(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning semester row: %w", err)
		}
		sems = append(sems, sem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating semester rows: %w", err)
	}

	return sems, nil
}

// Update changes a semester's basic fields, scoped to its owner
func (r *SemesterRepository) Update(ctx context.Context, sem *models.Semester) error {
	query := `
		UPDATE semesters
		SET name = $1, term_type = $2, year = $3, start_date = $4, end_date = $5, max_credits = $6
		WHERE id = $7 AND user_id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		sem.Name, sem.TermType, sem.Year, sem.StartDate, sem.EndDate, sem.MaxCredits,
		sem.ID, sem.UserID,
	)
	if err != nil {
		return fmt.Errorf("error updating semester: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSemesterNotFound
	}
	return nil
}

// Delete removes a semester, scoped to its owner. Course placements in it
// go with it via ON DELETE CASCADE.
func (r *SemesterRepository) Delete(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM semesters WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting semester: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSemesterNotFound
	}
	return nil
}
