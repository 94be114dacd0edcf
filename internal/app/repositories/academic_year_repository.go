package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/db"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
)

// AcademicYearRepository handles database operations for academic years
type AcademicYearRepository struct {
	db *pgxpool.Pool
}

// NewAcademicYearRepository creates a new AcademicYearRepository
func NewAcademicYearRepository(db *pgxpool.Pool) *AcademicYearRepository {
	return &AcademicYearRepository{
		db: db,
	}
}

const academicYearColumns = "id, user_id, name, start_date, end_date, is_active, created_at"

func scanAcademicYear(row pgx.Row) (*models.AcademicYear, error) {
	var year models.AcademicYear
	err := row.Scan(
		&year.ID,
		&year.UserID,
		&year.Name,
		&year.StartDate,
		&year.EndDate,
		&year.IsActive,
		&year.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &year, nil
}

// Create inserts a new academic year and sets the generated fields on the model
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	query := `
		INSERT INTO academic_years (user_id, name, start_date, end_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		year.UserID, year.Name, year.StartDate, year.EndDate, year.IsActive, now,
	).Scan(&year.ID)
	if err != nil {
		return fmt.Errorf("error creating academic year: %w", err)
	}

	year.CreatedAt = now
	return nil
}

// GetByID retrieves an academic year by ID, scoped to its owner
func (r *AcademicYearRepository) GetByID(ctx context.Context, id, userID int64) (*models.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + ` FROM academic_years WHERE id = $1 AND user_id = $2`

	year, err := scanAcademicYear(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}
	return year, nil
}

// ListByUser returns all of a user's academic years, earliest start first
func (r *AcademicYearRepository) ListByUser(ctx context.Context, userID int64) ([]*models.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + ` FROM academic_years WHERE user_id = $1 ORDER BY start_date ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing academic years: %w", err)
	}
	defer rows.Close()

	years := make([]*models.AcademicYear, 0)
	for rows.Next() {
		year, err := scanAcademicYear(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning academic year row: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating academic year rows: %w", err)
	}

	return years, nil
}

// Update changes an academic year's basic fields, scoped to its owner
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	query := `
		UPDATE academic_years
		SET name = $1, start_date = $2, end_date = $3
		WHERE id = $4 AND user_id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, year.Name, year.StartDate, year.EndDate, year.ID, year.UserID)
	if err != nil {
		return fmt.Errorf("error updating academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}

// SetActive marks one academic year active and deactivates the user's
// others, in a single transaction so two years are never active at once.
func (r *AcademicYearRepository) SetActive(ctx context.Context, id, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE academic_years SET is_active = false WHERE user_id = $1 AND is_active = true`, userID); err != nil {
			return fmt.Errorf("error deactivating academic years: %w", err)
		}

		cmdTag, err := tx.Exec(ctx,
			`UPDATE academic_years SET is_active = true WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return fmt.Errorf("error activating academic year: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrAcademicYearNotFound
		}
		return nil
	})
}

// Delete removes an academic year, scoped to its owner. Semesters and
// placements beneath it go with it via ON DELETE CASCADE.
func (r *AcademicYearRepository) Delete(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM academic_years WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}
