package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
)

// RequirementRepository handles database operations for degree requirements.
// Course options live in a JSONB column so the alternatives list stays a
// single row write.
type RequirementRepository struct {
	db *pgxpool.Pool
}

// NewRequirementRepository creates a new RequirementRepository
func NewRequirementRepository(db *pgxpool.Pool) *RequirementRepository {
	return &RequirementRepository{
		db: db,
	}
}

const requirementColumns = "id, user_id, title, category, description, priority, credits, is_completed, course_options, created_at, updated_at"

func scanRequirement(row pgx.Row) (*models.Requirement, error) {
	var req models.Requirement
	var optionsJSON []byte

	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Title,
		&req.Category,
		&req.Description,
		&req.Priority,
		&req.Credits,
		&req.IsCompleted,
		&optionsJSON,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CourseOptions = []models.CourseOption{}
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &req.CourseOptions); err != nil {
			return nil, fmt.Errorf("error decoding course options: %w", err)
		}
	}
	return &req, nil
}

// Create inserts a new requirement and sets the generated fields on the model
func (r *RequirementRepository) Create(ctx context.Context, req *models.Requirement) error {
	optionsJSON, err := json.Marshal(req.CourseOptions)
	if err != nil {
		return fmt.Errorf("error encoding course options: %w", err)
	}

	query := `
		INSERT INTO requirements (user_id, title, category, description, priority, credits, is_completed, course_options, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now()
	err = r.db.QueryRow(ctx, query,
		req.UserID, req.Title, req.Category, req.Description,
		req.Priority, req.Credits, req.IsCompleted, optionsJSON, now,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("error creating requirement: %w", err)
	}

	req.CreatedAt = now
	req.UpdatedAt = now
	return nil
}

// GetByID retrieves a requirement by ID, scoped to its owner
func (r *RequirementRepository) GetByID(ctx context.Context, id, userID int64) (*models.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements WHERE id = $1 AND user_id = $2`

	req, err := scanRequirement(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequirementNotFound
		}
		return nil, fmt.Errorf("error retrieving requirement: %w", err)
	}
	return req, nil
}

// ListByUser returns all of a user's requirements, newest first
func (r *RequirementRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryRequirements(ctx, query, userID)
}

// ListIncompleteForPlanning returns a user's incomplete requirements
// ordered for the planner view: category, then highest priority first.
func (r *RequirementRepository) ListIncompleteForPlanning(ctx context.Context, userID int64) ([]*models.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements
		WHERE user_id = $1 AND is_completed = false
		ORDER BY category ASC, priority DESC`
	return r.queryRequirements(ctx, query, userID)
}

func (r *RequirementRepository) queryRequirements(ctx context.Context, query string, args ...interface{}) ([]*models.Requirement, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing requirements: %w", err)
	}
	defer rows.Close()

	reqs := make([]*models.Requirement, 0)
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning requirement row: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requirement rows: %w", err)
	}

	return reqs, nil
}

// Update persists the full state of a requirement, scoped to its owner
func (r *RequirementRepository) Update(ctx context.Context, req *models.Requirement) error {
	optionsJSON, err := json.Marshal(req.CourseOptions)
	if err != nil {
		return fmt.Errorf("error encoding course options: %w", err)
	}

	query := `
		UPDATE requirements
		SET title = $1, category = $2, description = $3, priority = $4,
		    credits = $5, is_completed = $6, course_options = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`

	now := time.Now()
	cmdTag, err := r.db.Exec(ctx, query,
		req.Title, req.Category, req.Description, req.Priority,
		req.Credits, req.IsCompleted, optionsJSON, now, req.ID, req.UserID,
	)
	if err != nil {
		return fmt.Errorf("error updating requirement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequirementNotFound
	}

	req.UpdatedAt = now
	return nil
}

// SetCompletion flips the completion flag, scoped to its owner
func (r *RequirementRepository) SetCompletion(ctx context.Context, id, userID int64, completed bool) error {
	query := `UPDATE requirements SET is_completed = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	cmdTag, err := r.db.Exec(ctx, query, completed, time.Now(), id, userID)
	if err != nil {
		return fmt.Errorf("error setting requirement completion: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequirementNotFound
	}
	return nil
}

// Delete removes a requirement, scoped to its owner
func (r *RequirementRepository) Delete(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM requirements WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting requirement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequirementNotFound
	}
	return nil
}
