package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
	"github.com/mkaraca/courseflow/internal/pkg/dberrors"
)

// ShareRepository handles database operations for share links
type ShareRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewShareRepository creates a new ShareRepository
func NewShareRepository(db *pgxpool.Pool) *ShareRepository {
	return &ShareRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const shareColumns = "id, owner_id, share_token, permission_level, description, expires_at, created_at, last_accessed, access_count"

func scanShare(row pgx.Row) (*models.ScheduleShare, error) {
	var share models.ScheduleShare
	err := row.Scan(
		&share.ID,
		&share.OwnerID,
		&share.ShareToken,
		&share.PermissionLevel,
		&share.Description,
		&share.ExpiresAt,
		&share.CreatedAt,
		&share.LastAccessed,
		&share.AccessCount,
	)
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// Create inserts a new share link with a freshly generated token and sets
// the generated fields on the model.
func (r *ShareRepository) Create(ctx context.Context, share *models.ScheduleShare) error {
	share.ShareToken = uuid.New().String()
	now := time.Now()

	sql, args, err := r.sb.Insert("schedule_shares").
		Columns("owner_id", "share_token", "permission_level", "description", "expires_at", "created_at", "access_count").
		Values(share.OwnerID, share.ShareToken, share.PermissionLevel, share.Description, share.ExpiresAt, now, 0).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create share query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&share.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "schedule_shares_share_token_key") {
			// UUID collision, practically unreachable
			return fmt.Errorf("error creating share: token collision: %w", err)
		}
		return fmt.Errorf("error creating share: %w", err)
	}

	share.CreatedAt = now
	share.AccessCount = 0
	return nil
}

// GetByToken retrieves a share link by its token value
func (r *ShareRepository) GetByToken(ctx context.Context, token string) (*models.ScheduleShare, error) {
	query := `SELECT ` + shareColumns + ` FROM schedule_shares WHERE share_token = $1`

	share, err := scanShare(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrShareNotFound
		}
		return nil, fmt.Errorf("error retrieving share by token: %w", err)
	}
	return share, nil
}

// GetByID retrieves a share link by ID, scoped to its owner
func (r *ShareRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.ScheduleShare, error) {
	query := `SELECT ` + shareColumns + ` FROM schedule_shares WHERE id = $1 AND owner_id = $2`

	share, err := scanShare(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrShareNotFound
		}
		return nil, fmt.Errorf("error retrieving share: %w", err)
	}
	return share, nil
}

// ListByOwner returns all of an owner's share links, newest first
func (r *ShareRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.ScheduleShare, error) {
	query := `SELECT ` + shareColumns + ` FROM schedule_shares WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing shares: %w", err)
	}
	defer rows.Close()

	shares := make([]*models.ScheduleShare, 0)
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning share row: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating share rows: %w", err)
	}

	return shares, nil
}

// Update changes a share's settings. Nil fields in the patch are left as-is.
// The token itself is immutable; revoke and recreate to rotate it.
func (r *ShareRepository) Update(ctx context.Context, id, ownerID int64, permission *models.PermissionLevel, description *string, expiresAt *time.Time) error {
	builder := r.sb.Update("schedule_shares").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID})

	changed := false
	if permission != nil {
		builder = builder.Set("permission_level", *permission)
		changed = true
	}
	if description != nil {
		builder = builder.Set("description", *description)
		changed = true
	}
	if expiresAt != nil {
		builder = builder.Set("expires_at", *expiresAt)
		changed = true
	}
	if !changed {
		return nil
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update share query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating share: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrShareNotFound
	}
	return nil
}

// Delete revokes a share link, scoped to its owner
func (r *ShareRepository) Delete(ctx context.Context, id, ownerID int64) error {
	sql, args, err := r.sb.Delete("schedule_shares").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete share query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting share: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrShareNotFound
	}
	return nil
}

// RecordAccess bumps the access counter and stamps the access time for a
// validated share. Runs after the expiry check, never before.
func (r *ShareRepository) RecordAccess(ctx context.Context, id int64) error {
	query := `UPDATE schedule_shares SET access_count = access_count + 1, last_accessed = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("error recording share access: %w", err)
	}
	return nil
}
