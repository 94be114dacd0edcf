package models

import (
	"time"
)

// ScheduleShare defines a share link record based on the 'schedule_shares' table.
// The token is a bearer capability: possession implies the granted permission level.
type ScheduleShare struct {
	ID              int64           `json:"id" db:"id"`
	OwnerID         int64           `json:"ownerId" db:"owner_id"`
	ShareToken      string          `json:"shareToken" db:"share_token"`
	PermissionLevel PermissionLevel `json:"permissionLevel" db:"permission_level" example:"view"`
	Description     *string         `json:"description,omitempty" db:"description"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	LastAccessed    *time.Time      `json:"lastAccessed,omitempty" db:"last_accessed"`
	AccessCount     int64           `json:"accessCount" db:"access_count"`
}

// IsExpired reports whether the share is past its expiration.
// A share without an expiration never expires.
func (s *ScheduleShare) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// ShareValidation is what a successful token validation exposes to callers.
// The token value itself is deliberately absent so it cannot leak into
// render paths or logs.
type ShareValidation struct {
	OwnerID         int64           `json:"ownerId"`
	PermissionLevel PermissionLevel `json:"permissionLevel"`
	Description     *string         `json:"description,omitempty"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
