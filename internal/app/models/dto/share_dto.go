package dto

import (
	"time"

	"github.com/mkaraca/courseflow/internal/app/models"
)

// CreateShareRequest is the payload for creating a share link
type CreateShareRequest struct {
	PermissionLevel models.PermissionLevel `json:"permissionLevel" binding:"required" example:"view" enums:"view,edit"`
	Description     *string                `json:"description,omitempty" example:"Spring advising"`
	ExpiresAt       *time.Time             `json:"expiresAt,omitempty"`
}

// UpdateShareRequest is the payload for updating a share's settings.
// Nil fields are left unchanged.
type UpdateShareRequest struct {
	PermissionLevel *models.PermissionLevel `json:"permissionLevel,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	ExpiresAt       *time.Time              `json:"expiresAt,omitempty"`
}

// ShareResponse is the owner-facing view of one share link
type ShareResponse struct {
	ID              int64                  `json:"id"`
	ShareToken      string                 `json:"shareToken"`
	PermissionLevel models.PermissionLevel `json:"permissionLevel"`
	Description     *string                `json:"description,omitempty"`
	ExpiresAt       *time.Time             `json:"expiresAt,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastAccessed    *time.Time             `json:"lastAccessed,omitempty"`
	AccessCount     int64                  `json:"accessCount"`
	ShareURL        string                 `json:"shareUrl"`
	IsExpired       bool                   `json:"isExpired"`
}

// NewShareResponse builds the owner-facing view from a share record
func NewShareResponse(share *models.ScheduleShare, baseURL string) ShareResponse {
	return ShareResponse{
		ID:              share.ID,
		ShareToken:      share.ShareToken,
		PermissionLevel: share.PermissionLevel,
		Description:     share.Description,
		ExpiresAt:       share.ExpiresAt,
		CreatedAt:       share.CreatedAt,
		LastAccessed:    share.LastAccessed,
		AccessCount:     share.AccessCount,
		ShareURL:        baseURL + "/?share=" + share.ShareToken,
		IsExpired:       share.IsExpired(time.Now()),
	}
}

// MoveSharedCourseRequest is the mutation payload for the shared-schedule
// endpoint. A nil ToSemesterID removes the course from the schedule.
type MoveSharedCourseRequest struct {
	CourseID     string            `json:"courseId" binding:"required" example:"MATH 101"`
	ToSemesterID *int64            `json:"toSemesterId"`
	CourseData   *SharedCourseData `json:"courseData,omitempty"`
}

// SharedCourseData carries optional display fields for a moved course.
// Name falls back to Title, then to the course code; Credits falls back
// to CreditHours, then to 3.
type SharedCourseData struct {
	Name        string `json:"name,omitempty"`
	Title       string `json:"title,omitempty"`
	Credits     int    `json:"credits,omitempty"`
	CreditHours int    `json:"credit_hours,omitempty"`
}
