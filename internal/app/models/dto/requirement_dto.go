package dto

import (
	"time"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/catalog"
)

// CreateRequirementRequest is the payload for creating a requirement
type CreateRequirementRequest struct {
	Title         string                `json:"title" binding:"required" example:"Quantitative Reasoning"`
	Category      string                `json:"category" binding:"required" example:"Core"`
	Description   *string               `json:"description,omitempty"`
	Priority      int                   `json:"priority" example:"3"`
	Credits       int                   `json:"credits" example:"3"`
	CourseOptions []models.CourseOption `json:"courseOptions"`
}

// UpdateRequirementRequest is the payload for updating a requirement.
// Nil fields are left unchanged.
type UpdateRequirementRequest struct {
	Title         *string                `json:"title,omitempty"`
	Category      *string                `json:"category,omitempty"`
	Description   *string                `json:"description,omitempty"`
	Priority      *int                   `json:"priority,omitempty"`
	Credits       *int                   `json:"credits,omitempty"`
	IsCompleted   *bool                  `json:"isCompleted,omitempty"`
	CourseOptions *[]models.CourseOption `json:"courseOptions,omitempty"`
}

// EnrichedRequirement is a requirement whose course options have been
// merged with catalog display data.
type EnrichedRequirement struct {
	ID            int64                    `json:"id"`
	Title         string                   `json:"title"`
	Category      string                   `json:"category"`
	Description   *string                  `json:"description,omitempty"`
	Priority      int                      `json:"priority"`
	Credits       int                      `json:"credits"`
	IsCompleted   bool                     `json:"isCompleted"`
	CourseOptions []catalog.EnhancedOption `json:"courseOptions"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// PlannerCourse is one schedulable course option inside a planner group
type PlannerCourse struct {
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Credits          int      `json:"credits"`
	Semesters        []string `json:"semesters"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	RequirementID    int64    `json:"requirementId"`
	RequirementTitle string   `json:"requirementTitle"`
	FromCatalog      bool     `json:"fromCatalog"`
}

// PlannerGroup is one incomplete requirement with its course alternatives,
// shaped for the semester-planning view.
type PlannerGroup struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
	Credits     int             `json:"credits"`
	Courses     []PlannerCourse `json:"courses"`
}

// ScheduleCandidate is one catalog course that can satisfy an incomplete
// requirement.
type ScheduleCandidate struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Credits          int    `json:"credits"`
	RequirementID    int64  `json:"requirementId"`
	RequirementTitle string `json:"requirementTitle"`
	Priority         int    `json:"priority"`
}

// ScheduleCandidatesResponse buckets candidates by requirement priority
type ScheduleCandidatesResponse struct {
	HighPriority   []ScheduleCandidate `json:"highPriority"`
	MediumPriority []ScheduleCandidate `json:"mediumPriority"`
	LowPriority    []ScheduleCandidate `json:"lowPriority"`
}
