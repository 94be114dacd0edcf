package models

import (
	"time"
)

// CourseOption is one alternative course that can satisfy a requirement.
// Stored as a JSONB array on the requirement row.
type CourseOption struct {
	Code string `json:"code" example:"MATH 101"`
	Name string `json:"name,omitempty" example:"Calculus I"`
}

// Requirement defines a degree obligation based on the 'requirements' table.
// Zero course options means the requirement is presently unsatisfiable by
// any catalog course.
type Requirement struct {
	ID            int64          `json:"id" db:"id"`
	UserID        int64          `json:"userId" db:"user_id"`
	Title         string         `json:"title" db:"title" example:"Quantitative Reasoning"`
	Category      string         `json:"category" db:"category" example:"Core"`
	Description   *string        `json:"description,omitempty" db:"description"`
	Priority      int            `json:"priority" db:"priority" example:"3"`
	Credits       int            `json:"credits" db:"credits" example:"3"`
	IsCompleted   bool           `json:"isCompleted" db:"is_completed"`
	CourseOptions []CourseOption `json:"courseOptions" db:"course_options"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}
