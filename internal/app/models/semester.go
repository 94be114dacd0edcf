package models

import (
	"time"
)

// Semester defines one term within an academic year, based on the
// 'semesters' table. MaxCredits is advisory: credit-limit validation is a
// pure predicate callers may choose to enforce, the store never does.
type Semester struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	AcademicYearID int64     `json:"academicYearId" db:"academic_year_id"`
	Name           string    `json:"name" db:"name" example:"Fall 2025"`
	TermType       TermType  `json:"termType" db:"term_type" example:"Fall"`
	Year           int       `json:"year" db:"year" example:"2025"`
	StartDate      time.Time `json:"startDate" db:"start_date"`
	EndDate        time.Time `json:"endDate" db:"end_date"`
	MaxCredits     int       `json:"maxCredits" db:"max_credits" example:"18"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// Courses is populated by aggregation queries, not stored on the row
	Courses []*ScheduledCourse `json:"courses,omitempty"`
}
