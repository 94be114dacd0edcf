package dto

import (
	"time"

	"github.com/mkaraca/courseflow/internal/app/models"
)

// CreateAcademicYearRequest is the payload for creating an academic year
type CreateAcademicYearRequest struct {
	Name      string    `json:"name" binding:"required" example:"2025-2026"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	IsActive  bool      `json:"isActive"`
}

// UpdateAcademicYearRequest is the payload for updating an academic year
type UpdateAcademicYearRequest struct {
	Name      *string    `json:"name,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// CreateSemesterRequest is the payload for creating a semester
type CreateSemesterRequest struct {
	AcademicYearID int64           `json:"academicYearId" binding:"required"`
	Name           string          `json:"name" binding:"required" example:"Fall 2025"`
	TermType       models.TermType `json:"termType" binding:"required" example:"Fall"`
	Year           int             `json:"year" binding:"required" example:"2025"`
	StartDate      time.Time       `json:"startDate" binding:"required"`
	EndDate        time.Time       `json:"endDate" binding:"required"`
	MaxCredits     int             `json:"maxCredits" example:"18"`
}

// ScheduleCourseRequest is the payload for placing a course into a semester
type ScheduleCourseRequest struct {
	SemesterID    int64               `json:"semesterId" binding:"required"`
	CourseCode    string              `json:"courseCode" binding:"required" example:"MATH 101"`
	CourseName    string              `json:"courseName" example:"Calculus I"`
	Credits       int                 `json:"credits" example:"4"`
	Status        models.CourseStatus `json:"status" example:"planned"`
	PositionIndex int                 `json:"positionIndex"`
}

// MoveCourseRequest is the payload for moving an owner's scheduled course
type MoveCourseRequest struct {
	SemesterID    int64 `json:"semesterId" binding:"required"`
	PositionIndex int   `json:"positionIndex"`
}

// SharedScheduleResponse is the materialized view handed to share link
// recipients: the owner's full requirement, semester, and placement sets.
type SharedScheduleResponse struct {
	Share            *models.ShareValidation    `json:"share"`
	Requirements     []EnrichedRequirement      `json:"requirements"`
	Semesters        []*models.Semester         `json:"semesters"`
	ScheduledCourses []*models.ScheduledCourse  `json:"scheduledCourses"`
}
