package models

import (
	"time"
)

// ScheduledCourse is the placement of a course into a semester, based on
// the 'scheduled_courses' table. At most one row exists per
// (user_id, course_code); moving a course replaces its placement.
type ScheduledCourse struct {
	ID            int64        `json:"id" db:"id"`
	UserID        int64        `json:"userId" db:"user_id"`
	SemesterID    int64        `json:"semesterId" db:"semester_id"`
	CourseCode    string       `json:"courseCode" db:"course_code" example:"MATH 101"`
	CourseName    string       `json:"courseName" db:"course_name" example:"Calculus I"`
	Credits       int          `json:"credits" db:"credits" example:"4"`
	Status        CourseStatus `json:"status" db:"status" example:"planned"`
	PositionIndex int          `json:"positionIndex" db:"position_index"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
}
