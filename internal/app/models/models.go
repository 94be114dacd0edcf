package models

// PermissionLevel defines what a share link recipient is allowed to do
type PermissionLevel string

const (
	PermissionView PermissionLevel = "view" // read-only materialization
	PermissionEdit PermissionLevel = "edit" // read + mutate scheduled courses
)

// Valid reports whether the level is one of the two known values.
func (p PermissionLevel) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// CourseStatus represents the lifecycle state of a scheduled course
type CourseStatus string

const (
	StatusPlanned   CourseStatus = "planned"
	StatusEnrolled  CourseStatus = "enrolled"
	StatusCompleted CourseStatus = "completed"
	StatusDropped   CourseStatus = "dropped"
)

// TermType represents a semester term
type TermType string

const (
	TermFall   TermType = "Fall"
	TermSpring TermType = "Spring"
	TermSummer TermType = "Summer"
	TermWinter TermType = "Winter"
)
