package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	TokenRepository           *TokenRepository
	ShareRepository           *ShareRepository
	RequirementRepository     *RequirementRepository
	AcademicYearRepository    *AcademicYearRepository
	SemesterRepository        *SemesterRepository
	ScheduledCourseRepository *ScheduledCourseRepository
}

// NewRepositories initializes all caller-scoped repositories. The
// privileged SharedScheduleRepository is deliberately not part of this
// container; it is constructed separately in bootstrap and handed only to
// the sharing service.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(db),
		TokenRepository:           NewTokenRepository(db),
		ShareRepository:           NewShareRepository(db),
		RequirementRepository:     NewRequirementRepository(db),
		AcademicYearRepository:    NewAcademicYearRepository(db),
		SemesterRepository:        NewSemesterRepository(db),
		ScheduledCourseRepository: NewScheduledCourseRepository(db),
	}
}
