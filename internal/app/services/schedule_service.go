package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/app/repositories"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
)

// ScheduleService manages academic years, semesters and course placements
type ScheduleService struct {
	yearRepo     *repositories.AcademicYearRepository
	semesterRepo *repositories.SemesterRepository
	courseRepo   *repositories.ScheduledCourseRepository
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(yearRepo *repositories.AcademicYearRepository, semesterRepo *repositories.SemesterRepository, courseRepo *repositories.ScheduledCourseRepository) *ScheduleService {
	return &ScheduleService{
		yearRepo:     yearRepo,
		semesterRepo: semesterRepo,
		courseRepo:   courseRepo,
	}
}

// Default credit ceilings for auto-created semesters
const (
	defaultFallSpringCredits = 18
	defaultSummerCredits     = 12
)

// CreateAcademicYear creates an academic year for the user
func (s *ScheduleService) CreateAcademicYear(ctx context.Context, userID int64, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must be after start date")
	}

	year := &models.AcademicYear{
		UserID:    userID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	}
	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}

	if year.IsActive {
		if err := s.yearRepo.SetActive(ctx, year.ID, userID); err != nil {
			return nil, err
		}
	}
	return year, nil
}

// CreateDefaultAcademicYear builds a year starting this fall with the
// standard three semesters already in place. Used on first login so a new
// user lands on a usable schedule.
func (s *ScheduleService) CreateDefaultAcademicYear(ctx context.Context, userID int64) (*models.AcademicYear, error) {
	now := time.Now()
	startYear := now.Year()
	if now.Month() < time.August {
		startYear--
	}

	year := &models.AcademicYear{
		UserID:    userID,
		Name:      fmt.Sprintf("%d-%d", startYear, startYear+1),
		StartDate: time.Date(startYear, time.August, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(startYear+1, time.August, 14, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}
	if err := s.yearRepo.SetActive(ctx, year.ID, userID); err != nil {
		return nil, err
	}

	defaults := []struct {
		term       models.TermType
		year       int
		start, end time.Time
		maxCredits int
	}{
		{models.TermFall, startYear,
			time.Date(startYear, time.August, 25, 0, 0, 0, 0, time.UTC),
			time.Date(startYear, time.December, 15, 0, 0, 0, 0, time.UTC),
			defaultFallSpringCredits},
		{models.TermSpring, startYear + 1,
			time.Date(startYear+1, time.January, 15, 0, 0, 0, 0, time.UTC),
			time.Date(startYear+1, time.May, 10, 0, 0, 0, 0, time.UTC),
			defaultFallSpringCredits},
		{models.TermSummer, startYear + 1,
			time.Date(startYear+1, time.June, 1, 0, 0, 0, 0, time.UTC),
			time.Date(startYear+1, time.August, 1, 0, 0, 0, 0, time.UTC),
			defaultSummerCredits},
	}

	for _, d := range defaults {
		sem := &models.Semester{
			UserID:         userID,
			AcademicYearID: year.ID,
			Name:           fmt.Sprintf("%s %d", d.term, d.year),
			TermType:       d.term,
			Year:           d.year,
			StartDate:      d.start,
			EndDate:        d.end,
			MaxCredits:     d.maxCredits,
		}
		if err := s.semesterRepo.Create(ctx, sem); err != nil {
			return nil, err
		}
	}

	return year, nil
}

// ListAcademicYears returns the user's academic years
func (s *ScheduleService) ListAcademicYears(ctx context.Context, userID int64) ([]*models.AcademicYear, error) {
	return s.yearRepo.ListByUser(ctx, userID)
}

// UpdateAcademicYear applies a partial update to an academic year
func (s *ScheduleService) UpdateAcademicYear(ctx context.Context, id, userID int64, patch *dto.UpdateAcademicYearRequest) (*models.AcademicYear, error) {
	year, err := s.yearRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		year.Name = *patch.Name
	}
	if patch.StartDate != nil {
		year.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		year.EndDate = *patch.EndDate
	}
	if !year.EndDate.After(year.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must be after start date")
	}

	if err := s.yearRepo.Update(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// SetActiveAcademicYear marks one year active, deactivating the others
func (s *ScheduleService) SetActiveAcademicYear(ctx context.Context, id, userID int64) error {
	return s.yearRepo.SetActive(ctx, id, userID)
}

// DeleteAcademicYear removes an academic year and everything beneath it
func (s *ScheduleService) DeleteAcademicYear(ctx context.Context, id, userID int64) error {
	return s.yearRepo.Delete(ctx, id, userID)
}

// CreateSemester creates a semester within one of the user's academic years
func (s *ScheduleService) CreateSemester(ctx context.Context, userID int64, req *dto.CreateSemesterRequest) (*models.Semester, error) {
	if _, err := s.yearRepo.GetByID(ctx, req.AcademicYearID, userID); err != nil {
		return nil, err
	}

	maxCredits := req.MaxCredits
	if maxCredits <= 0 {
		maxCredits = defaultFallSpringCredits
		if req.TermType == models.TermSummer || req.TermType == models.TermWinter {
			maxCredits = defaultSummerCredits
		}
	}

	sem := &models.Semester{
		UserID:         userID,
		AcademicYearID: req.AcademicYearID,
		Name:           req.Name,
		TermType:       req.TermType,
		Year:           req.Year,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		MaxCredits:     maxCredits,
	}
	if err := s.semesterRepo.Create(ctx, sem); err != nil {
		return nil, err
	}
	return sem, nil
}

// ListSemesters returns the user's semesters with their course placements
// attached, in chronological order.
func (s *ScheduleService) ListSemesters(ctx context.Context, userID int64) ([]*models.Semester, error) {
	semesters, err := s.semesterRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	bySemester := make(map[int64][]*models.ScheduledCourse, len(semesters))
	for _, course := range courses {
		bySemester[course.SemesterID] = append(bySemester[course.SemesterID], course)
	}
	for _, sem := range semesters {
		sem.Courses = bySemester[sem.ID]
		if sem.Courses == nil {
			sem.Courses = []*models.ScheduledCourse{}
		}
	}

	return semesters, nil
}

// DeleteSemester removes a semester and its placements
func (s *ScheduleService) DeleteSemester(ctx context.Context, id, userID int64) error {
	return s.semesterRepo.Delete(ctx, id, userID)
}

// ScheduleCourse places a course into one of the user's semesters
func (s *ScheduleService) ScheduleCourse(ctx context.Context, userID int64, req *dto.ScheduleCourseRequest) (*models.ScheduledCourse, error) {
	if _, err := s.semesterRepo.GetByID(ctx, req.SemesterID, userID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusPlanned
	}

	name := req.CourseName
	if name == "" {
		name = req.CourseCode
	}
	credits := req.Credits
	if credits <= 0 {
		credits = 3
	}

	course := &models.ScheduledCourse{
		UserID:        userID,
		SemesterID:    req.SemesterID,
		CourseCode:    req.CourseCode,
		CourseName:    name,
		Credits:       credits,
		Status:        status,
		PositionIndex: req.PositionIndex,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// MoveCourse relocates one of the user's placements to another semester
func (s *ScheduleService) MoveCourse(ctx context.Context, id, userID int64, req *dto.MoveCourseRequest) error {
	if _, err := s.semesterRepo.GetByID(ctx, req.SemesterID, userID); err != nil {
		return err
	}
	return s.courseRepo.Move(ctx, id, userID, req.SemesterID, req.PositionIndex)
}

// UpdateCourseStatus changes a placement's lifecycle status
func (s *ScheduleService) UpdateCourseStatus(ctx context.Context, id, userID int64, status models.CourseStatus) error {
	switch status {
	case models.StatusPlanned, models.StatusEnrolled, models.StatusCompleted, models.StatusDropped:
	default:
		return apperrors.NewBadRequestError("unknown course status")
	}
	return s.courseRepo.UpdateStatus(ctx, id, userID, status)
}

// RemoveCourse deletes a placement
func (s *ScheduleService) RemoveCourse(ctx context.Context, id, userID int64) error {
	return s.courseRepo.Delete(ctx, id, userID)
}

// CalculateSemesterCredits totals the countable credits in a semester
func (s *ScheduleService) CalculateSemesterCredits(ctx context.Context, semesterID, userID int64) (int, error) {
	if _, err := s.semesterRepo.GetByID(ctx, semesterID, userID); err != nil {
		return 0, err
	}
	return s.courseRepo.SumCreditsBySemester(ctx, semesterID, userID)
}

// ValidateCreditLimit reports whether adding credits to a semester would
// stay within its advisory ceiling. A non-positive ceiling means no limit.
func ValidateCreditLimit(sem *models.Semester, currentCredits, addedCredits int) bool {
	if sem.MaxCredits <= 0 {
		return true
	}
	return currentCredits+addedCredits <= sem.MaxCredits
}
