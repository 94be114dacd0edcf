package services

import (
	"context"
	"errors"
	"time"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/catalog"
	"github.com/mkaraca/courseflow/internal/metrics"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
	"github.com/mkaraca/courseflow/internal/pkg/logger"
)

// ShareStore is the share link persistence needed by ShareService
type ShareStore interface {
	Create(ctx context.Context, share *models.ScheduleShare) error
	GetByToken(ctx context.Context, token string) (*models.ScheduleShare, error)
	GetByID(ctx context.Context, id, ownerID int64) (*models.ScheduleShare, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.ScheduleShare, error)
	Update(ctx context.Context, id, ownerID int64, permission *models.PermissionLevel, description *string, expiresAt *time.Time) error
	Delete(ctx context.Context, id, ownerID int64) error
	RecordAccess(ctx context.Context, id int64) error
}

// SharedScheduleStore is the owner-scoped schedule access needed to
// materialize and mutate a shared schedule.
type SharedScheduleStore interface {
	ListRequirementsByOwner(ctx context.Context, ownerID int64) ([]*models.Requirement, error)
	ListSemestersByOwner(ctx context.Context, ownerID int64) ([]*models.Semester, error)
	ListScheduledCoursesByOwner(ctx context.Context, ownerID int64) ([]*models.ScheduledCourse, error)
	ReplaceCourse(ctx context.Context, course *models.ScheduledCourse) error
	RemoveCourse(ctx context.Context, ownerID int64, courseCode string) error
}

// ShareService implements share link management for owners and
// token-validated access for recipients. It is the only component holding
// the privileged schedule store.
type ShareService struct {
	shareStore    ShareStore
	scheduleStore SharedScheduleStore
	catalog       *catalog.Catalog
	baseURL       string
}

// NewShareService creates a new ShareService
func NewShareService(shareStore ShareStore, scheduleStore SharedScheduleStore, cat *catalog.Catalog, baseURL string) *ShareService {
	return &ShareService{
		shareStore:    shareStore,
		scheduleStore: scheduleStore,
		catalog:       cat,
		baseURL:       baseURL,
	}
}

// CreateShare mints a new share link for the authenticated owner
func (s *ShareService) CreateShare(ctx context.Context, ownerID int64, req *dto.CreateShareRequest) (*dto.ShareResponse, error) {
	if ownerID == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	if !req.PermissionLevel.Valid() {
		return nil, apperrors.NewBadRequestError("permission level must be view or edit")
	}

	share := &models.ScheduleShare{
		OwnerID:         ownerID,
		PermissionLevel: req.PermissionLevel,
		Description:     req.Description,
		ExpiresAt:       req.ExpiresAt,
	}

	if err := s.shareStore.Create(ctx, share); err != nil {
		return nil, err
	}

	logger.Info().Int64("ownerID", ownerID).Str("permission", string(share.PermissionLevel)).Msg("Share link created")

	resp := dto.NewShareResponse(share, s.baseURL)
	return &resp, nil
}

// ListShares returns all of the owner's share links, newest first
func (s *ShareService) ListShares(ctx context.Context, ownerID int64) ([]dto.ShareResponse, error) {
	shares, err := s.shareStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resps := make([]dto.ShareResponse, 0, len(shares))
	for _, share := range shares {
		resps = append(resps, dto.NewShareResponse(share, s.baseURL))
	}
	return resps, nil
}

// UpdateShare changes a share's settings. The token itself never changes.
func (s *ShareService) UpdateShare(ctx context.Context, id, ownerID int64, req *dto.UpdateShareRequest) (*dto.ShareResponse, error) {
	if req.PermissionLevel != nil && !req.PermissionLevel.Valid() {
		return nil, apperrors.NewBadRequestError("permission level must be view or edit")
	}

	if err := s.shareStore.Update(ctx, id, ownerID, req.PermissionLevel, req.Description, req.ExpiresAt); err != nil {
		return nil, err
	}

	share, err := s.shareStore.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewShareResponse(share, s.baseURL)
	return &resp, nil
}

// DeleteShare revokes a share link
func (s *ShareService) DeleteShare(ctx context.Context, id, ownerID int64) error {
	if err := s.shareStore.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	logger.Info().Int64("shareID", id).Int64("ownerID", ownerID).Msg("Share link revoked")
	return nil
}

// ValidateToken resolves a share token into its grant. Unknown tokens and
// expired tokens fail without touching the access telemetry; a successful
// validation bumps the access count by exactly one. The returned grant
// never contains the token value.
func (s *ShareService) ValidateToken(ctx context.Context, token string) (*models.ShareValidation, error) {
	share, err := s.shareStore.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrShareNotFound) {
			metrics.ShareValidations.WithLabelValues(metrics.ShareOutcomeNotFound).Inc()
		}
		return nil, err
	}

	if share.IsExpired(time.Now()) {
		metrics.ShareValidations.WithLabelValues(metrics.ShareOutcomeExpired).Inc()
		return nil, apperrors.ErrShareExpired
	}

	// Telemetry only; a failed bump must not block access
	if err := s.shareStore.RecordAccess(ctx, share.ID); err != nil {
		logger.Warn().Err(err).Int64("shareID", share.ID).Msg("Failed to record share access")
	}

	metrics.ShareValidations.WithLabelValues(metrics.ShareOutcomeOK).Inc()

	return &models.ShareValidation{
		OwnerID:         share.OwnerID,
		PermissionLevel: share.PermissionLevel,
		Description:     share.Description,
		ExpiresAt:       share.ExpiresAt,
		CreatedAt:       share.CreatedAt,
	}, nil
}

// RequireEditPermission gates mutations on a validated grant. It is total:
// any grant that is not explicitly edit-level is rejected.
func (s *ShareService) RequireEditPermission(validation *models.ShareValidation) error {
	if validation == nil || validation.PermissionLevel != models.PermissionEdit {
		return apperrors.ErrEditPermissionRequired
	}
	return nil
}

// GetSharedSchedule validates the token and materializes the owner's full
// schedule for the recipient.
func (s *ShareService) GetSharedSchedule(ctx context.Context, token string) (*dto.SharedScheduleResponse, error) {
	validation, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.SharedScheduleForGrant(ctx, validation)
}

// SharedScheduleForGrant materializes the owner's full schedule for an
// already-validated grant: requirements enriched with catalog data,
// semesters with their placements attached, and the flat placement list.
func (s *ShareService) SharedScheduleForGrant(ctx context.Context, validation *models.ShareValidation) (*dto.SharedScheduleResponse, error) {
	reqs, err := s.scheduleStore.ListRequirementsByOwner(ctx, validation.OwnerID)
	if err != nil {
		return nil, err
	}
	semesters, err := s.scheduleStore.ListSemestersByOwner(ctx, validation.OwnerID)
	if err != nil {
		return nil, err
	}
	courses, err := s.scheduleStore.ListScheduledCoursesByOwner(ctx, validation.OwnerID)
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

	enriched := make([]dto.EnrichedRequirement, 0, len(reqs))
	for _, req := range reqs {
		enriched = append(enriched, s.enrichRequirement(req))
	}

	return &dto.SharedScheduleResponse{
		Share:            validation,
		Requirements:     enriched,
		Semesters:        semesters,
		ScheduledCourses: courses,
	}, nil
}

func (s *ShareService) enrichRequirement(req *models.Requirement) dto.EnrichedRequirement {
	options := make([]catalog.EnhancedOption, 0, len(req.CourseOptions))
	for _, opt := range req.CourseOptions {
		options = append(options, s.catalog.EnhanceOption(opt.Code, opt.Name))
	}

	return dto.EnrichedRequirement{
		ID:            req.ID,
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		Priority:      req.Priority,
		Credits:       req.Credits,
		IsCompleted:   req.IsCompleted,
		CourseOptions: options,
		CreatedAt:     req.CreatedAt,
	}
}

// MoveSharedCourse validates the token and applies a course placement
// change to the owner's schedule. The returned placement is nil when the
// change was a removal.
func (s *ShareService) MoveSharedCourse(ctx context.Context, token string, req *dto.MoveSharedCourseRequest) (*models.ScheduledCourse, error) {
	validation, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.MoveCourseForGrant(ctx, validation, req)
}

// MoveCourseForGrant applies a course placement change on behalf of an
// already-validated edit-level grant. A nil target semester removes the
// course; removal of an unscheduled course is a no-op. A move replaces any
// prior placement of the code and always lands with planned status. The
// resulting placement is returned so callers can hand it back to the
// recipient; removals return nil.
func (s *ShareService) MoveCourseForGrant(ctx context.Context, validation *models.ShareValidation, req *dto.MoveSharedCourseRequest) (*models.ScheduledCourse, error) {
	if err := s.RequireEditPermission(validation); err != nil {
		return nil, err
	}

	if req.ToSemesterID == nil {
		if err := s.scheduleStore.RemoveCourse(ctx, validation.OwnerID, req.CourseID); err != nil {
			return nil, err
		}
		logger.Info().Int64("ownerID", validation.OwnerID).Str("courseCode", req.CourseID).Msg("Shared course removed")
		return nil, nil
	}

	name, credits := resolveCourseData(req.CourseID, req.CourseData)
	course := &models.ScheduledCourse{
		UserID:     validation.OwnerID,
		SemesterID: *req.ToSemesterID,
		CourseCode: req.CourseID,
		CourseName: name,
		Credits:    credits,
		Status:     models.StatusPlanned,
	}

	if err := s.scheduleStore.ReplaceCourse(ctx, course); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("ownerID", validation.OwnerID).
		Str("courseCode", req.CourseID).
		Int64("semesterID", *req.ToSemesterID).
		Msg("Shared course moved")
	return course, nil
}

// resolveCourseData applies the display-field fallback chain: name comes
// from name, then title, then the course code; credits from credits, then
// credit_hours, then 3.
func resolveCourseData(courseCode string, data *dto.SharedCourseData) (string, int) {
	name := courseCode
	credits := 3

	if data != nil {
		if data.Name != "" {
			name = data.Name
		} else if data.Title != "" {
			name = data.Title
		}

		if data.Credits > 0 {
			credits = data.Credits
		} else if data.CreditHours > 0 {
			credits = data.CreditHours
		}
	}

	return name, credits
}
