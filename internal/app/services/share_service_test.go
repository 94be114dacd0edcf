package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/catalog"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
)

type mockShareStore struct {
	CreateFn       func(ctx context.Context, share *models.ScheduleShare) error
	GetByTokenFn   func(ctx context.Context, token string) (*models.ScheduleShare, error)
	GetByIDFn      func(ctx context.Context, id, ownerID int64) (*models.ScheduleShare, error)
	ListByOwnerFn  func(ctx context.Context, ownerID int64) ([]*models.ScheduleShare, error)
	UpdateFn       func(ctx context.Context, id, ownerID int64, permission *models.PermissionLevel, description *string, expiresAt *time.Time) error
	DeleteFn       func(ctx context.Context, id, ownerID int64) error
	RecordAccessFn func(ctx context.Context, id int64) error

	recordAccessCalls int
}

func (m *mockShareStore) Create(ctx context.Context, share *models.ScheduleShare) error {
	return m.CreateFn(ctx, share)
}

func (m *mockShareStore) GetByToken(ctx context.Context, token string) (*models.ScheduleShare, error) {
	return m.GetByTokenFn(ctx, token)
}

func (m *mockShareStore) GetByID(ctx context.Context, id, ownerID int64) (*models.ScheduleShare, error) {
	return m.GetByIDFn(ctx, id, ownerID)
}

func (m *mockShareStore) ListByOwner(ctx context.Context, ownerID int64) ([]*models.ScheduleShare, error) {
	return m.ListByOwnerFn(ctx, ownerID)
}

func (m *mockShareStore) Update(ctx context.Context, id, ownerID int64, permission *models.PermissionLevel, description *string, expiresAt *time.Time) error {
	return m.UpdateFn(ctx, id, ownerID, permission, description, expiresAt)
}

func (m *mockShareStore) Delete(ctx context.Context, id, ownerID int64) error {
	return m.DeleteFn(ctx, id, ownerID)
}

func (m *mockShareStore) RecordAccess(ctx context.Context, id int64) error {
	m.recordAccessCalls++
	if m.RecordAccessFn != nil {
		return m.RecordAccessFn(ctx, id)
	}
	return nil
}

type mockScheduleStore struct {
	ListRequirementsByOwnerFn     func(ctx context.Context, ownerID int64) ([]*models.Requirement, error)
	ListSemestersByOwnerFn        func(ctx context.Context, ownerID int64) ([]*models.Semester, error)
	ListScheduledCoursesByOwnerFn func(ctx context.Context, ownerID int64) ([]*models.ScheduledCourse, error)
	ReplaceCourseFn               func(ctx context.Context, course *models.ScheduledCourse) error
	RemoveCourseFn                func(ctx context.Context, ownerID int64, courseCode string) error

	removeCalls  int
	replaceCalls int
}

func (m *mockScheduleStore) ListRequirementsByOwner(ctx context.Context, ownerID int64) ([]*models.Requirement, error) {
	if m.ListRequirementsByOwnerFn != nil {
		return m.ListRequirementsByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockScheduleStore) ListSemestersByOwner(ctx context.Context, ownerID int64) ([]*models.Semester, error) {
	if m.ListSemestersByOwnerFn != nil {
		return m.ListSemestersByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockScheduleStore) ListScheduledCoursesByOwner(ctx context.Context, ownerID int64) ([]*models.ScheduledCourse, error) {
	if m.ListScheduledCoursesByOwnerFn != nil {
		return m.ListScheduledCoursesByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockScheduleStore) ReplaceCourse(ctx context.Context, course *models.ScheduledCourse) error {
	m.replaceCalls++
	if m.ReplaceCourseFn != nil {
		return m.ReplaceCourseFn(ctx, course)
	}
	return nil
}

func (m *mockScheduleStore) RemoveCourse(ctx context.Context, ownerID int64, courseCode string) error {
	m.removeCalls++
	if m.RemoveCourseFn != nil {
		return m.RemoveCourseFn(ctx, ownerID, courseCode)
	}
	return nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func newTestShareService(t *testing.T, shareStore *mockShareStore, scheduleStore *mockScheduleStore) *ShareService {
	t.Helper()
	if scheduleStore == nil {
		scheduleStore = &mockScheduleStore{}
	}
	return NewShareService(shareStore, scheduleStore, testCatalog(t), "http://localhost:8080")
}

func activeShare(permission models.PermissionLevel) *models.ScheduleShare {
	return &models.ScheduleShare{
		ID:              7,
		OwnerID:         42,
		ShareToken:      "7f9a7e0e-1111-2222-3333-444455556666",
		PermissionLevel: permission,
		CreatedAt:       time.Now().Add(-24 * time.Hour),
		AccessCount:     3,
	}
}

func TestValidateToken_UnknownTokenDoesNotTouchTelemetry(t *testing.T) {
	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return nil, apperrors.ErrShareNotFound
		},
	}
	svc := newTestShareService(t, store, nil)

	validation, err := svc.ValidateToken(context.Background(), "nope")

	assert.Nil(t, validation)
	assert.ErrorIs(t, err, apperrors.ErrShareNotFound)
	assert.Zero(t, store.recordAccessCalls)
}

func TestValidateToken_ExpiredTokenDoesNotTouchTelemetry(t *testing.T) {
	expired := activeShare(models.PermissionView)
	past := time.Now().Add(-time.Hour)
	expired.ExpiresAt = &past

	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return expired, nil
		},
	}
	svc := newTestShareService(t, store, nil)

	// An expired token fails identically no matter how often it is tried
	for i := 0; i < 3; i++ {
		validation, err := svc.ValidateToken(context.Background(), expired.ShareToken)
		assert.Nil(t, validation)
		assert.ErrorIs(t, err, apperrors.ErrShareExpired)
	}
	assert.Zero(t, store.recordAccessCalls)
}

func TestValidateToken_SuccessRecordsExactlyOneAccess(t *testing.T) {
	share := activeShare(models.PermissionView)
	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
	}
	svc := newTestShareService(t, store, nil)

	validation, err := svc.ValidateToken(context.Background(), share.ShareToken)

	require.NoError(t, err)
	require.NotNil(t, validation)
	assert.Equal(t, 1, store.recordAccessCalls)
	assert.Equal(t, share.OwnerID, validation.OwnerID)
	assert.Equal(t, models.PermissionView, validation.PermissionLevel)
}

func TestValidateToken_SuccessAdvancesLastAccessed(t *testing.T) {
	share := activeShare(models.PermissionView)
	stale := time.Now().Add(-48 * time.Hour)
	share.LastAccessed = &stale

	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
	}
	// Mirror the store update: bump the counter, stamp the access time
	store.RecordAccessFn = func(ctx context.Context, id int64) error {
		require.Equal(t, share.ID, id)
		share.AccessCount++
		now := time.Now()
		share.LastAccessed = &now
		return nil
	}
	svc := newTestShareService(t, store, nil)

	before := share.AccessCount
	_, err := svc.ValidateToken(context.Background(), share.ShareToken)

	require.NoError(t, err)
	assert.Equal(t, before+1, share.AccessCount)
	require.NotNil(t, share.LastAccessed)
	assert.True(t, share.LastAccessed.After(stale))
}

func TestValidateToken_TelemetryFailureDoesNotBlockAccess(t *testing.T) {
	share := activeShare(models.PermissionView)
	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
		RecordAccessFn: func(ctx context.Context, id int64) error {
			return assert.AnError
		},
	}
	svc := newTestShareService(t, store, nil)

	validation, err := svc.ValidateToken(context.Background(), share.ShareToken)

	require.NoError(t, err)
	assert.NotNil(t, validation)
}

func TestValidateToken_NoExpiryNeverExpires(t *testing.T) {
	share := activeShare(models.PermissionEdit)
	share.ExpiresAt = nil
	share.CreatedAt = time.Now().AddDate(-3, 0, 0)

	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
	}
	svc := newTestShareService(t, store, nil)

	validation, err := svc.ValidateToken(context.Background(), share.ShareToken)

	require.NoError(t, err)
	assert.Equal(t, models.PermissionEdit, validation.PermissionLevel)
}

func TestRequireEditPermission(t *testing.T) {
	svc := newTestShareService(t, &mockShareStore{}, nil)

	tests := []struct {
		name       string
		validation *models.ShareValidation
		wantErr    bool
	}{
		{"edit grant passes", &models.ShareValidation{PermissionLevel: models.PermissionEdit}, false},
		{"view grant rejected", &models.ShareValidation{PermissionLevel: models.PermissionView}, true},
		{"unknown level rejected", &models.ShareValidation{PermissionLevel: "admin"}, true},
		{"empty level rejected", &models.ShareValidation{}, true},
		{"nil grant rejected", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RequireEditPermission(tt.validation)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrEditPermissionRequired)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateShare_RequiresAuthentication(t *testing.T) {
	svc := newTestShareService(t, &mockShareStore{}, nil)

	_, err := svc.CreateShare(context.Background(), 0, &dto.CreateShareRequest{
		PermissionLevel: models.PermissionView,
	})

	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestCreateShare_RejectsUnknownPermission(t *testing.T) {
	svc := newTestShareService(t, &mockShareStore{}, nil)

	_, err := svc.CreateShare(context.Background(), 42, &dto.CreateShareRequest{
		PermissionLevel: "owner",
	})

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestMoveSharedCourse_ViewTokenRejected(t *testing.T) {
	share := activeShare(models.PermissionView)
	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
	}
	scheduleStore := &mockScheduleStore{}
	svc := newTestShareService(t, store, scheduleStore)

	semesterID := int64(5)
	_, err := svc.MoveSharedCourse(context.Background(), share.ShareToken, &dto.MoveSharedCourseRequest{
		CourseID:     "MATH 101",
		ToSemesterID: &semesterID,
	})

	assert.ErrorIs(t, err, apperrors.ErrEditPermissionRequired)
	assert.Zero(t, scheduleStore.replaceCalls)
	assert.Zero(t, scheduleStore.removeCalls)
}

func TestMoveSharedCourse_NilTargetRemoves(t *testing.T) {
	share := activeShare(models.PermissionEdit)
	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
	}
	scheduleStore := &mockScheduleStore{
		RemoveCourseFn: func(ctx context.Context, ownerID int64, courseCode string) error {
			assert.Equal(t, share.OwnerID, ownerID)
			assert.Equal(t, "MATH 101", courseCode)
			return nil
		},
	}
	svc := newTestShareService(t, store, scheduleStore)

	moved, err := svc.MoveSharedCourse(context.Background(), share.ShareToken, &dto.MoveSharedCourseRequest{
		CourseID: "MATH 101",
	})

	require.NoError(t, err)
	assert.Nil(t, moved)
	assert.Equal(t, 1, scheduleStore.removeCalls)
	assert.Zero(t, scheduleStore.replaceCalls)
}

func TestMoveSharedCourse_RemovalIsIdempotent(t *testing.T) {
	share := activeShare(models.PermissionEdit)
	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
	}
	scheduleStore := &mockScheduleStore{}
	svc := newTestShareService(t, store, scheduleStore)

	// Removing a course that is not scheduled succeeds, repeatedly
	for i := 0; i < 2; i++ {
		_, err := svc.MoveSharedCourse(context.Background(), share.ShareToken, &dto.MoveSharedCourseRequest{
			CourseID: "HIST 150",
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, scheduleStore.removeCalls)
}

func TestMoveSharedCourse_MoveLandsAsPlanned(t *testing.T) {
	share := activeShare(models.PermissionEdit)
	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
	}

	var placed *models.ScheduledCourse
	scheduleStore := &mockScheduleStore{
		ReplaceCourseFn: func(ctx context.Context, course *models.ScheduledCourse) error {
			placed = course
			return nil
		},
	}
	svc := newTestShareService(t, store, scheduleStore)

	semesterID := int64(9)
	moved, err := svc.MoveSharedCourse(context.Background(), share.ShareToken, &dto.MoveSharedCourseRequest{
		CourseID:     "CS 210",
		ToSemesterID: &semesterID,
		CourseData: &dto.SharedCourseData{
			Name:    "Data Structures",
			Credits: 4,
		},
	})

	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.Equal(t, share.OwnerID, placed.UserID)
	assert.Equal(t, semesterID, placed.SemesterID)
	assert.Equal(t, "CS 210", placed.CourseCode)
	assert.Equal(t, "Data Structures", placed.CourseName)
	assert.Equal(t, 4, placed.Credits)
	assert.Equal(t, models.StatusPlanned, placed.Status)

	// The caller gets the placement back
	assert.Same(t, placed, moved)
}

func TestResolveCourseData_FallbackChains(t *testing.T) {
	tests := []struct {
		name        string
		data        *dto.SharedCourseData
		wantName    string
		wantCredits int
	}{
		{"nil data falls back to code and 3", nil, "PHIL 110", 3},
		{"name wins over title", &dto.SharedCourseData{Name: "A", Title: "B"}, "A", 3},
		{"title used when name empty", &dto.SharedCourseData{Title: "B"}, "B", 3},
		{"empty fields fall back to code", &dto.SharedCourseData{}, "PHIL 110", 3},
		{"credits win over credit hours", &dto.SharedCourseData{Credits: 4, CreditHours: 5}, "PHIL 110", 4},
		{"credit hours used when credits zero", &dto.SharedCourseData{CreditHours: 5}, "PHIL 110", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, credits := resolveCourseData("PHIL 110", tt.data)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantCredits, credits)
		})
	}
}

func TestGetSharedSchedule_MaterializesOwnerData(t *testing.T) {
	share := activeShare(models.PermissionView)
	desc := "Advising"
	share.Description = &desc

	store := &mockShareStore{
		GetByTokenFn: func(ctx context.Context, token string) (*models.ScheduleShare, error) {
			return share, nil
		},
	}
	scheduleStore := &mockScheduleStore{
		ListRequirementsByOwnerFn: func(ctx context.Context, ownerID int64) ([]*models.Requirement, error) {
			return []*models.Requirement{{
				ID:     1,
				UserID: ownerID,
				Title:  "Quantitative Reasoning",
				CourseOptions: []models.CourseOption{
					{Code: "MATH 101"},
					{Code: "XX 999", Name: "Transfer Elective"},
				},
			}}, nil
		},
		ListSemestersByOwnerFn: func(ctx context.Context, ownerID int64) ([]*models.Semester, error) {
			return []*models.Semester{{ID: 10, UserID: ownerID, Name: "Fall 2025"}}, nil
		},
		ListScheduledCoursesByOwnerFn: func(ctx context.Context, ownerID int64) ([]*models.ScheduledCourse, error) {
			return []*models.ScheduledCourse{
				{ID: 100, UserID: ownerID, SemesterID: 10, CourseCode: "MATH 101"},
			}, nil
		},
	}
	svc := newTestShareService(t, store, scheduleStore)

	resp, err := svc.GetSharedSchedule(context.Background(), share.ShareToken)

	require.NoError(t, err)
	require.NotNil(t, resp.Share)
	assert.Equal(t, share.OwnerID, resp.Share.OwnerID)

	require.Len(t, resp.Requirements, 1)
	options := resp.Requirements[0].CourseOptions
	require.Len(t, options, 2)
	assert.True(t, options[0].FromCatalog)
	assert.NotEmpty(t, options[0].Name)
	assert.False(t, options[1].FromCatalog)
	assert.Equal(t, "Transfer Elective", options[1].Name)

	require.Len(t, resp.Semesters, 1)
	require.Len(t, resp.Semesters[0].Courses, 1)
	assert.Equal(t, "MATH 101", resp.Semesters[0].Courses[0].CourseCode)
}
