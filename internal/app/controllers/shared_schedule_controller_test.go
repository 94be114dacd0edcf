package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/app/services"
	"github.com/mkaraca/courseflow/internal/catalog"
	"github.com/mkaraca/courseflow/internal/middleware"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
)

type stubShareStore struct {
	shares map[string]*models.ScheduleShare
}

func (s *stubShareStore) Create(ctx context.Context, share *models.ScheduleShare) error { return nil }

func (s *stubShareStore) GetByToken(ctx context.Context, token string) (*models.ScheduleShare, error) {
	share, ok := s.shares[token]
	if !ok {
		return nil, apperrors.ErrShareNotFound
	}
	return share, nil
}

func (s *stubShareStore) GetByID(ctx context.Context, id, ownerID int64) (*models.ScheduleShare, error) {
	return nil, apperrors.ErrShareNotFound
}

func (s *stubShareStore) ListByOwner(ctx context.Context, ownerID int64) ([]*models.ScheduleShare, error) {
	return nil, nil
}

func (s *stubShareStore) Update(ctx context.Context, id, ownerID int64, permission *models.PermissionLevel, description *string, expiresAt *time.Time) error {
	return nil
}

func (s *stubShareStore) Delete(ctx context.Context, id, ownerID int64) error { return nil }

func (s *stubShareStore) RecordAccess(ctx context.Context, id int64) error { return nil }

type stubScheduleStore struct {
	replaced *models.ScheduledCourse
	removed  []string
}

func (s *stubScheduleStore) ListRequirementsByOwner(ctx context.Context, ownerID int64) ([]*models.Requirement, error) {
	return []*models.Requirement{}, nil
}

func (s *stubScheduleStore) ListSemestersByOwner(ctx context.Context, ownerID int64) ([]*models.Semester, error) {
	return []*models.Semester{{ID: 5, UserID: ownerID, Name: "Fall 2025"}}, nil
}

func (s *stubScheduleStore) ListScheduledCoursesByOwner(ctx context.Context, ownerID int64) ([]*models.ScheduledCourse, error) {
	return []*models.ScheduledCourse{}, nil
}

func (s *stubScheduleStore) ReplaceCourse(ctx context.Context, course *models.ScheduledCourse) error {
	s.replaced = course
	return nil
}

func (s *stubScheduleStore) RemoveCourse(ctx context.Context, ownerID int64, courseCode string) error {
	s.removed = append(s.removed, courseCode)
	return nil
}

const (
	viewToken = "view-token-aaaa"
	editToken = "edit-token-bbbb"
)

func newSharedScheduleRouter(t *testing.T) (*gin.Engine, *stubScheduleStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load()
	require.NoError(t, err)

	shareStore := &stubShareStore{shares: map[string]*models.ScheduleShare{
		viewToken: {ID: 1, OwnerID: 42, ShareToken: viewToken, PermissionLevel: models.PermissionView},
		editToken: {ID: 2, OwnerID: 42, ShareToken: editToken, PermissionLevel: models.PermissionEdit},
	}}
	scheduleStore := &stubScheduleStore{}

	svc := services.NewShareService(shareStore, scheduleStore, cat, "http://localhost:8080")
	controller := NewSharedScheduleController(svc)

	router := gin.New()
	router.Use(middleware.ShareContext(svc))
	router.GET("/api/v1/shared/schedule", controller.GetSharedSchedule)
	router.POST("/api/v1/shared/schedule/move", controller.MoveSharedCourse)
	return router, scheduleStore
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetSharedSchedule_MissingToken(t *testing.T) {
	router, _ := newSharedScheduleRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/shared/schedule", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestGetSharedSchedule_UnknownToken(t *testing.T) {
	router, _ := newSharedScheduleRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/shared/schedule?share=bogus", "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj, ok := resp["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "SHARE_002", errObj["code"])
}

func TestGetSharedSchedule_ValidTokenReturnsSchedule(t *testing.T) {
	router, _ := newSharedScheduleRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/shared/schedule?share="+viewToken, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Share struct {
				OwnerID         int64  `json:"ownerId"`
				PermissionLevel string `json:"permissionLevel"`
			} `json:"share"`
			Semesters []struct {
				Name string `json:"name"`
			} `json:"semesters"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.Data.Share.OwnerID)
	assert.Equal(t, "view", resp.Data.Share.PermissionLevel)
	require.Len(t, resp.Data.Semesters, 1)
	assert.Equal(t, "Fall 2025", resp.Data.Semesters[0].Name)
}

func TestGetSharedSchedule_ResponseNeverEchoesToken(t *testing.T) {
	router, _ := newSharedScheduleRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/shared/schedule?share="+viewToken, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), viewToken)
}

func TestMoveSharedCourse_ViewTokenForbidden(t *testing.T) {
	router, scheduleStore := newSharedScheduleRouter(t)

	body := `{"courseId": "MATH 101", "toSemesterId": 5}`
	w := doRequest(router, http.MethodPost, "/api/v1/shared/schedule/move?share="+viewToken, body)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, scheduleStore.replaced)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj, ok := resp["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "SHARE_003", errObj["code"])
}

func TestMoveSharedCourse_EditTokenMoves(t *testing.T) {
	router, scheduleStore := newSharedScheduleRouter(t)

	body := `{"courseId": "MATH 101", "toSemesterId": 5, "courseData": {"title": "Calculus I", "credit_hours": 4}}`
	w := doRequest(router, http.MethodPost, "/api/v1/shared/schedule/move?share="+editToken, body)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, scheduleStore.replaced)
	assert.Equal(t, int64(42), scheduleStore.replaced.UserID)
	assert.Equal(t, "MATH 101", scheduleStore.replaced.CourseCode)
	assert.Equal(t, "Calculus I", scheduleStore.replaced.CourseName)
	assert.Equal(t, 4, scheduleStore.replaced.Credits)
	assert.Equal(t, models.StatusPlanned, scheduleStore.replaced.Status)

	// The new placement comes back in the response body
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			CourseCode string `json:"courseCode"`
			CourseName string `json:"courseName"`
			SemesterID int64  `json:"semesterId"`
			Credits    int    `json:"credits"`
			Status     string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "MATH 101", resp.Data.CourseCode)
	assert.Equal(t, "Calculus I", resp.Data.CourseName)
	assert.Equal(t, int64(5), resp.Data.SemesterID)
	assert.Equal(t, 4, resp.Data.Credits)
	assert.Equal(t, "planned", resp.Data.Status)
}

func TestMoveSharedCourse_NilSemesterRemoves(t *testing.T) {
	router, scheduleStore := newSharedScheduleRouter(t)

	body := `{"courseId": "MATH 101"}`
	w := doRequest(router, http.MethodPost, "/api/v1/shared/schedule/move?share="+editToken, body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"MATH 101"}, scheduleStore.removed)
	assert.Nil(t, scheduleStore.replaced)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Nil(t, resp["data"])
}

func TestMoveSharedCourse_MissingCourseID(t *testing.T) {
	router, _ := newSharedScheduleRouter(t)

	body := `{"toSemesterId": 5}`
	w := doRequest(router, http.MethodPost, "/api/v1/shared/schedule/move?share="+editToken, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveSharedCourse_MissingToken(t *testing.T) {
	router, _ := newSharedScheduleRouter(t)

	body := `{"courseId": "MATH 101", "toSemesterId": 5}`
	w := doRequest(router, http.MethodPost, "/api/v1/shared/schedule/move", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
