package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
)

type stubValidator struct {
	validation *models.ShareValidation
	err        error
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) (*models.ShareValidation, error) {
	return s.validation, s.err
}

func shareContextRouter(validator ShareValidator) (*gin.Engine, *[]*models.ShareValidation) {
	gin.SetMode(gin.TestMode)
	var captured []*models.ShareValidation

	router := gin.New()
	router.Use(ShareContext(validator))
	router.GET("/", func(c *gin.Context) {
		captured = append(captured, GetShareValidation(c))
		c.Status(http.StatusOK)
	})
	return router, &captured
}

func TestShareContext_ValidTokenAttachesGrant(t *testing.T) {
	validation := &models.ShareValidation{OwnerID: 42, PermissionLevel: models.PermissionView}
	router, captured := shareContextRouter(&stubValidator{validation: validation})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?share=abc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *captured, 1)
	assert.Equal(t, validation, (*captured)[0])
}

func TestShareContext_InvalidTokenStillRenders(t *testing.T) {
	router, captured := shareContextRouter(&stubValidator{err: apperrors.ErrShareNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?share=stale", nil))

	// A stale link must not break the page; the grant is simply absent
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *captured, 1)
	assert.Nil(t, (*captured)[0])
}

func TestShareContext_NoTokenSkipsValidation(t *testing.T) {
	router, captured := shareContextRouter(&stubValidator{err: apperrors.ErrShareNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *captured, 1)
	assert.Nil(t, (*captured)[0])
}
