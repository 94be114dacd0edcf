package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/pkg/logger"
)

// ContextShare is the gin context key holding a validated share grant
const ContextShare = "shareValidation"

// ShareValidator is the token validation needed by ShareContext
type ShareValidator interface {
	ValidateToken(ctx context.Context, token string) (*models.ShareValidation, error)
}

// ShareContext resolves an optional ?share= token into a grant on the
// request context. Validation failures are swallowed: a page with a stale
// link still renders, it just renders without shared data. Handlers that
// require a grant enforce that themselves.
func ShareContext(validator ShareValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("share")
		if token == "" {
			c.Next()
			return
		}

		validation, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Debug().Err(err).Msg("Share token on request did not validate")
			c.Next()
			return
		}

		c.Set(ContextShare, validation)
		c.Next()
	}
}

// GetShareValidation pulls a validated grant out of the request context,
// or nil when the request carried no valid token.
func GetShareValidation(c *gin.Context) *models.ShareValidation {
	value, exists := c.Get(ContextShare)
	if !exists {
		return nil
	}
	validation, ok := value.(*models.ShareValidation)
	if !ok {
		return nil
	}
	return validation
}
