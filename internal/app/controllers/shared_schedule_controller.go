package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/app/services"
	"github.com/mkaraca/courseflow/internal/middleware"
	"github.com/mkaraca/courseflow/internal/pkg/apperrors"
)

// SharedScheduleController serves the public, token-authenticated
// endpoints. Callers here carry no session; the share token in the query
// string is the entire credential.
type SharedScheduleController struct {
	shareService *services.ShareService
}

// NewSharedScheduleController creates a new SharedScheduleController
func NewSharedScheduleController(shareService *services.ShareService) *SharedScheduleController {
	return &SharedScheduleController{
		shareService: shareService,
	}
}

// GetSharedSchedule returns the schedule behind a share token. The token
// was already resolved by the share middleware; this handler only
// consumes the grant it attached.
// @Summary View a shared schedule
// @Description Materializes the owner's requirements, semesters and course placements for the bearer of a share token
// @Tags shared
// @Produce json
// @Param share query string true "Share token"
// @Success 200 {object} dto.APIResponse{data=dto.SharedScheduleResponse} "Shared schedule"
// @Failure 400 {object} dto.ErrorResponse "Share token missing"
// @Failure 404 {object} dto.ErrorResponse "Share link not found or expired"
// @Router /shared/schedule [get]
func (c *SharedScheduleController) GetSharedSchedule(ctx *gin.Context) {
	validation, ok := c.requireGrant(ctx)
	if !ok {
		return
	}

	schedule, err := c.shareService.SharedScheduleForGrant(ctx.Request.Context(), validation)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedule))
}

// MoveSharedCourse moves or removes a course in the shared schedule.
// Requires an edit-level token; view tokens get 403.
// @Summary Move a course via share token
// @Description Places a course in a semester (or removes it when no target is given) on behalf of an edit-level share token
// @Tags shared
// @Accept json
// @Produce json
// @Param share query string true "Share token"
// @Param request body dto.MoveSharedCourseRequest true "Course and target semester"
// @Success 200 {object} dto.APIResponse{data=models.ScheduledCourse} "New placement, null on removal"
// @Failure 400 {object} dto.ErrorResponse "Share token missing or invalid body"
// @Failure 403 {object} dto.ErrorResponse "Edit permission required"
// @Failure 404 {object} dto.ErrorResponse "Share link not found or expired"
// @Router /shared/schedule/move [post]
func (c *SharedScheduleController) MoveSharedCourse(ctx *gin.Context) {
	validation, ok := c.requireGrant(ctx)
	if !ok {
		return
	}

	var req dto.MoveSharedCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid move request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.shareService.MoveCourseForGrant(ctx.Request.Context(), validation, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The new placement comes back to the recipient; removals return null.
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// requireGrant rejects requests that carry no usable share token: 400
// when the token is absent entirely, 404 when the middleware could not
// resolve it to a grant.
func (c *SharedScheduleController) requireGrant(ctx *gin.Context) (*models.ShareValidation, bool) {
	if ctx.Query("share") == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeShareTokenMissing, "Share token is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	validation := middleware.GetShareValidation(ctx)
	if validation == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrShareNotFound)
		return nil, false
	}
	return validation, true
}
