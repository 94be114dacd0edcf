package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/app/services"
	"github.com/mkaraca/courseflow/internal/middleware"
)

// ShareController handles the owner-facing share link management endpoints.
// Everything here runs behind JWT auth; the recipient-facing endpoints
// live in SharedScheduleController.
type ShareController struct {
	shareService *services.ShareService
}

// NewShareController creates a new ShareController
func NewShareController(shareService *services.ShareService) *ShareController {
	return &ShareController{
		shareService: shareService,
	}
}

// CreateShare mints a new share link
// @Summary Create a share link
// @Description Creates a view or edit share link for the caller's schedule
// @Tags shares
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateShareRequest true "Share settings"
// @Success 201 {object} dto.APIResponse{data=dto.ShareResponse} "Share link created"
// @Failure 400 {object} dto.ErrorResponse "Invalid permission level"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /shares [post]
func (c *ShareController) CreateShare(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateShareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid share data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	share, err := c.shareService.CreateShare(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(share))
}

// ListShares lists the caller's share links
// @Summary List share links
// @Description Returns all of the caller's share links with access telemetry, newest first
// @Tags shares
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ShareResponse} "Share links"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /shares [get]
func (c *ShareController) ListShares(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	shares, err := c.shareService.ListShares(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(shares))
}

// UpdateShare changes a share link's settings
// @Summary Update a share link
// @Description Changes permission level, description or expiry. The token itself never changes.
// @Tags shares
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Share ID"
// @Param request body dto.UpdateShareRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ShareResponse} "Updated share link"
// @Failure 400 {object} dto.ErrorResponse "Invalid share ID or permission level"
// @Failure 404 {object} dto.ErrorResponse "Share link not found"
// @Router /shares/{id} [put]
func (c *ShareController) UpdateShare(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	shareID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid share ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateShareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid share data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	share, err := c.shareService.UpdateShare(ctx.Request.Context(), shareID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(share))
}

// DeleteShare revokes a share link
// @Summary Revoke a share link
// @Description Deletes the share link; its token stops validating immediately
// @Tags shares
// @Produce json
// @Security BearerAuth
// @Param id path int true "Share ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Share link revoked"
// @Failure 400 {object} dto.ErrorResponse "Invalid share ID"
// @Failure 404 {object} dto.ErrorResponse "Share link not found"
// @Router /shares/{id} [delete]
func (c *ShareController) DeleteShare(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	shareID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid share ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.shareService.DeleteShare(ctx.Request.Context(), shareID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Share link revoked"}))
}
