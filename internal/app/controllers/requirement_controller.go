package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/app/services"
	"github.com/mkaraca/courseflow/internal/middleware"
)

// RequirementController handles degree requirement endpoints
type RequirementController struct {
	requirementService *services.RequirementService
}

// NewRequirementController creates a new RequirementController
func NewRequirementController(requirementService *services.RequirementService) *RequirementController {
	return &RequirementController{
		requirementService: requirementService,
	}
}

// CreateRequirement creates a degree requirement
// @Summary Create a requirement
// @Description Creates a degree requirement with its candidate course options
// @Tags requirements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequirementRequest true "Requirement data"
// @Success 201 {object} dto.APIResponse{data=models.Requirement} "Requirement created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /requirements [post]
func (c *RequirementController) CreateRequirement(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateRequirementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	requirement, err := c.requirementService.CreateRequirement(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(requirement))
}

// ListRequirements lists the caller's requirements
// @Summary List requirements
// @Description Returns the caller's requirements with catalog-enriched course options
// @Tags requirements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrichedRequirement} "Requirements"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /requirements [get]
func (c *RequirementController) ListRequirements(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	requirements, err := c.requirementService.ListRequirements(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requirements))
}

// UpdateRequirement applies a partial update to a requirement
// @Summary Update a requirement
// @Description Applies a partial update; omitted fields are left unchanged
// @Tags requirements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Requirement ID"
// @Param request body dto.UpdateRequirementRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Requirement} "Updated requirement"
// @Failure 400 {object} dto.ErrorResponse "Invalid requirement ID or body"
// @Failure 404 {object} dto.ErrorResponse "Requirement not found"
// @Router /requirements/{id} [put]
func (c *RequirementController) UpdateRequirement(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	requirementID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateRequirementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	requirement, err := c.requirementService.UpdateRequirement(ctx.Request.Context(), requirementID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requirement))
}

// ToggleCompletion flips a requirement's completion flag
// @Summary Toggle requirement completion
// @Description Flips the completion flag and returns the new state
// @Tags requirements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Requirement ID"
// @Success 200 {object} dto.APIResponse "New completion state"
// @Failure 400 {object} dto.ErrorResponse "Invalid requirement ID"
// @Failure 404 {object} dto.ErrorResponse "Requirement not found"
// @Router /requirements/{id}/toggle [post]
func (c *RequirementController) ToggleCompletion(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	requirementID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	completed, err := c.requirementService.ToggleCompletion(ctx.Request.Context(), requirementID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"isCompleted": completed}))
}

// DeleteRequirement removes a requirement
// @Summary Delete a requirement
// @Description Removes the requirement and its course options
// @Tags requirements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Requirement ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Requirement deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid requirement ID"
// @Failure 404 {object} dto.ErrorResponse "Requirement not found"
// @Router /requirements/{id} [delete]
func (c *RequirementController) DeleteRequirement(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	requirementID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.requirementService.DeleteRequirement(ctx.Request.Context(), requirementID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Requirement deleted"}))
}

// GetPlannerGroups returns incomplete requirements shaped for planning
// @Summary Get planner groups
// @Description Returns incomplete requirements grouped with catalog-resolved course options, sorted by category then title
// @Tags requirements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PlannerGroup} "Planner groups"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /requirements/planner [get]
func (c *RequirementController) GetPlannerGroups(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	groups, err := c.requirementService.LoadPlannerGroups(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(groups))
}

// GetScheduleCandidates returns priority-bucketed course candidates
// @Summary Get schedule candidates
// @Description Buckets catalog courses that can satisfy incomplete requirements by requirement priority
// @Tags requirements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleCandidatesResponse} "Candidates by priority"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /requirements/candidates [get]
func (c *RequirementController) GetScheduleCandidates(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	candidates, err := c.requirementService.ScheduleCandidates(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(candidates))
}
