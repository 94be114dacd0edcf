package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/app/services"
	"github.com/mkaraca/courseflow/internal/middleware"
)

// ScheduleController handles academic year, semester and course placement
// endpoints for the authenticated owner.
type ScheduleController struct {
	scheduleService *services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateAcademicYear creates an academic year
// @Summary Create an academic year
// @Description Creates an academic year spanning the given dates
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademicYearRequest true "Academic year data"
// @Success 201 {object} dto.APIResponse{data=models.AcademicYear} "Academic year created"
// @Failure 400 {object} dto.ErrorResponse "Invalid dates"
// @Router /academic-years [post]
func (c *ScheduleController) CreateAcademicYear(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	year, err := c.scheduleService.CreateAcademicYear(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(year))
}

// CreateDefaultAcademicYear creates the current academic year with defaults
// @Summary Create the default academic year
// @Description Creates the current academic year with Fall, Spring and Summer semesters
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.APIResponse{data=models.AcademicYear} "Academic year created"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /academic-years/default [post]
func (c *ScheduleController) CreateDefaultAcademicYear(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	year, err := c.scheduleService.CreateDefaultAcademicYear(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(year))
}

// ListAcademicYears lists the caller's academic years
// @Summary List academic years
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicYear} "Academic years"
// @Router /academic-years [get]
func (c *ScheduleController) ListAcademicYears(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	years, err := c.scheduleService.ListAcademicYears(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(years))
}

// UpdateAcademicYear updates an academic year
// @Summary Update an academic year
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param request body dto.UpdateAcademicYearRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Updated academic year"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id} [put]
func (c *ScheduleController) UpdateAcademicYear(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	yearID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	year, err := c.scheduleService.UpdateAcademicYear(ctx.Request.Context(), yearID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(year))
}

// SetActiveAcademicYear marks one academic year active
// @Summary Activate an academic year
// @Description Marks the year active; any previously active year is deactivated
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Academic year activated"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id}/activate [post]
func (c *ScheduleController) SetActiveAcademicYear(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	yearID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.scheduleService.SetActiveAcademicYear(ctx.Request.Context(), yearID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Academic year activated"}))
}

// DeleteAcademicYear removes an academic year
// @Summary Delete an academic year
// @Description Removes the year and, via cascade, its semesters and placements
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Academic year deleted"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id} [delete]
func (c *ScheduleController) DeleteAcademicYear(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	yearID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteAcademicYear(ctx.Request.Context(), yearID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Academic year deleted"}))
}

// CreateSemester creates a semester within an academic year
// @Summary Create a semester
// @Description Creates a semester; max credits default by term when omitted
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSemesterRequest true "Semester data"
// @Success 201 {object} dto.APIResponse{data=models.Semester} "Semester created"
// @Failure 400 {object} dto.ErrorResponse "Invalid term type"
// @Router /semesters [post]
func (c *ScheduleController) CreateSemester(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.scheduleService.CreateSemester(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(semester))
}

// ListSemesters lists the caller's semesters with their placements
// @Summary List semesters
// @Description Returns the caller's semesters in chronological order with scheduled courses attached
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Semester} "Semesters"
// @Router /semesters [get]
func (c *ScheduleController) ListSemesters(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	semesters, err := c.scheduleService.ListSemesters(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(semesters))
}

// DeleteSemester removes a semester
// @Summary Delete a semester
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Semester deleted"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id} [delete]
func (c *ScheduleController) DeleteSemester(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	semesterID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteSemester(ctx.Request.Context(), semesterID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Semester deleted"}))
}

// GetSemesterCredits totals a semester's credit load
// @Summary Get semester credits
// @Description Sums credits of planned, enrolled and completed placements
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Success 200 {object} dto.APIResponse "Credit total"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id}/credits [get]
func (c *ScheduleController) GetSemesterCredits(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	semesterID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	credits, err := c.scheduleService.CalculateSemesterCredits(ctx.Request.Context(), semesterID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"credits": credits}))
}

// ScheduleCourse places a course in a semester
// @Summary Schedule a course
// @Description Places a course in a semester; each course code is scheduled at most once per user
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleCourseRequest true "Course placement"
// @Success 201 {object} dto.APIResponse{data=models.ScheduledCourse} "Course scheduled"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Failure 409 {object} dto.ErrorResponse "Course already scheduled"
// @Router /courses [post]
func (c *ScheduleController) ScheduleCourse(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ScheduleCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.scheduleService.ScheduleCourse(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// MoveCourse moves a placement to another semester
// @Summary Move a scheduled course
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scheduled course ID"
// @Param request body dto.MoveCourseRequest true "Target semester"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course moved"
// @Failure 404 {object} dto.ErrorResponse "Course or semester not found"
// @Router /courses/{id}/move [put]
func (c *ScheduleController) MoveCourse(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MoveCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid move data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.scheduleService.MoveCourse(ctx.Request.Context(), courseID, userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course moved"}))
}

// UpdateCourseStatus changes a placement's status
// @Summary Update course status
// @Description Sets the placement status (planned, enrolled, completed or dropped)
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scheduled course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/status [put]
func (c *ScheduleController) UpdateCourseStatus(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.CourseStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Status is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.scheduleService.UpdateCourseStatus(ctx.Request.Context(), courseID, userID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Status updated"}))
}

// RemoveCourse deletes a placement
// @Summary Remove a scheduled course
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scheduled course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course removed"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *ScheduleController) RemoveCourse(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.scheduleService.RemoveCourse(ctx.Request.Context(), courseID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course removed"}))
}
