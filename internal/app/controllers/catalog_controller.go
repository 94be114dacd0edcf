package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/catalog"
)

const (
	minSearchQueryLength = 2
	defaultSearchLimit   = 20
	maxSearchLimit       = 100
)

// CatalogController serves read-only catalog lookups
type CatalogController struct {
	catalog *catalog.Catalog
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(cat *catalog.Catalog) *CatalogController {
	return &CatalogController{
		catalog: cat,
	}
}

// Search looks up catalog courses by code or title. Queries shorter than
// two characters return an empty result rather than an error.
// @Summary Search the course catalog
// @Description Ranked search over course codes and titles; code matches always rank above title matches
// @Tags catalog
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results (default 20, max 100)"
// @Success 200 {object} dto.APIResponse{data=[]catalog.SearchResult} "Ranked matches"
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Router /catalog/search [get]
func (c *CatalogController) Search(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("q"))
	if len(query) < minSearchQueryLength {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse([]catalog.SearchResult{}))
		return
	}

	limit := defaultSearchLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		if parsed > maxSearchLimit {
			parsed = maxSearchLimit
		}
		limit = parsed
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.catalog.Search(query, limit)))
}

// GetCourse fetches one catalog course by code
// @Summary Get a catalog course
// @Tags catalog
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse{data=catalog.Course} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /catalog/courses/{code} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	code := ctx.Param("code")
	course := c.catalog.GetByNumber(code)
	if course == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// ListDepartments lists department prefixes present in the catalog
// @Summary List departments
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string} "Department codes"
// @Router /catalog/departments [get]
func (c *CatalogController) ListDepartments(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.catalog.Departments()))
}

// ListDepartmentCourses lists a department's catalog courses
// @Summary List a department's courses
// @Tags catalog
// @Produce json
// @Param code path string true "Department code"
// @Success 200 {object} dto.APIResponse{data=[]catalog.Course} "Courses"
// @Router /catalog/departments/{code}/courses [get]
func (c *CatalogController) ListDepartmentCourses(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.catalog.CoursesByDepartment(ctx.Param("code"))))
}
