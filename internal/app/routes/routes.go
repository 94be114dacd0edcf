package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mkaraca/courseflow/internal/app/controllers"
	"github.com/mkaraca/courseflow/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	requirementController *controllers.RequirementController,
	scheduleController *controllers.ScheduleController,
	shareController *controllers.ShareController,
	sharedScheduleController *controllers.SharedScheduleController,
	authMiddleware *middleware.AuthMiddleware,
	shareRateLimiter *middleware.RateLimiter,
	shareValidator middleware.ShareValidator,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public catalog routes ---
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/search", catalogController.Search)
		catalog.GET("/courses/:code", catalogController.GetCourse)
		catalog.GET("/departments", catalogController.ListDepartments)
		catalog.GET("/departments/:code/courses", catalogController.ListDepartmentCourses)
	}

	// --- Public shared-schedule routes ---
	// The share token in the query string is the whole credential, so these
	// sit behind the rate limiter rather than JWT auth.
	shared := v1.Group("/shared")
	shared.Use(shareRateLimiter.Handler(), middleware.ShareContext(shareValidator))
	{
		shared.GET("/schedule", sharedScheduleController.GetSharedSchedule)
		shared.POST("/schedule/move", sharedScheduleController.MoveSharedCourse)
	}

	// --- Authenticated owner routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		shares := authenticated.Group("/shares")
		{
			shares.POST("", shareController.CreateShare)
			shares.GET("", shareController.ListShares)
			shares.PUT("/:id", shareController.UpdateShare)
			shares.DELETE("/:id", shareController.DeleteShare)
		}

		requirements := authenticated.Group("/requirements")
		{
			requirements.POST("", requirementController.CreateRequirement)
			requirements.GET("", requirementController.ListRequirements)
			requirements.GET("/planner", requirementController.GetPlannerGroups)
			requirements.GET("/candidates", requirementController.GetScheduleCandidates)
			requirements.PUT("/:id", requirementController.UpdateRequirement)
			requirements.POST("/:id/toggle", requirementController.ToggleCompletion)
			requirements.DELETE("/:id", requirementController.DeleteRequirement)
		}

		years := authenticated.Group("/academic-years")
		{
			years.POST("", scheduleController.CreateAcademicYear)
			years.POST("/default", scheduleController.CreateDefaultAcademicYear)
			years.GET("", scheduleController.ListAcademicYears)
			years.PUT("/:id", scheduleController.UpdateAcademicYear)
			years.POST("/:id/activate", scheduleController.SetActiveAcademicYear)
			years.DELETE("/:id", scheduleController.DeleteAcademicYear)
		}

		semesters := authenticated.Group("/semesters")
		{
			semesters.POST("", scheduleController.CreateSemester)
			semesters.GET("", scheduleController.ListSemesters)
			semesters.GET("/:id/credits", scheduleController.GetSemesterCredits)
			semesters.DELETE("/:id", scheduleController.DeleteSemester)
		}

		courses := authenticated.Group("/courses")
		{
			courses.POST("", scheduleController.ScheduleCourse)
			courses.PUT("/:id/move", scheduleController.MoveCourse)
			courses.PUT("/:id/status", scheduleController.UpdateCourseStatus)
			courses.DELETE("/:id", scheduleController.RemoveCourse)
		}
	}
}
