package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkaraca/courseflow/internal/app/models"
)

func TestPlannerCourse_FallbackChain(t *testing.T) {
	svc := &RequirementService{catalog: testCatalog(t)}

	req := &models.Requirement{
		ID:       1,
		Title:    "Quantitative Reasoning",
		Category: "Core",
		Credits:  5,
	}

	t.Run("catalog course fills name, credits and offerings", func(t *testing.T) {
		course := svc.plannerCourse(req, models.CourseOption{Code: "MATH 101"})

		assert.True(t, course.FromCatalog)
		assert.Equal(t, "Calculus I", course.Name)
		assert.Equal(t, 4, course.Credits) // catalog credits win over requirement credits
		assert.Equal(t, []string{"Fall", "Spring"}, course.Semesters)
		assert.Equal(t, "Core", course.Category)
		assert.Equal(t, req.ID, course.RequirementID)
	})

	t.Run("option name wins over catalog title", func(t *testing.T) {
		course := svc.plannerCourse(req, models.CourseOption{Code: "MATH 101", Name: "Calc for Engineers"})

		assert.Equal(t, "Calc for Engineers", course.Name)
	})

	t.Run("unknown course falls back to requirement credits", func(t *testing.T) {
		course := svc.plannerCourse(req, models.CourseOption{Code: "XX 999"})

		assert.False(t, course.FromCatalog)
		assert.Equal(t, "XX 999", course.Name) // code is the last-resort name
		assert.Equal(t, 5, course.Credits)
		assert.Empty(t, course.Semesters)
	})

	t.Run("unknown course without requirement credits defaults to 3", func(t *testing.T) {
		bare := &models.Requirement{ID: 2, Title: "Elective", Category: "Open"}
		course := svc.plannerCourse(bare, models.CourseOption{Code: "YY 100"})

		assert.Equal(t, 3, course.Credits)
	})
}
