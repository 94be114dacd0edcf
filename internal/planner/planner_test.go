package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/courseflow/internal/app/models"
)

func section(days []string, start, end string) Section {
	return Section{Days: days, StartTime: start, EndTime: end}
}

func TestHasTimeConflict(t *testing.T) {
	tests := []struct {
		name string
		a, b Section
		want bool
	}{
		{
			"overlapping times on shared day",
			section([]string{"M", "W", "F"}, "09:00", "09:50"),
			section([]string{"M"}, "09:30", "10:20"),
			true,
		},
		{
			"same times on disjoint days",
			section([]string{"M", "W"}, "09:00", "09:50"),
			section([]string{"T", "R"}, "09:00", "09:50"),
			false,
		},
		{
			"back to back is not a conflict",
			section([]string{"M"}, "09:00", "09:50"),
			section([]string{"M"}, "09:50", "10:40"),
			false,
		},
		{
			"containment conflicts",
			section([]string{"T"}, "13:00", "15:00"),
			section([]string{"T"}, "13:30", "14:00"),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasTimeConflict(tt.a, tt.b))
			assert.Equal(t, tt.want, HasTimeConflict(tt.b, tt.a))
		})
	}
}

func TestRequirementMatches(t *testing.T) {
	mathReq := &models.Requirement{
		ID:    1,
		Title: "Quantitative Reasoning",
		CourseOptions: []models.CourseOption{
			{Code: "MATH 101"},
			{Code: "STAT 201"},
		},
	}
	csReq := &models.Requirement{
		ID:    2,
		Title: "Programming Fundamentals",
		CourseOptions: []models.CourseOption{
			{Code: "CS 110"},
		},
	}
	requirements := []*models.Requirement{mathReq, csReq}

	t.Run("exact option code matches", func(t *testing.T) {
		matches := RequirementMatches(Course{Code: "STAT 201"}, requirements)
		require.Len(t, matches, 1)
		assert.Equal(t, mathReq.ID, matches[0].ID)
	})

	t.Run("department prefix matches", func(t *testing.T) {
		matches := RequirementMatches(Course{Code: "MATH 230"}, requirements)
		require.Len(t, matches, 1)
		assert.Equal(t, mathReq.ID, matches[0].ID)
	})

	t.Run("unrelated course matches nothing", func(t *testing.T) {
		assert.Empty(t, RequirementMatches(Course{Code: "ART 115"}, requirements))
	})
}

func TestGenerateScheduleOptions(t *testing.T) {
	requirements := []*models.Requirement{
		{
			ID: 1, Priority: 5,
			CourseOptions: []models.CourseOption{{Code: "MATH 101"}},
		},
		{
			ID: 2, Priority: 3,
			CourseOptions: []models.CourseOption{{Code: "CS 110"}},
		},
		{
			ID: 3, Priority: 1,
			CourseOptions: []models.CourseOption{{Code: "ART 115"}},
		},
		{
			ID: 4, Priority: 5, IsCompleted: true,
			CourseOptions: []models.CourseOption{{Code: "ENGL 101"}},
		},
	}
	available := []Course{
		{Code: "MATH 101", Credits: 4},
		{Code: "CS 110", Credits: 4},
		{Code: "ART 115", Credits: 3},
		{Code: "ENGL 101", Credits: 3},
	}

	opts := GenerateScheduleOptions(requirements, available)

	// Completed requirements contribute no candidates
	require.Len(t, opts.Candidates, 3)
	for _, c := range opts.Candidates {
		assert.NotEqual(t, "ENGL 101", c.Course.Code)
	}

	// Sorted by priority descending
	assert.Equal(t, "MATH 101", opts.Candidates[0].Course.Code)
	assert.Equal(t, "ART 115", opts.Candidates[2].Course.Code)

	require.Len(t, opts.HighPriority, 1)
	assert.Equal(t, "MATH 101", opts.HighPriority[0].Course.Code)
	require.Len(t, opts.MediumPriority, 1)
	assert.Equal(t, "CS 110", opts.MediumPriority[0].Course.Code)
	require.Len(t, opts.LowPriority, 1)
	assert.Equal(t, "ART 115", opts.LowPriority[0].Course.Code)
}

func TestGenerateScheduleOptions_UnavailableOptionsSkipped(t *testing.T) {
	requirements := []*models.Requirement{
		{ID: 1, Priority: 4, CourseOptions: []models.CourseOption{{Code: "MATH 101"}, {Code: "MATH 102"}}},
	}
	available := []Course{{Code: "MATH 102", Credits: 4}}

	opts := GenerateScheduleOptions(requirements, available)

	require.Len(t, opts.Candidates, 1)
	assert.Equal(t, "MATH 102", opts.Candidates[0].Course.Code)
}
