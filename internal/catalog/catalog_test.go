package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load()
	require.NoError(t, err)
	require.Greater(t, cat.Len(), 0)
	return cat
}

func TestLoad_VariableCreditFallsBackToThree(t *testing.T) {
	cat := loadTestCatalog(t)

	// KIN 160 lists "1-3" semester hours in the dataset
	course := cat.GetByNumber("KIN 160")
	require.NotNil(t, course)
	assert.Equal(t, 3, course.Credits)
}

func TestGetByNumber_CaseInsensitive(t *testing.T) {
	cat := loadTestCatalog(t)

	for _, code := range []string{"MATH 101", "math 101", "Math 101"} {
		course := cat.GetByNumber(code)
		require.NotNil(t, course, code)
		assert.Equal(t, "MATH 101", course.Code)
		assert.Equal(t, "Calculus I", course.Title)
	}

	assert.Nil(t, cat.GetByNumber("MATH 999"))
}

func TestSearch_ShortQueryReturnsNothing(t *testing.T) {
	cat := loadTestCatalog(t)

	assert.Empty(t, cat.Search("m", 10))
	assert.Empty(t, cat.Search(" ", 10))
	assert.Empty(t, cat.Search("", 10))
}

func TestSearch_CodeMatchesRankAboveTitleMatches(t *testing.T) {
	cat := loadTestCatalog(t)

	// "cs" matches the CS department codes and, by substring, titles like
	// "Physics I" and "Principles of Microeconomics"
	results := cat.Search("cs", 20)
	require.NotEmpty(t, results)

	sawTitleMatch := false
	for _, r := range results {
		if r.MatchType == MatchTitle {
			sawTitleMatch = true
		}
		if r.MatchType == MatchCode {
			assert.False(t, sawTitleMatch, "code match %s ranked below a title match", r.Code)
		}
	}
	assert.True(t, sawTitleMatch)
}

func TestSearch_NoDuplicatesAcrossPasses(t *testing.T) {
	cat := loadTestCatalog(t)

	// "math" hits MATH course codes and the title "Discrete Mathematics",
	// which belongs to a course already found by code
	results := cat.Search("math", 20)
	require.NotEmpty(t, results)

	seen := make(map[string]bool)
	for _, r := range results {
		assert.False(t, seen[r.Code], "duplicate result %s", r.Code)
		seen[r.Code] = true
	}
}

func TestSearch_RespectsLimit(t *testing.T) {
	cat := loadTestCatalog(t)

	results := cat.Search("math", 2)
	assert.Len(t, results, 2)
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		text  string
		query string
		want  int
	}{
		{"MATH 101", "math 101", 100},
		{"MATH 101", "math", 80},
		{"Introduction to Statistics", "statistics", 60},
		{"Microeconomics", "econ", 40},
		{"Calculus I", "zzz", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchScore(tt.text, tt.query), "%s / %s", tt.text, tt.query)
	}
}

func TestEnhanceOption(t *testing.T) {
	cat := loadTestCatalog(t)

	t.Run("catalog course fills display fields", func(t *testing.T) {
		opt := cat.EnhanceOption("MATH 101", "")
		assert.True(t, opt.FromCatalog)
		assert.Equal(t, "Calculus I", opt.Name)
		assert.Equal(t, 4, opt.Credits)
		assert.Equal(t, []string{"Fall", "Spring"}, opt.Semesters)
	})

	t.Run("supplied name is never overwritten", func(t *testing.T) {
		opt := cat.EnhanceOption("MATH 101", "Calc for Engineers")
		assert.True(t, opt.FromCatalog)
		assert.Equal(t, "Calc for Engineers", opt.Name)
	})

	t.Run("unknown course keeps empty fields", func(t *testing.T) {
		opt := cat.EnhanceOption("XX 999", "Transfer Credit")
		assert.False(t, opt.FromCatalog)
		assert.Equal(t, "Transfer Credit", opt.Name)
		assert.Zero(t, opt.Credits)
		assert.Empty(t, opt.Semesters)
	})
}

func TestIsOfferedIn(t *testing.T) {
	cat := loadTestCatalog(t)

	assert.True(t, cat.IsOfferedIn("MATH 230", "Spring"))
	assert.False(t, cat.IsOfferedIn("MATH 230", "Fall"))

	// No offering data means offered everywhere
	assert.True(t, cat.IsOfferedIn("KIN 160", "Winter"))
	assert.True(t, cat.IsOfferedIn("UNKNOWN 1", "Fall"))
}

func TestFormatSemesterList(t *testing.T) {
	assert.Equal(t, "", FormatSemesterList(nil))
	assert.Equal(t, "Fall, Spring, Summer", FormatSemesterList([]string{"Summer", "Fall", "Spring"}))
	assert.Equal(t, "Fall, Spring, Winter", FormatSemesterList([]string{"Winter", "Spring", "Fall"}))
}

func TestDepartments(t *testing.T) {
	cat := loadTestCatalog(t)

	departments := cat.Departments()
	assert.Contains(t, departments, "MATH")
	assert.Contains(t, departments, "CS")
	assert.IsType(t, []string{}, departments)

	// Sorted ascending
	for i := 1; i < len(departments); i++ {
		assert.Less(t, departments[i-1], departments[i])
	}
}

func TestCoursesByDepartment(t *testing.T) {
	cat := loadTestCatalog(t)

	courses := cat.CoursesByDepartment("math")
	require.NotEmpty(t, courses)
	for _, course := range courses {
		assert.Contains(t, course.Code, "MATH ")
	}

	assert.Empty(t, cat.CoursesByDepartment("NOPE"))
}
