// Package catalog provides read-only lookup over the static course catalog.
// The dataset is embedded at build time and treated as immutable for the
// process lifetime.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

//go:embed data/catalog.json
var rawCatalog []byte

// Course is one catalog record.
type Course struct {
	Code        string   `json:"course_number"`
	Title       string   `json:"title"`
	Credits     int      `json:"semester_hours"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Semesters   []string `json:"semester"`
}

// rawCourse mirrors the upstream data file, where semester_hours is a string.
type rawCourse struct {
	CourseNumber  string   `json:"course_number"`
	Title         string   `json:"title"`
	SemesterHours string   `json:"semester_hours"`
	Description   string   `json:"description"`
	URL           string   `json:"url"`
	Semester      []string `json:"semester"`
}

// MatchType distinguishes where a search hit matched.
type MatchType string

const (
	MatchCode  MatchType = "code"
	MatchTitle MatchType = "title"
)

// SearchResult is a catalog course annotated with match metadata.
type SearchResult struct {
	Course
	MatchType MatchType `json:"matchType"`
	Score     int       `json:"score"`
}

// EnhancedOption is a requirement course option merged with catalog data.
type EnhancedOption struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Credits     int      `json:"credits"`
	Semesters   []string `json:"semesters"`
	Description string   `json:"description"`
	FromCatalog bool     `json:"fromCatalog"`
}

// Catalog is an in-memory course table with pure lookup operations.
type Catalog struct {
	courses []Course
	byCode  map[string]*Course
}

// Load parses the embedded catalog dataset. Called once at process start.
func Load() (*Catalog, error) {
	return loadFrom(rawCatalog)
}

func loadFrom(data []byte) (*Catalog, error) {
	var raw []rawCourse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog data: %w", err)
	}

	c := &Catalog{
		courses: make([]Course, 0, len(raw)),
		byCode:  make(map[string]*Course, len(raw)),
	}

	for _, r := range raw {
		hours, err := strconv.Atoi(strings.TrimSpace(r.SemesterHours))
		if err != nil {
			// Variable-credit listings ("1-3") fall back to 3
			hours = 3
		}
		c.courses = append(c.courses, Course{
			Code:        r.CourseNumber,
			Title:       r.Title,
			Credits:     hours,
			Description: r.Description,
			URL:         r.URL,
			Semesters:   r.Semester,
		})
	}

	for i := range c.courses {
		c.byCode[strings.ToLower(c.courses[i].Code)] = &c.courses[i]
	}

	return c, nil
}

// Len returns the number of catalog records.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Search finds courses whose code or title contains the query. Code matches
// are collected first and always rank above title matches; within each group
// results are ordered by match score. Queries shorter than two characters
// return nothing.
func (c *Catalog) Search(query string, limit int) []SearchResult {
	query = strings.TrimSpace(strings.ToLower(query))
	if len(query) < 2 {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	var results []SearchResult
	seen := make(map[string]bool)

	for _, course := range c.courses {
		if strings.Contains(strings.ToLower(course.Code), query) {
			results = append(results, SearchResult{
				Course:    course,
				MatchType: MatchCode,
				Score:     matchScore(course.Code, query),
			})
			seen[course.Code] = true
		}
	}

	if len(results) < limit {
		for _, course := range c.courses {
			// Skip courses already found by the code pass
			if seen[course.Code] {
				continue
			}
			if strings.Contains(strings.ToLower(course.Title), query) {
				results = append(results, SearchResult{
					Course:    course,
					MatchType: MatchTitle,
					Score:     matchScore(course.Title, query),
				})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchType != results[j].MatchType {
			return results[i].MatchType == MatchCode
		}
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// matchScore ranks how well text matches the (lowercased) query:
// exact 100, prefix 80, whole-word containment 60, substring 40.
func matchScore(text, query string) int {
	textLower := strings.ToLower(text)

	if textLower == query {
		return 100
	}
	if strings.HasPrefix(textLower, query) {
		return 80
	}
	if strings.Contains(textLower, " "+query) || strings.Contains(textLower, query+" ") {
		return 60
	}
	if strings.Contains(textLower, query) {
		return 40
	}
	return 0
}

// GetByNumber returns the course with the exact course number,
// case-insensitively, or nil when the catalog has no such course.
func (c *Catalog) GetByNumber(courseNumber string) *Course {
	return c.byCode[strings.ToLower(courseNumber)]
}

// EnhanceOption merges a requirement course option with catalog data. A
// caller-supplied display name is never overwritten, only filled in when
// absent. Options without a catalog match keep empty display fields and are
// marked FromCatalog=false.
func (c *Catalog) EnhanceOption(code, name string) EnhancedOption {
	course := c.GetByNumber(code)
	if course == nil {
		return EnhancedOption{
			Code:        code,
			Name:        name,
			Semesters:   []string{},
			FromCatalog: false,
		}
	}

	if name == "" {
		name = course.Title
	}

	semesters := course.Semesters
	if semesters == nil {
		semesters = []string{}
	}

	return EnhancedOption{
		Code:        code,
		Name:        name,
		Credits:     course.Credits,
		Semesters:   semesters,
		Description: course.Description,
		FromCatalog: true,
	}
}

// Departments returns the sorted set of department codes in the catalog.
func (c *Catalog) Departments() []string {
	set := make(map[string]bool)
	for _, course := range c.courses {
		dept, _, _ := strings.Cut(course.Code, " ")
		if dept != "" {
			set[dept] = true
		}
	}

	departments := make([]string, 0, len(set))
	for dept := range set {
		departments = append(departments, dept)
	}
	sort.Strings(departments)
	return departments
}

// CoursesByDepartment returns all courses whose code starts with the
// department prefix.
func (c *Catalog) CoursesByDepartment(department string) []Course {
	prefix := strings.ToUpper(strings.TrimSpace(department))
	var courses []Course
	for _, course := range c.courses {
		if strings.HasPrefix(course.Code, prefix) {
			courses = append(courses, course)
		}
	}
	return courses
}

// IsOfferedIn reports whether a course is offered in the given term.
// Courses the catalog has no offering data for are allowed everywhere.
func (c *Catalog) IsOfferedIn(courseCode, term string) bool {
	course := c.GetByNumber(courseCode)
	if course == nil || len(course.Semesters) == 0 {
		return true
	}
	for _, s := range course.Semesters {
		if s == term {
			return true
		}
	}
	return false
}

// FormatSemesterList renders offering terms in academic order.
func FormatSemesterList(semesters []string) string {
	if len(semesters) == 0 {
		return ""
	}

	order := map[string]int{"Fall": 1, "Spring": 2, "Summer": 3, "Winter": 4}
	sorted := make([]string, len(semesters))
	copy(sorted, semesters)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, ok := order[sorted[i]]
		if !ok {
			oi = 5
		}
		oj, ok := order[sorted[j]]
		if !ok {
			oj = 5
		}
		return oi < oj
	})

	return strings.Join(sorted, ", ")
}
