// Package planner holds schedule-planning building blocks: requirement
// matching, section time-conflict detection, and priority bucketing of
// candidate courses. It deliberately stops short of generating schedules.
package planner

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mkaraca/courseflow/internal/app/models"
)

// Course is a plannable course with its meeting sections.
type Course struct {
	Code     string
	Name     string
	Credits  int
	Category string
	Sections []Section
}

// Section is one meeting pattern of a course.
type Section struct {
	SectionNumber string
	Instructor    string
	Days          []string // "M", "T", "W", "R", "F"
	StartTime     string   // "09:00"
	EndTime       string   // "09:50"
	Location      string
	Capacity      int
	Enrolled      int
}

// Candidate pairs a course with the requirement it could satisfy.
type Candidate struct {
	Course      Course
	Requirement *models.Requirement
	Priority    int
}

// ScheduleOptions buckets candidate courses by requirement priority.
// A future schedule generator would consume these buckets; for now they
// are surfaced as-is.
type ScheduleOptions struct {
	Candidates     []Candidate
	HighPriority   []Candidate
	MediumPriority []Candidate
	LowPriority    []Candidate
}

// RequirementMatches returns the requirements a course can satisfy, either
// by exact option code or by sharing the option's department prefix.
func RequirementMatches(course Course, requirements []*models.Requirement) []*models.Requirement {
	dept, _, _ := strings.Cut(course.Code, " ")

	var matches []*models.Requirement
	for _, req := range requirements {
		for _, option := range req.CourseOptions {
			if option.Code == course.Code || (dept != "" && strings.Contains(option.Code, dept)) {
				matches = append(matches, req)
				break
			}
		}
	}
	return matches
}

// HasTimeConflict reports whether two sections overlap on any shared day.
func HasTimeConflict(a, b Section) bool {
	daysOverlap := false
	for _, day := range a.Days {
		for _, other := range b.Days {
			if day == other {
				daysOverlap = true
			}
		}
	}
	if !daysOverlap {
		return false
	}

	startA := timeToMinutes(a.StartTime)
	endA := timeToMinutes(a.EndTime)
	startB := timeToMinutes(b.StartTime)
	endB := timeToMinutes(b.EndTime)

	return startA < endB && startB < endA
}

// timeToMinutes converts "HH:MM" to minutes since midnight.
func timeToMinutes(t string) int {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return 0
	}
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	return hours*60 + minutes
}

// GenerateScheduleOptions collects courses that can satisfy incomplete
// requirements and buckets them by priority. It does not attempt to build
// conflict-free schedules.
func GenerateScheduleOptions(requirements []*models.Requirement, available []Course) ScheduleOptions {
	byCode := make(map[string]Course, len(available))
	for _, c := range available {
		byCode[c.Code] = c
	}

	var candidates []Candidate
	for _, req := range requirements {
		if req.IsCompleted {
			continue
		}
		for _, option := range req.CourseOptions {
			if course, ok := byCode[option.Code]; ok {
				candidates = append(candidates, Candidate{
					Course:      course,
					Requirement: req,
					Priority:    req.Priority,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	opts := ScheduleOptions{Candidates: candidates}
	for _, c := range candidates {
		switch {
		case c.Priority >= 4:
			opts.HighPriority = append(opts.HighPriority, c)
		case c.Priority == 3:
			opts.MediumPriority = append(opts.MediumPriority, c)
		default:
			opts.LowPriority = append(opts.LowPriority, c)
		}
	}

	return opts
}
