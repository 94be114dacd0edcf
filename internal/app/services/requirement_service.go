package services

import (
	"context"
	"sort"

	"github.com/mkaraca/courseflow/internal/app/models"
	"github.com/mkaraca/courseflow/internal/app/models/dto"
	"github.com/mkaraca/courseflow/internal/app/repositories"
	"github.com/mkaraca/courseflow/internal/catalog"
	"github.com/mkaraca/courseflow/internal/planner"
)

// RequirementService handles degree requirement management and the
// planner-facing projections of requirements.
type RequirementService struct {
	requirementRepo *repositories.RequirementRepository
	catalog         *catalog.Catalog
}

// NewRequirementService creates a new RequirementService
func NewRequirementService(requirementRepo *repositories.RequirementRepository, cat *catalog.Catalog) *RequirementService {
	return &RequirementService{
		requirementRepo: requirementRepo,
		catalog:         cat,
	}
}

// CreateRequirement creates a requirement for the user
func (s *RequirementService) CreateRequirement(ctx context.Context, userID int64, req *dto.CreateRequirementRequest) (*models.Requirement, error) {
	requirement := &models.Requirement{
		UserID:        userID,
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		Priority:      req.Priority,
		Credits:       req.Credits,
		CourseOptions: req.CourseOptions,
	}
	if requirement.CourseOptions == nil {
		requirement.CourseOptions = []models.CourseOption{}
	}

	if err := s.requirementRepo.Create(ctx, requirement); err != nil {
		return nil, err
	}
	return requirement, nil
}

// ListRequirements returns the user's requirements enriched with catalog data
func (s *RequirementService) ListRequirements(ctx context.Context, userID int64) ([]dto.EnrichedRequirement, error) {
	reqs, err := s.requirementRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	enriched := make([]dto.EnrichedRequirement, 0, len(reqs))
	for _, req := range reqs {
		enriched = append(enriched, s.enrich(req))
	}
	return enriched, nil
}

// UpdateRequirement applies a partial update to a requirement
func (s *RequirementService) UpdateRequirement(ctx context.Context, id, userID int64, patch *dto.UpdateRequirementRequest) (*models.Requirement, error) {
	requirement, err := s.requirementRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		requirement.Title = *patch.Title
	}
	if patch.Category != nil {
		requirement.Category = *patch.Category
	}
	if patch.Description != nil {
		requirement.Description = patch.Description
	}
	if patch.Priority != nil {
		requirement.Priority = *patch.Priority
	}
	if patch.Credits != nil {
		requirement.Credits = *patch.Credits
	}
	if patch.IsCompleted != nil {
		requirement.IsCompleted = *patch.IsCompleted
	}
	if patch.CourseOptions != nil {
		requirement.CourseOptions = *patch.CourseOptions
	}

	if err := s.requirementRepo.Update(ctx, requirement); err != nil {
		return nil, err
	}
	return requirement, nil
}

// ToggleCompletion flips a requirement's completion flag and returns the
// new state.
func (s *RequirementService) ToggleCompletion(ctx context.Context, id, userID int64) (bool, error) {
	requirement, err := s.requirementRepo.GetByID(ctx, id, userID)
	if err != nil {
		return false, err
	}

	next := !requirement.IsCompleted
	if err := s.requirementRepo.SetCompletion(ctx, id, userID, next); err != nil {
		return false, err
	}
	return next, nil
}

// DeleteRequirement removes a requirement
func (s *RequirementService) DeleteRequirement(ctx context.Context, id, userID int64) error {
	return s.requirementRepo.Delete(ctx, id, userID)
}

// LoadPlannerGroups shapes the user's incomplete requirements for the
// semester-planning view. Requirements with no course options are skipped;
// each option is resolved against the catalog with the requirement's own
// data as fallback. Groups come back sorted by category, then title.
func (s *RequirementService) LoadPlannerGroups(ctx context.Context, userID int64) ([]dto.PlannerGroup, error) {
	reqs, err := s.requirementRepo.ListIncompleteForPlanning(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := make([]dto.PlannerGroup, 0, len(reqs))
	for _, req := range reqs {
		if len(req.CourseOptions) == 0 {
			continue
		}

		courses := make([]dto.PlannerCourse, 0, len(req.CourseOptions))
		for _, opt := range req.CourseOptions {
			courses = append(courses, s.plannerCourse(req, opt))
		}

		groups = append(groups, dto.PlannerGroup{
			ID:          req.ID,
			Name:        req.Title,
			Category:    req.Category,
			Description: req.Description,
			Credits:     req.Credits,
			Courses:     courses,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Category != groups[j].Category {
			return groups[i].Category < groups[j].Category
		}
		return groups[i].Name < groups[j].Name
	})

	return groups, nil
}

// plannerCourse resolves one course option: the option's own name wins,
// then the catalog title, then the bare code; credits come from the
// catalog, then the requirement, then default to 3.
func (s *RequirementService) plannerCourse(req *models.Requirement, opt models.CourseOption) dto.PlannerCourse {
	course := dto.PlannerCourse{
		Code:             opt.Code,
		Name:             opt.Name,
		Credits:          3,
		Semesters:        []string{},
		Category:         req.Category,
		RequirementID:    req.ID,
		RequirementTitle: req.Title,
	}

	if req.Credits > 0 {
		course.Credits = req.Credits
	}

	if entry := s.catalog.GetByNumber(opt.Code); entry != nil {
		course.FromCatalog = true
		course.Description = entry.Description
		course.Semesters = entry.Semesters
		if course.Name == "" {
			course.Name = entry.Title
		}
		if entry.Credits > 0 {
			course.Credits = entry.Credits
		}
	}

	if course.Name == "" {
		course.Name = opt.Code
	}
	return course
}

// ScheduleCandidates resolves the user's incomplete requirement options
// against the catalog and buckets the matches by requirement priority.
func (s *RequirementService) ScheduleCandidates(ctx context.Context, userID int64) (*dto.ScheduleCandidatesResponse, error) {
	reqs, err := s.requirementRepo.ListIncompleteForPlanning(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var available []planner.Course
	for _, req := range reqs {
		for _, opt := range req.CourseOptions {
			entry := s.catalog.GetByNumber(opt.Code)
			if entry == nil || seen[entry.Code] {
				continue
			}
			seen[entry.Code] = true
			available = append(available, planner.Course{
				Code:    entry.Code,
				Name:    entry.Title,
				Credits: entry.Credits,
			})
		}
	}

	opts := planner.GenerateScheduleOptions(reqs, available)
	return &dto.ScheduleCandidatesResponse{
		HighPriority:   toScheduleCandidates(opts.HighPriority),
		MediumPriority: toScheduleCandidates(opts.MediumPriority),
		LowPriority:    toScheduleCandidates(opts.LowPriority),
	}, nil
}

func toScheduleCandidates(candidates []planner.Candidate) []dto.ScheduleCandidate {
	out := make([]dto.ScheduleCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, dto.ScheduleCandidate{
			Code:             c.Course.Code,
			Name:             c.Course.Name,
			Credits:          c.Course.Credits,
			RequirementID:    c.Requirement.ID,
			RequirementTitle: c.Requirement.Title,
			Priority:         c.Priority,
		})
	}
	return out
}

func (s *RequirementService) enrich(req *models.Requirement) dto.EnrichedRequirement {
	options := make([]catalog.EnhancedOption, 0, len(req.CourseOptions))
	for _, opt := range req.CourseOptions {
		options = append(options, s.catalog.EnhanceOption(opt.Code, opt.Name))
	}

	return dto.EnrichedRequirement{
		ID:            req.ID,
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		Priority:      req.Priority,
		Credits:       req.Credits,
		IsCompleted:   req.IsCompleted,
		CourseOptions: options,
		CreatedAt:     req.CreatedAt,
	}
}
