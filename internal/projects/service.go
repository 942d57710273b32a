package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"impact-ledger/impact-portal-backend/internal/scoring"
)

// Requests

type CreateProjectRequest struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ProjectType   string    `json:"project_type"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Investment    float64   `json:"investment"`
	Beneficiaries int       `json:"beneficiaries"`
	DurationYears int       `json:"duration_years"`

	JobsCreated             int     `json:"jobs_created"`
	FamiliesExitedSubsidy   int     `json:"families_exited_subsidy"`
	StudentsRetained        int     `json:"students_retained"`
	YouthsServed            int     `json:"youths_served"`
	HospitalizationsAvoided int     `json:"hospitalizations_avoided"`
	HectaresRestored        float64 `json:"hectares_restored"`
	Biome                   string  `json:"biome"`
	RestorationMethod       string  `json:"restoration_method"`
	AreaType                string  `json:"area_type"`
}

type UpdateProjectRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Investment    *float64 `json:"investment"`
	Beneficiaries *int     `json:"beneficiaries"`
	DurationYears *int     `json:"duration_years"`

	JobsCreated             *int     `json:"jobs_created"`
	FamiliesExitedSubsidy   *int     `json:"families_exited_subsidy"`
	StudentsRetained        *int     `json:"students_retained"`
	YouthsServed            *int     `json:"youths_served"`
	HospitalizationsAvoided *int     `json:"hospitalizations_avoided"`
	HectaresRestored        *float64 `json:"hectares_restored"`
	Biome                   *string  `json:"biome"`
	RestorationMethod       *string  `json:"restoration_method"`
	AreaType                *string  `json:"area_type"`
}

// Service interface
type Service interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)

	ScoreProject(ctx context.Context, id uuid.UUID) (*Assessment, *scoring.CompositeResult, error)
	ScoreFacts(ctx context.Context, facts scoring.ProjectFacts) (*scoring.CompositeResult, error)
	LatestAssessment(ctx context.Context, projectID uuid.UUID) (*Assessment, error)
	ListAssessments(ctx context.Context, projectID uuid.UUID) ([]Assessment, error)
	ListActivities(ctx context.Context, projectID uuid.UUID) ([]ProjectActivity, error)
}

// Implementation
type service struct {
	repo   Repository
	engine *scoring.Engine
	logger *zap.Logger
}

func NewService(repo Repository, engine *scoring.Engine, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.OwnerID == uuid.Nil {
		return nil, errors.New("owner_id is required")
	}

	project := &Project{
		Name:          req.Name,
		Description:   req.Description,
		ProjectType:   req.ProjectType,
		Status:        StatusDraft,
		OwnerID:       req.OwnerID,
		Investment:    req.Investment,
		Beneficiaries: req.Beneficiaries,
		DurationYears: req.DurationYears,

		JobsCreated:             req.JobsCreated,
		FamiliesExitedSubsidy:   req.FamiliesExitedSubsidy,
		StudentsRetained:        req.StudentsRetained,
		YouthsServed:            req.YouthsServed,
		HospitalizationsAvoided: req.HospitalizationsAvoided,
		HectaresRestored:        req.HectaresRestored,
		Biome:                   req.Biome,
		RestorationMethod:       req.RestorationMethod,
		AreaType:                req.AreaType,
	}

	// Reject structurally invalid facts at registration, not at scoring time.
	facts := projectFacts(project)
	if err := facts.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.recordActivity(ctx, project.ID, req.OwnerID, "CREATED",
		fmt.Sprintf("Project %s registered", project.Name))

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("project_type", project.ProjectType))

	return project, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetProjectByID(ctx, id)
}

func (s *service) UpdateProject(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Investment != nil {
		project.Investment = *req.Investment
	}
	if req.Beneficiaries != nil {
		project.Beneficiaries = *req.Beneficiaries
	}
	if req.DurationYears != nil {
		project.DurationYears = *req.DurationYears
	}
	if req.JobsCreated != nil {
		project.JobsCreated = *req.JobsCreated
	}
	if req.FamiliesExitedSubsidy != nil {
		project.FamiliesExitedSubsidy = *req.FamiliesExitedSubsidy
	}
	if req.StudentsRetained != nil {
		project.StudentsRetained = *req.StudentsRetained
	}
	if req.YouthsServed != nil {
		project.YouthsServed = *req.YouthsServed
	}
	if req.HospitalizationsAvoided != nil {
		project.HospitalizationsAvoided = *req.HospitalizationsAvoided
	}
	if req.HectaresRestored != nil {
		project.HectaresRestored = *req.HectaresRestored
	}
	if req.Biome != nil {
		project.Biome = *req.Biome
	}
	if req.RestorationMethod != nil {
		project.RestorationMethod = *req.RestorationMethod
	}
	if req.AreaType != nil {
		project.AreaType = *req.AreaType
	}

	facts := projectFacts(project)
	if err := facts.Validate(); err != nil {
		return nil, err
	}

	project.UpdatedAt = time.Now()
	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.recordActivity(ctx, project.ID, project.OwnerID, "UPDATED",
		fmt.Sprintf("Project %s updated", project.Name))

	return project, nil
}

func (s *service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.recordActivity(ctx, id, project.OwnerID, "DELETED",
		fmt.Sprintf("Project %s deleted", project.Name))

	return nil
}

func (s *service) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	return s.repo.ListProjects(ctx, filter)
}

// ScoreProject runs the scoring pipeline over a stored project and persists
// the result as a new assessment. Repeated calls append assessments; the
// newest one is the project's current score.
func (s *service) ScoreProject(ctx context.Context, id uuid.UUID) (*Assessment, *scoring.CompositeResult, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.engine.Score(projectFacts(project))
	if err != nil {
		return nil, nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode scoring result: %w", err)
	}

	assessment := &Assessment{
		ProjectID:          project.ID,
		ReferenceVersion:   result.ReferenceVersion,
		UISV:               result.UISV,
		Tier:               string(result.Tier),
		RecommendedCredits: result.RecommendedCredits,
		Result:             payload,
	}
	if err := s.repo.CreateAssessment(ctx, assessment); err != nil {
		return nil, nil, fmt.Errorf("failed to persist assessment: %w", err)
	}

	if CanTransition(project.Status, StatusAssessed) {
		project.Status = StatusAssessed
		if err := s.repo.UpdateProject(ctx, project); err != nil {
			return nil, nil, fmt.Errorf("failed to update project status: %w", err)
		}
	}

	s.recordActivity(ctx, project.ID, project.OwnerID, "SCORED",
		fmt.Sprintf("UISV %.2f, tier %s, %d credits recommended", result.UISV, result.Tier, result.RecommendedCredits))

	s.logger.Info("project scored",
		zap.String("project_id", project.ID.String()),
		zap.Float64("uisv", result.UISV),
		zap.String("tier", string(result.Tier)),
		zap.Int("recommended_credits", result.RecommendedCredits))

	return assessment, result, nil
}

// ScoreFacts scores an ad-hoc fact set without persisting anything.
func (s *service) ScoreFacts(ctx context.Context, facts scoring.ProjectFacts) (*scoring.CompositeResult, error) {
	return s.engine.Score(facts)
}

func (s *service) LatestAssessment(ctx context.Context, projectID uuid.UUID) (*Assessment, error) {
	return s.repo.LatestAssessment(ctx, projectID)
}

func (s *service) ListAssessments(ctx context.Context, projectID uuid.UUID) ([]Assessment, error) {
	return s.repo.ListAssessments(ctx, projectID)
}

func (s *service) ListActivities(ctx context.Context, projectID uuid.UUID) ([]ProjectActivity, error) {
	return s.repo.ListActivities(ctx, projectID)
}

// recordActivity is best effort; a failed audit write never fails the caller.
func (s *service) recordActivity(ctx context.Context, projectID, userID uuid.UUID, activityType, description string) {
	activity := &ProjectActivity{
		ProjectID:    projectID,
		ActivityType: activityType,
		Description:  description,
		CreatedAt:    time.Now(),
		UserID:       userID,
	}
	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		s.logger.Warn("failed to record project activity",
			zap.String("project_id", projectID.String()),
			zap.String("activity_type", activityType),
			zap.Error(err))
	}
}

func projectFacts(p *Project) scoring.ProjectFacts {
	return scoring.ProjectFacts{
		Name:                    p.Name,
		Investment:              p.Investment,
		ProjectType:             p.ProjectType,
		Beneficiaries:           p.Beneficiaries,
		DurationYears:           p.DurationYears,
		JobsCreated:             p.JobsCreated,
		FamiliesExitedSubsidy:   p.FamiliesExitedSubsidy,
		StudentsRetained:        p.StudentsRetained,
		YouthsServed:            p.YouthsServed,
		HospitalizationsAvoided: p.HospitalizationsAvoided,
		HectaresRestored:        p.HectaresRestored,
		Biome:                   p.Biome,
		RestorationMethod:       p.RestorationMethod,
		AreaType:                p.AreaType,
	}
}
