package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"impact-ledger/impact-portal-backend/internal/reference"
	"impact-ledger/impact-portal-backend/internal/scoring"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateProject(ctx context.Context, project *Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockRepository) GetProjectByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Project), args.Error(1)
}

func (m *MockRepository) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Project), args.Error(1)
}

func (m *MockRepository) UpdateProject(ctx context.Context, project *Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateAssessment(ctx context.Context, assessment *Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockRepository) LatestAssessment(ctx context.Context, projectID uuid.UUID) (*Assessment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Assessment), args.Error(1)
}

func (m *MockRepository) ListAssessments(ctx context.Context, projectID uuid.UUID) ([]Assessment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]Assessment), args.Error(1)
}

func (m *MockRepository) ListAssessedProjects(ctx context.Context) ([]Assessment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Assessment), args.Error(1)
}

func (m *MockRepository) CreateActivity(ctx context.Context, activity *ProjectActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockRepository) ListActivities(ctx context.Context, projectID uuid.UUID) ([]ProjectActivity, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]ProjectActivity), args.Error(1)
}

func newTestService(repo Repository) Service {
	engine := scoring.NewEngine(reference.Default(), scoring.DefaultWeights())
	return NewService(repo, engine, zap.NewNop())
}

func TestCreateProject(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	req := CreateProjectRequest{
		Name:          "Youth Futures",
		ProjectType:   "education",
		OwnerID:       uuid.New(),
		Investment:    250000,
		Beneficiaries: 120,
		DurationYears: 2,
		JobsCreated:   10,
	}

	mockRepo.On("CreateProject", ctx, mock.AnythingOfType("*projects.Project")).Return(nil)
	mockRepo.On("CreateActivity", ctx, mock.AnythingOfType("*projects.ProjectActivity")).Return(nil)

	project, err := service.CreateProject(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, req.Name, project.Name)
	assert.Equal(t, StatusDraft, project.Status)
	assert.Equal(t, req.Investment, project.Investment)

	mockRepo.AssertExpectations(t)
}

func TestCreateProjectRequiresName(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.CreateProject(context.Background(), CreateProjectRequest{
		OwnerID:       uuid.New(),
		Investment:    1000,
		Beneficiaries: 10,
		DurationYears: 1,
	})

	assert.EqualError(t, err, "name is required")
	mockRepo.AssertNotCalled(t, "CreateProject")
}

func TestCreateProjectRejectsInvalidFacts(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.CreateProject(context.Background(), CreateProjectRequest{
		Name:          "Broken",
		OwnerID:       uuid.New(),
		Investment:    -5,
		Beneficiaries: 10,
		DurationYears: 1,
	})

	var verr *scoring.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "investment", verr.Field)
	mockRepo.AssertNotCalled(t, "CreateProject")
}

func TestScoreProjectPersistsAssessment(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	projectID := uuid.New()
	project := &Project{
		ID:            projectID,
		Name:          "Youth Futures",
		ProjectType:   "education",
		Status:        StatusDraft,
		OwnerID:       uuid.New(),
		Investment:    500000,
		Beneficiaries: 200,
		DurationYears: 2,
		JobsCreated:   30,
	}

	mockRepo.On("GetProjectByID", ctx, projectID).Return(project, nil)
	mockRepo.On("CreateAssessment", ctx, mock.AnythingOfType("*projects.Assessment")).Return(nil)
	mockRepo.On("UpdateProject", ctx, project).Return(nil)
	mockRepo.On("CreateActivity", ctx, mock.AnythingOfType("*projects.ProjectActivity")).Return(nil)

	assessment, result, err := service.ScoreProject(ctx, projectID)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, projectID, assessment.ProjectID)
	assert.Equal(t, result.UISV, assessment.UISV)
	assert.Equal(t, string(result.Tier), assessment.Tier)
	assert.Equal(t, result.RecommendedCredits, assessment.RecommendedCredits)
	assert.NotEmpty(t, assessment.Result)
	assert.Equal(t, StatusAssessed, project.Status)

	mockRepo.AssertExpectations(t)
}

func TestScoreProjectKeepsAssessedStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	projectID := uuid.New()
	project := &Project{
		ID:            projectID,
		Name:          "Already Scored",
		ProjectType:   "education",
		Status:        StatusAssessed,
		OwnerID:       uuid.New(),
		Investment:    100000,
		Beneficiaries: 50,
		DurationYears: 1,
	}

	mockRepo.On("GetProjectByID", ctx, projectID).Return(project, nil)
	mockRepo.On("CreateAssessment", ctx, mock.AnythingOfType("*projects.Assessment")).Return(nil)
	mockRepo.On("CreateActivity", ctx, mock.AnythingOfType("*projects.ProjectActivity")).Return(nil)

	_, _, err := service.ScoreProject(ctx, projectID)

	require.NoError(t, err)
	// Rescoring an assessed project must not rewrite its status.
	mockRepo.AssertNotCalled(t, "UpdateProject")
}

func TestScoreProjectNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	projectID := uuid.New()
	mockRepo.On("GetProjectByID", ctx, projectID).Return(nil, ErrNotFound)

	_, _, err := service.ScoreProject(ctx, projectID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProjectAppliesPartialChanges(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	projectID := uuid.New()
	project := &Project{
		ID:            projectID,
		Name:          "Original",
		ProjectType:   "education",
		Status:        StatusDraft,
		OwnerID:       uuid.New(),
		Investment:    100000,
		Beneficiaries: 50,
		DurationYears: 1,
	}

	mockRepo.On("GetProjectByID", ctx, projectID).Return(project, nil)
	mockRepo.On("UpdateProject", ctx, project).Return(nil)
	mockRepo.On("CreateActivity", ctx, mock.AnythingOfType("*projects.ProjectActivity")).Return(nil)

	newName := "Renamed"
	newJobs := 12
	updated, err := service.UpdateProject(ctx, projectID, UpdateProjectRequest{
		Name:        &newName,
		JobsCreated: &newJobs,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 12, updated.JobsCreated)
	assert.Equal(t, 100000.0, updated.Investment)

	mockRepo.AssertExpectations(t)
}

func TestScoreFactsDoesNotPersist(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	result, err := service.ScoreFacts(context.Background(), scoring.ProjectFacts{
		Name:          "Ad Hoc Simulation",
		Investment:    200000,
		ProjectType:   "preventive_health",
		Beneficiaries: 80,
		DurationYears: 2,
	})

	require.NoError(t, err)
	assert.NotZero(t, result.UISV)
	mockRepo.AssertNotCalled(t, "CreateAssessment")
}
