package tokenization

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"impact-ledger/impact-portal-backend/internal/projects"
	"impact-ledger/impact-portal-backend/internal/reference"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateIssuance(ctx context.Context, issuance *Issuance) error {
	args := m.Called(ctx, issuance)
	return args.Error(0)
}

func (m *MockRepository) UpdateIssuance(ctx context.Context, issuance *Issuance) error {
	args := m.Called(ctx, issuance)
	return args.Error(0)
}

func (m *MockRepository) ListIssuances(ctx context.Context, projectID uuid.UUID) ([]Issuance, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]Issuance), args.Error(1)
}

// MockProjectSource is a mock implementation of the ProjectSource interface
type MockProjectSource struct {
	mock.Mock
}

func (m *MockProjectSource) GetProjectByID(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects.Project), args.Error(1)
}

func (m *MockProjectSource) LatestAssessment(ctx context.Context, projectID uuid.UUID) (*projects.Assessment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects.Assessment), args.Error(1)
}

func (m *MockProjectSource) UpdateProject(ctx context.Context, project *projects.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// MockMinter is a mock implementation of the Minter interface
type MockMinter struct {
	mock.Mock
}

func (m *MockMinter) MintCredits(ctx context.Context, req *MintRequest) (*MintResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MintResponse), args.Error(1)
}

func (m *MockMinter) AssetCode() string {
	return "UISV"
}

func newTestWorkflow(repo Repository, source ProjectSource, minter Minter) *Service {
	return NewService(repo, source, minter, reference.Default(), zap.NewNop())
}

func TestTokenizeProject(t *testing.T) {
	mockRepo := new(MockRepository)
	mockSource := new(MockProjectSource)
	mockMinter := new(MockMinter)
	service := newTestWorkflow(mockRepo, mockSource, mockMinter)
	ctx := context.Background()

	projectID := uuid.New()
	project := &projects.Project{
		ID:     projectID,
		Name:   "Large Scale Program",
		Status: projects.StatusAssessed,
	}
	assessment := &projects.Assessment{
		ID:                 uuid.New(),
		ProjectID:          projectID,
		RecommendedCredits: 7500,
	}
	confirmed := time.Now()
	response := &MintResponse{
		TransactionHash: "abc123",
		Successful:      true,
		ConfirmedAt:     &confirmed,
	}

	mockSource.On("GetProjectByID", ctx, projectID).Return(project, nil)
	mockSource.On("LatestAssessment", ctx, projectID).Return(assessment, nil)
	mockSource.On("UpdateProject", ctx, project).Return(nil)
	mockRepo.On("CreateIssuance", ctx, mock.AnythingOfType("*tokenization.Issuance")).Return(nil)
	mockRepo.On("UpdateIssuance", ctx, mock.AnythingOfType("*tokenization.Issuance")).Return(nil)
	mockMinter.On("MintCredits", ctx, mock.AnythingOfType("*tokenization.MintRequest")).Return(response, nil)

	issuance, err := service.TokenizeProject(ctx, projectID)

	require.NoError(t, err)
	assert.Equal(t, IssuanceCompleted, issuance.Status)
	assert.Equal(t, 7500, issuance.Credits)
	assert.Equal(t, "UISV", issuance.AssetCode)
	assert.Equal(t, "abc123", issuance.TransactionHash)
	assert.Equal(t, projects.StatusTokenized, project.Status)

	mockRepo.AssertExpectations(t)
	mockMinter.AssertExpectations(t)
}

func TestTokenizeProjectBelowThreshold(t *testing.T) {
	mockRepo := new(MockRepository)
	mockSource := new(MockProjectSource)
	mockMinter := new(MockMinter)
	service := newTestWorkflow(mockRepo, mockSource, mockMinter)
	ctx := context.Background()

	projectID := uuid.New()
	mockSource.On("GetProjectByID", ctx, projectID).Return(&projects.Project{ID: projectID}, nil)
	mockSource.On("LatestAssessment", ctx, projectID).Return(&projects.Assessment{
		ProjectID:          projectID,
		RecommendedCredits: 862,
	}, nil)

	_, err := service.TokenizeProject(ctx, projectID)

	assert.ErrorIs(t, err, ErrNotEligible)
	mockMinter.AssertNotCalled(t, "MintCredits")
	mockRepo.AssertNotCalled(t, "CreateIssuance")
}

func TestTokenizeProjectThresholdIsExclusive(t *testing.T) {
	mockRepo := new(MockRepository)
	mockSource := new(MockProjectSource)
	mockMinter := new(MockMinter)
	service := newTestWorkflow(mockRepo, mockSource, mockMinter)
	ctx := context.Background()

	projectID := uuid.New()
	mockSource.On("GetProjectByID", ctx, projectID).Return(&projects.Project{ID: projectID}, nil)
	mockSource.On("LatestAssessment", ctx, projectID).Return(&projects.Assessment{
		ProjectID:          projectID,
		RecommendedCredits: 5000,
	}, nil)

	_, err := service.TokenizeProject(ctx, projectID)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestTokenizeProjectAlreadyTokenized(t *testing.T) {
	mockRepo := new(MockRepository)
	mockSource := new(MockProjectSource)
	mockMinter := new(MockMinter)
	service := newTestWorkflow(mockRepo, mockSource, mockMinter)
	ctx := context.Background()

	projectID := uuid.New()
	mockSource.On("GetProjectByID", ctx, projectID).Return(&projects.Project{
		ID:     projectID,
		Status: projects.StatusTokenized,
	}, nil)
	mockSource.On("LatestAssessment", ctx, projectID).Return(&projects.Assessment{
		ProjectID:          projectID,
		RecommendedCredits: 9000,
	}, nil)

	_, err := service.TokenizeProject(ctx, projectID)

	assert.ErrorIs(t, err, ErrNotEligible)
	mockMinter.AssertNotCalled(t, "MintCredits")
}

func TestTokenizeProjectMintFailure(t *testing.T) {
	mockRepo := new(MockRepository)
	mockSource := new(MockProjectSource)
	mockMinter := new(MockMinter)
	service := newTestWorkflow(mockRepo, mockSource, mockMinter)
	ctx := context.Background()

	projectID := uuid.New()
	project := &projects.Project{ID: projectID, Status: projects.StatusAssessed}
	assessment := &projects.Assessment{
		ID:                 uuid.New(),
		ProjectID:          projectID,
		RecommendedCredits: 9000,
	}

	mockSource.On("GetProjectByID", ctx, projectID).Return(project, nil)
	mockSource.On("LatestAssessment", ctx, projectID).Return(assessment, nil)
	mockRepo.On("CreateIssuance", ctx, mock.AnythingOfType("*tokenization.Issuance")).Return(nil)
	mockRepo.On("UpdateIssuance", ctx, mock.AnythingOfType("*tokenization.Issuance")).Return(nil)
	mockMinter.On("MintCredits", ctx, mock.AnythingOfType("*tokenization.MintRequest")).
		Return(&MintResponse{ErrorMessage: "tx_bad_seq"}, errors.New("failed to submit transaction"))

	issuance, err := service.TokenizeProject(ctx, projectID)

	require.Error(t, err)
	require.NotNil(t, issuance)
	assert.Equal(t, IssuanceFailed, issuance.Status)
	assert.Equal(t, "tx_bad_seq", issuance.ErrorMessage)
	// A failed mint leaves the project status untouched.
	assert.Equal(t, projects.StatusAssessed, project.Status)
	mockSource.AssertNotCalled(t, "UpdateProject")
}

func TestTokenizeProjectNoAssessment(t *testing.T) {
	mockRepo := new(MockRepository)
	mockSource := new(MockProjectSource)
	mockMinter := new(MockMinter)
	service := newTestWorkflow(mockRepo, mockSource, mockMinter)
	ctx := context.Background()

	projectID := uuid.New()
	mockSource.On("GetProjectByID", ctx, projectID).Return(&projects.Project{ID: projectID}, nil)
	mockSource.On("LatestAssessment", ctx, projectID).Return(nil, projects.ErrNotFound)

	_, err := service.TokenizeProject(ctx, projectID)
	assert.ErrorIs(t, err, projects.ErrNotFound)
}

func TestValidateAssetCode(t *testing.T) {
	assert.NoError(t, ValidateAssetCode("UISV"))
	assert.NoError(t, ValidateAssetCode("IMPACT2026"))
	assert.Error(t, ValidateAssetCode(""))
	assert.Error(t, ValidateAssetCode("THIRTEENCHARS"))
	assert.Error(t, ValidateAssetCode("UI-SV"))
}
