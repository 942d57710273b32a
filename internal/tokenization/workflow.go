package tokenization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"impact-ledger/impact-portal-backend/internal/projects"
	"impact-ledger/impact-portal-backend/internal/reference"
)

// IssuanceStatus is the lifecycle state of one token issuance.
type IssuanceStatus string

const (
	IssuancePending   IssuanceStatus = "PENDING"
	IssuanceCompleted IssuanceStatus = "COMPLETED"
	IssuanceFailed    IssuanceStatus = "FAILED"
)

// ErrNotEligible is returned when a project's recommended credits are at or
// below the tokenization threshold.
var ErrNotEligible = errors.New("project is not eligible for tokenization")

// Issuance records one on-ledger credit issuance for a project assessment.
type Issuance struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	AssessmentID    uuid.UUID      `gorm:"type:uuid;not null" json:"assessment_id"`
	AssetCode       string         `gorm:"not null" json:"asset_code"`
	Credits         int            `gorm:"not null" json:"credits"`
	Status          IssuanceStatus `gorm:"not null;default:'PENDING'" json:"status"`
	TransactionHash string         `json:"transaction_hash"`
	ErrorMessage    string         `json:"error_message,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	ConfirmedAt     *time.Time     `json:"confirmed_at,omitempty"`
}

// Minter issues credits on the ledger.
type Minter interface {
	MintCredits(ctx context.Context, req *MintRequest) (*MintResponse, error)
	AssetCode() string
}

// ProjectSource is the slice of the project repository the workflow uses.
type ProjectSource interface {
	GetProjectByID(ctx context.Context, id uuid.UUID) (*projects.Project, error)
	LatestAssessment(ctx context.Context, projectID uuid.UUID) (*projects.Assessment, error)
	UpdateProject(ctx context.Context, project *projects.Project) error
}

// Repository persists issuance records.
type Repository interface {
	CreateIssuance(ctx context.Context, issuance *Issuance) error
	UpdateIssuance(ctx context.Context, issuance *Issuance) error
	ListIssuances(ctx context.Context, projectID uuid.UUID) ([]Issuance, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateIssuance(ctx context.Context, issuance *Issuance) error {
	return r.db.WithContext(ctx).Create(issuance).Error
}

func (r *gormRepository) UpdateIssuance(ctx context.Context, issuance *Issuance) error {
	return r.db.WithContext(ctx).Save(issuance).Error
}

func (r *gormRepository) ListIssuances(ctx context.Context, projectID uuid.UUID) ([]Issuance, error) {
	var issuances []Issuance
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&issuances).Error
	return issuances, err
}

// Service runs the tokenization workflow: eligibility check, on-ledger mint
// and issuance bookkeeping.
type Service struct {
	repo        Repository
	projectRepo ProjectSource
	minter      Minter
	threshold   int
	logger      *zap.Logger
}

func NewService(repo Repository, projectRepo ProjectSource, minter Minter, ref *reference.Table, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		projectRepo: projectRepo,
		minter:      minter,
		threshold:   int(ref.Lookup(reference.CategoryScoring, "tokenization_threshold")),
		logger:      logger,
	}
}

// TokenizeProject issues the recommended credits of the project's latest
// assessment. Only projects strictly above the credit threshold are eligible.
func (s *Service) TokenizeProject(ctx context.Context, projectID uuid.UUID) (*Issuance, error) {
	project, err := s.projectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.projectRepo.LatestAssessment(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if assessment.RecommendedCredits <= s.threshold {
		return nil, fmt.Errorf("%w: %d credits recommended, threshold is %d",
			ErrNotEligible, assessment.RecommendedCredits, s.threshold)
	}
	if !projects.CanTransition(project.Status, projects.StatusTokenized) {
		return nil, fmt.Errorf("%w: project status is %s", ErrNotEligible, project.Status)
	}

	issuance := &Issuance{
		ProjectID:    project.ID,
		AssessmentID: assessment.ID,
		AssetCode:    s.minter.AssetCode(),
		Credits:      assessment.RecommendedCredits,
		Status:       IssuancePending,
	}
	if err := s.repo.CreateIssuance(ctx, issuance); err != nil {
		return nil, fmt.Errorf("failed to create issuance record: %w", err)
	}

	response, err := s.minter.MintCredits(ctx, &MintRequest{
		ProjectID: project.ID.String(),
		Credits:   assessment.RecommendedCredits,
		Memo:      shortMemo(project.ID),
	})
	if err != nil {
		issuance.Status = IssuanceFailed
		if response != nil {
			issuance.TransactionHash = response.TransactionHash
			issuance.ErrorMessage = response.ErrorMessage
		} else {
			issuance.ErrorMessage = err.Error()
		}
		if updateErr := s.repo.UpdateIssuance(ctx, issuance); updateErr != nil {
			s.logger.Error("failed to record issuance failure",
				zap.String("issuance_id", issuance.ID.String()),
				zap.Error(updateErr))
		}
		return issuance, fmt.Errorf("mint failed: %w", err)
	}

	issuance.Status = IssuanceCompleted
	issuance.TransactionHash = response.TransactionHash
	issuance.ConfirmedAt = response.ConfirmedAt
	if err := s.repo.UpdateIssuance(ctx, issuance); err != nil {
		return nil, fmt.Errorf("failed to update issuance record: %w", err)
	}

	if err := projects.Transition(project, projects.StatusTokenized); err != nil {
		return nil, err
	}
	if err := s.projectRepo.UpdateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}

	s.logger.Info("project tokenized",
		zap.String("project_id", project.ID.String()),
		zap.Int("credits", issuance.Credits),
		zap.String("tx_hash", issuance.TransactionHash))

	return issuance, nil
}

// ListIssuances returns the issuance history of a project.
func (s *Service) ListIssuances(ctx context.Context, projectID uuid.UUID) ([]Issuance, error) {
	return s.repo.ListIssuances(ctx, projectID)
}

// shortMemo fits the project reference into Stellar's 28-byte text memo.
func shortMemo(projectID uuid.UUID) string {
	return "uisv:" + projectID.String()[:8]
}
