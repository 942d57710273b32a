package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"impact-ledger/impact-portal-backend/internal/projects"
	"impact-ledger/impact-portal-backend/internal/scoring"
)

// AssessmentSource is the slice of the project repository the report layer
// reads from.
type AssessmentSource interface {
	GetProjectByID(ctx context.Context, id uuid.UUID) (*projects.Project, error)
	LatestAssessment(ctx context.Context, projectID uuid.UUID) (*projects.Assessment, error)
	ListAssessedProjects(ctx context.Context) ([]projects.Assessment, error)
}

// Service generates impact documents from persisted assessments.
type Service struct {
	source    AssessmentSource
	markdown  *MarkdownBuilder
	pdf       *PDFGenerator
	excel     *ExcelExporter
	outputDir string
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(source AssessmentSource, organization, outputDir string, logger *zap.Logger) *Service {
	pdfOptions := DefaultPDFOptions()
	pdfOptions.Organization = organization

	return &Service{
		source:    source,
		markdown:  NewMarkdownBuilder(organization),
		pdf:       NewPDFGenerator(pdfOptions),
		excel:     NewExcelExporter(DefaultExcelOptions()),
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// ExecutiveReport renders the full Markdown report for a project's latest
// assessment.
func (s *Service) ExecutiveReport(ctx context.Context, projectID uuid.UUID) (string, error) {
	result, err := s.latestResult(ctx, projectID)
	if err != nil {
		return "", err
	}
	return s.markdown.ExecutiveReport(result), nil
}

// SummaryReport renders the one-page Markdown summary.
func (s *Service) SummaryReport(ctx context.Context, projectID uuid.UUID) (string, error) {
	result, err := s.latestResult(ctx, projectID)
	if err != nil {
		return "", err
	}
	return s.markdown.SummaryReport(result), nil
}

// Certificate renders the impact certificate.
func (s *Service) Certificate(ctx context.Context, projectID uuid.UUID) (string, error) {
	result, err := s.latestResult(ctx, projectID)
	if err != nil {
		return "", err
	}
	return s.markdown.Certificate(result, ""), nil
}

// AssessmentPDF writes the assessment PDF to w.
func (s *Service) AssessmentPDF(ctx context.Context, projectID uuid.UUID, w io.Writer) error {
	result, err := s.latestResult(ctx, projectID)
	if err != nil {
		return err
	}
	return s.pdf.Render(result, w)
}

// PortfolioWorkbook writes the portfolio Excel workbook to w.
func (s *Service) PortfolioWorkbook(ctx context.Context, w io.Writer) error {
	entries, err := s.portfolioEntries(ctx)
	if err != nil {
		return err
	}
	return s.excel.Export(entries, w)
}

// ExportPortfolio writes the portfolio workbook into the configured output
// directory and returns the file path. The scheduler calls this periodically.
func (s *Service) ExportPortfolio(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, fmt.Sprintf("portfolio-%s.xlsx", s.now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := s.PortfolioWorkbook(ctx, f); err != nil {
		return "", err
	}

	s.logger.Info("portfolio exported", zap.String("path", path))
	return path, nil
}

func (s *Service) latestResult(ctx context.Context, projectID uuid.UUID) (*scoring.CompositeResult, error) {
	assessment, err := s.source.LatestAssessment(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return decodeResult(assessment)
}

func (s *Service) portfolioEntries(ctx context.Context) ([]PortfolioEntry, error) {
	assessments, err := s.source.ListAssessedProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	entries := make([]PortfolioEntry, 0, len(assessments))
	for _, assessment := range assessments {
		result, err := decodeResult(&assessment)
		if err != nil {
			s.logger.Warn("skipping undecodable assessment",
				zap.String("assessment_id", assessment.ID.String()),
				zap.Error(err))
			continue
		}

		project, err := s.source.GetProjectByID(ctx, assessment.ProjectID)
		if err != nil {
			s.logger.Warn("skipping assessment with missing project",
				zap.String("project_id", assessment.ProjectID.String()),
				zap.Error(err))
			continue
		}

		entries = append(entries, PortfolioEntry{
			ProjectName:   project.Name,
			ProjectType:   project.ProjectType,
			Investment:    result.TotalInvestment,
			Beneficiaries: result.DirectBeneficiaries,
			SROI:          result.Social.SROI,
			FiscalROI:     result.Fiscal.ReturnRatio,
			UISV:          result.UISV,
			Tier:          assessment.Tier,
			Credits:       assessment.RecommendedCredits,
			AssessedAt:    assessment.CreatedAt,
		})
	}
	return entries, nil
}

func decodeResult(assessment *projects.Assessment) (*scoring.CompositeResult, error) {
	var result scoring.CompositeResult
	if err := json.Unmarshal(assessment.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to decode assessment result: %w", err)
	}
	return &result, nil
}
