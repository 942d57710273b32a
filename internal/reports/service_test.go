package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"impact-ledger/impact-portal-backend/internal/projects"
	"impact-ledger/impact-portal-backend/internal/reference"
	"impact-ledger/impact-portal-backend/internal/scoring"
)

// MockSource is a mock implementation of the AssessmentSource interface
type MockSource struct {
	mock.Mock
}

func (m *MockSource) GetProjectByID(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects.Project), args.Error(1)
}

func (m *MockSource) LatestAssessment(ctx context.Context, projectID uuid.UUID) (*projects.Assessment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects.Assessment), args.Error(1)
}

func (m *MockSource) ListAssessedProjects(ctx context.Context) ([]projects.Assessment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]projects.Assessment), args.Error(1)
}

func scoredResult(t *testing.T) *scoring.CompositeResult {
	t.Helper()
	engine := scoring.NewEngine(reference.Default(), scoring.DefaultWeights())
	result, err := engine.Score(scoring.ProjectFacts{
		Name:             "Youth Education Program",
		Investment:       500000,
		ProjectType:      "education",
		Beneficiaries:    200,
		DurationYears:    2,
		JobsCreated:      30,
		StudentsRetained: 50,
	})
	require.NoError(t, err)
	return result
}

func assessmentFor(t *testing.T, projectID uuid.UUID, result *scoring.CompositeResult) *projects.Assessment {
	t.Helper()
	payload, err := json.Marshal(result)
	require.NoError(t, err)
	return &projects.Assessment{
		ID:                 uuid.New(),
		ProjectID:          projectID,
		ReferenceVersion:   result.ReferenceVersion,
		UISV:               result.UISV,
		Tier:               string(result.Tier),
		RecommendedCredits: result.RecommendedCredits,
		Result:             payload,
		CreatedAt:          time.Now(),
	}
}

func TestExecutiveReport(t *testing.T) {
	source := new(MockSource)
	service := NewService(source, "Impact Ledger", t.TempDir(), zap.NewNop())
	ctx := context.Background()

	projectID := uuid.New()
	result := scoredResult(t)
	source.On("LatestAssessment", ctx, projectID).Return(assessmentFor(t, projectID, result), nil)

	report, err := service.ExecutiveReport(ctx, projectID)

	require.NoError(t, err)
	assert.Contains(t, report, "# SOCIAL IMPACT EXECUTIVE REPORT")
	assert.Contains(t, report, "Youth Education Program")
	assert.Contains(t, report, "| **UISV** | 57.48 |")
	assert.Contains(t, report, "| **Classification** | A |")
	assert.Contains(t, report, "| **Recommended Credits** | 862 |")
	assert.Contains(t, report, "R$ 500,000.00")
	assert.Contains(t, report, "## RECOMMENDATIONS")
	assert.Contains(t, report, "## FINAL CONSIDERATIONS")
	// No crime or environmental dimension in this scenario.
	assert.NotContains(t, report, "Public Security Impact")
	assert.NotContains(t, report, "Environmental Impact")
}

func TestExecutiveReportIncludesOptionalSections(t *testing.T) {
	engine := scoring.NewEngine(reference.Default(), scoring.DefaultWeights())
	result, err := engine.Score(scoring.ProjectFacts{
		Name:             "Integrated Program",
		Investment:       1500000,
		ProjectType:      "environment",
		Beneficiaries:    500,
		DurationYears:    3,
		JobsCreated:      50,
		YouthsServed:     200,
		HectaresRestored: 100,
		Biome:            "atlantic_forest",
		AreaType:         "urban",
	})
	require.NoError(t, err)

	source := new(MockSource)
	service := NewService(source, "Impact Ledger", t.TempDir(), zap.NewNop())
	ctx := context.Background()

	projectID := uuid.New()
	source.On("LatestAssessment", ctx, projectID).Return(assessmentFor(t, projectID, result), nil)

	report, err := service.ExecutiveReport(ctx, projectID)

	require.NoError(t, err)
	assert.Contains(t, report, "Public Security Impact")
	assert.Contains(t, report, "Environmental Impact")
	assert.Contains(t, report, "Atlantic Forest")
}

func TestCertificate(t *testing.T) {
	source := new(MockSource)
	service := NewService(source, "Impact Ledger", t.TempDir(), zap.NewNop())
	ctx := context.Background()

	projectID := uuid.New()
	source.On("LatestAssessment", ctx, projectID).Return(assessmentFor(t, projectID, scoredResult(t)), nil)

	certificate, err := service.Certificate(ctx, projectID)

	require.NoError(t, err)
	assert.Contains(t, certificate, "# CERTIFICATE OF SOCIAL IMPACT")
	assert.Contains(t, certificate, "**Certificate No.:** UISV-")
	assert.Contains(t, certificate, "**Validity:** 12 months")
}

func TestSummaryReport(t *testing.T) {
	source := new(MockSource)
	service := NewService(source, "Impact Ledger", t.TempDir(), zap.NewNop())
	ctx := context.Background()

	projectID := uuid.New()
	source.On("LatestAssessment", ctx, projectID).Return(assessmentFor(t, projectID, scoredResult(t)), nil)

	summary, err := service.SummaryReport(ctx, projectID)

	require.NoError(t, err)
	assert.Contains(t, summary, "# SOCIAL IMPACT SUMMARY - Youth Education Program")
	assert.Contains(t, summary, "| UISV | 57.48 (A) |")
}

func TestReportForUnassessedProject(t *testing.T) {
	source := new(MockSource)
	service := NewService(source, "Impact Ledger", t.TempDir(), zap.NewNop())
	ctx := context.Background()

	projectID := uuid.New()
	source.On("LatestAssessment", ctx, projectID).Return(nil, projects.ErrNotFound)

	_, err := service.ExecutiveReport(ctx, projectID)
	assert.ErrorIs(t, err, projects.ErrNotFound)
}

func TestAssessmentPDF(t *testing.T) {
	source := new(MockSource)
	service := NewService(source, "Impact Ledger", t.TempDir(), zap.NewNop())
	ctx := context.Background()

	projectID := uuid.New()
	source.On("LatestAssessment", ctx, projectID).Return(assessmentFor(t, projectID, scoredResult(t)), nil)

	var buf bytes.Buffer
	err := service.AssessmentPDF(ctx, projectID, &buf)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestPortfolioWorkbook(t *testing.T) {
	source := new(MockSource)
	service := NewService(source, "Impact Ledger", t.TempDir(), zap.NewNop())
	ctx := context.Background()

	projectID := uuid.New()
	result := scoredResult(t)
	assessment := assessmentFor(t, projectID, result)
	project := &projects.Project{
		ID:          projectID,
		Name:        "Youth Education Program",
		ProjectType: "education",
	}

	source.On("ListAssessedProjects", ctx).Return([]projects.Assessment{*assessment}, nil)
	source.On("GetProjectByID", ctx, projectID).Return(project, nil)

	var buf bytes.Buffer
	err := service.PortfolioWorkbook(ctx, &buf)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer workbook.Close()

	name, err := workbook.GetCellValue("Portfolio", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Youth Education Program", name)

	tier, err := workbook.GetCellValue("Portfolio", "H2")
	require.NoError(t, err)
	assert.Equal(t, "A", tier)

	summaryTier, err := workbook.GetCellValue("Tier Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "A", summaryTier)
}

func TestSROIQualificationBands(t *testing.T) {
	builder := NewMarkdownBuilder("Impact Ledger")

	cases := []struct {
		name     string
		sroi     float64
		expected string
	}{
		{"exceptional", 3.6, "exceptional"},
		{"very good", 2.6, "very good"},
		{"adequate", 1.6, "adequate"},
		{"below expectations", 1.0, "below expectations"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := &scoring.CompositeResult{
				ProjectName: "Band Check",
				Social: scoring.SocialReturnResult{
					SROI:           tc.sroi,
					ReferenceRange: reference.SROIRange{Min: 1.5, Max: 3.5, Mid: 2.5},
				},
				Tier: scoring.TierB,
			}
			report := builder.ExecutiveReport(result)
			assert.Contains(t, report, "**"+tc.expected+"**")
		})
	}
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "R$ 0.00", money(0))
	assert.Equal(t, "R$ 1,045,000.00", money(1045000))
	assert.Equal(t, "R$ 1,234.56", money(1234.56))
	assert.Equal(t, "-R$ 356,250.00", money(-356250))
	assert.Equal(t, "R$ 2.00", money(1.999))
}
