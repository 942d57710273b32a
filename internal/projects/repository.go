package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a project or assessment does not exist.
var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateProject(ctx context.Context, project *Project) error
	GetProjectByID(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	CreateAssessment(ctx context.Context, assessment *Assessment) error
	LatestAssessment(ctx context.Context, projectID uuid.UUID) (*Assessment, error)
	ListAssessments(ctx context.Context, projectID uuid.UUID) ([]Assessment, error)
	ListAssessedProjects(ctx context.Context) ([]Assessment, error)

	CreateActivity(ctx context.Context, activity *ProjectActivity) error
	ListActivities(ctx context.Context, projectID uuid.UUID) ([]ProjectActivity, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateProject(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *gormRepository) GetProjectByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var project Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *gormRepository) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	query := r.db.WithContext(ctx).Model(&Project{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProjectType != nil {
		query = query.Where("project_type = ?", *filter.ProjectType)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var projects []Project
	err := query.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *gormRepository) UpdateProject(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *gormRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Project{}, "id = ?", id).Error
}

func (r *gormRepository) CreateAssessment(ctx context.Context, assessment *Assessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *gormRepository) LatestAssessment(ctx context.Context, projectID uuid.UUID) (*Assessment, error) {
	var assessment Assessment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *gormRepository) ListAssessments(ctx context.Context, projectID uuid.UUID) ([]Assessment, error) {
	var assessments []Assessment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&assessments).Error
	return assessments, err
}

// ListAssessedProjects returns the newest assessment per project, for the
// portfolio export job.
func (r *gormRepository) ListAssessedProjects(ctx context.Context) ([]Assessment, error) {
	var assessments []Assessment
	err := r.db.WithContext(ctx).
		Where(`id IN (
			SELECT DISTINCT ON (project_id) id
			FROM assessments
			ORDER BY project_id, created_at DESC
		)`).
		Order("uisv DESC").
		Find(&assessments).Error
	return assessments, err
}

func (r *gormRepository) CreateActivity(ctx context.Context, activity *ProjectActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *gormRepository) ListActivities(ctx context.Context, projectID uuid.UUID) ([]ProjectActivity, error) {
	var activities []ProjectActivity
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}
