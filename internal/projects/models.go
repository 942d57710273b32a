package projects

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectStatus is the lifecycle state of a registered project.
type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "DRAFT"
	StatusAssessed  ProjectStatus = "ASSESSED"
	StatusTokenized ProjectStatus = "TOKENIZED"
	StatusArchived  ProjectStatus = "ARCHIVED"
)

// Project represents a registered social-impact project
type Project struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	ProjectType string         `gorm:"not null" json:"project_type"`
	Status      ProjectStatus  `gorm:"not null;default:'DRAFT'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null" json:"owner_id"`

	Investment    float64 `gorm:"not null" json:"investment"`
	Beneficiaries int     `gorm:"not null" json:"beneficiaries"`
	DurationYears int     `gorm:"not null" json:"duration_years"`

	// Optional impact signals; zero means absent.
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

// Assessment is one persisted scoring run for a project. Result holds the
// full composite result document as JSON; the indexed columns duplicate the
// fields queries filter and sort on.
type Assessment struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	ReferenceVersion   string         `gorm:"not null" json:"reference_version"`
	UISV               float64        `gorm:"not null" json:"uisv"`
	Tier               string         `gorm:"not null" json:"tier"`
	RecommendedCredits int            `gorm:"not null" json:"recommended_credits"`
	Result             datatypes.JSON `json:"result"`
	CreatedAt          time.Time      `json:"created_at"`
	Project            Project        `gorm:"foreignKey:ProjectID" json:"-"`
}

// ProjectActivity logs lifecycle events on the project
type ProjectActivity struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	ActivityType string    `gorm:"not null" json:"activity_type"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       uuid.UUID `gorm:"type:uuid" json:"user_id"`
	Project      Project   `gorm:"foreignKey:ProjectID" json:"-"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Status      *ProjectStatus
	ProjectType *string
	Limit       int
	Offset      int
}
