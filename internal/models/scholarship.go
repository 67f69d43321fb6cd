package models

import (
	"time"

	"github.com/google/uuid"
)

type Scholarship struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name                  string    `gorm:"type:text;unique;not null" json:"name"`
	Description           string    `gorm:"type:text;not null" json:"description"`
	Requirements          string    `gorm:"type:text" json:"requirements"`
	FieldOfStudy          string    `gorm:"type:text" json:"field_of_study"`
	StudyLevel            string    `gorm:"type:text" json:"study_level"`
	EligibleNationalities string    `gorm:"type:text" json:"eligible_nationalities"`
	Country               string    `gorm:"type:text" json:"country"`
	IsFullyFunded         bool      `gorm:"default:false" json:"is_fully_funded"`
	CreatedAt             time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Scholarship) TableName() string {
	return "scholarships"
}

// ScholarshipMatch is a persisted qualifying match. Rows are only created for
// scores strictly above the persistence threshold, and there is at most one
// row per (candidate, scholarship) pair. IDs and timestamps are assigned in
// code so batch inserts need no database round trip for defaults.
type ScholarshipMatch struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CandidateID   uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	ScholarshipID uuid.UUID `gorm:"type:uuid;not null;index" json:"scholarship_id"`
	Score         float64   `gorm:"not null" json:"score"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	Candidate   *Candidate   `gorm:"foreignKey:CandidateID" json:"-"`
	Scholarship *Scholarship `gorm:"foreignKey:ScholarshipID" json:"scholarship,omitempty"`
}

func (ScholarshipMatch) TableName() string {
	return "scholarship_matches"
}
