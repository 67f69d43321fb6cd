package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"type:text;not null" json:"firstname"`
	LastName  string    `gorm:"type:text;not null" json:"lastname"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	CVRecord *CVRecord `gorm:"foreignKey:CandidateID" json:"cv,omitempty"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// CVRecord is the durable result of parsing one CV document. Every extracted
// field is independently optional; an empty string means the extractor found
// nothing. Skills are stored JSON-encoded in a text column. A candidate has at
// most one record, replaced wholesale on re-upload.
type CVRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID    uuid.UUID `gorm:"type:uuid;not null" json:"candidate_id"`
	Skills         string    `gorm:"type:text" json:"skills"`
	University     string    `gorm:"type:text" json:"university"`
	Degree         string    `gorm:"type:text" json:"degree"`
	Major          string    `gorm:"type:text" json:"major"`
	GraduationYear string    `gorm:"type:text" json:"graduation_year"`
	GPA            string    `gorm:"type:text" json:"gpa"`
	Nationality    string    `gorm:"type:text" json:"nationality"`
	Gender         string    `gorm:"type:text" json:"gender"`
	DateOfBirth    string    `gorm:"type:text" json:"date_of_birth"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CVRecord) TableName() string {
	return "cv_records"
}

// CVProfile is the in-memory shape of a candidate's structured profile, shared
// by extraction, rendering and scoring. Empty string / empty slice means the
// field is absent.
type CVProfile struct {
	Skills         []string `json:"skills"`
	University     string   `json:"university"`
	Degree         string   `json:"degree"`
	Major          string   `json:"major"`
	GraduationYear string   `json:"graduation_year"`
	GPA            string   `json:"gpa"`
	Nationality    string   `json:"nationality"`
	Gender         string   `json:"gender"`
	DateOfBirth    string   `json:"date_of_birth"`
}

// Profile decodes the stored record into a CVProfile. Fails only when the
// skills column holds malformed JSON.
func (r *CVRecord) Profile() (CVProfile, error) {
	profile := CVProfile{
		University:     r.University,
		Degree:         r.Degree,
		Major:          r.Major,
		GraduationYear: r.GraduationYear,
		GPA:            r.GPA,
		Nationality:    r.Nationality,
		Gender:         r.Gender,
		DateOfBirth:    r.DateOfBirth,
	}

	if r.Skills != "" {
		if err := json.Unmarshal([]byte(r.Skills), &profile.Skills); err != nil {
			return CVProfile{}, err
		}
	}

	return profile, nil
}

// Record encodes the profile into a CVRecord row for the given candidate.
func (p CVProfile) Record(candidateID uuid.UUID) (*CVRecord, error) {
	record := &CVRecord{
		ID:             uuid.New(),
		CandidateID:    candidateID,
		University:     p.University,
		Degree:         p.Degree,
		Major:          p.Major,
		GraduationYear: p.GraduationYear,
		GPA:            p.GPA,
		Nationality:    p.Nationality,
		Gender:         p.Gender,
		DateOfBirth:    p.DateOfBirth,
	}

	if len(p.Skills) > 0 {
		encoded, err := json.Marshal(p.Skills)
		if err != nil {
			return nil, err
		}
		record.Skills = string(encoded)
	}

	return record, nil
}
