package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nextstep/scholarship-matcher/internal/models"
)

type CandidateRepository interface {
	FindByID(id uuid.UUID) (*models.Candidate, error)
	FindAllWithCV() ([]models.Candidate, error)
	ReplaceCVRecord(record *models.CVRecord) error
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// FindByID implements CandidateRepository.
func (c *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.db.Preload("CVRecord").Where("id = ?", id).First(&candidate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}

	return &candidate, nil
}

// FindAllWithCV implements CandidateRepository. Every candidate is returned;
// CVRecord is nil for candidates without one.
func (c *candidateRepository) FindAllWithCV() ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := c.db.Preload("CVRecord").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	return candidates, nil
}

// ReplaceCVRecord implements CandidateRepository. A re-upload discards the old
// record entirely rather than merging into it.
func (c *candidateRepository) ReplaceCVRecord(record *models.CVRecord) error {
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidate_id = ?", record.CandidateID).Delete(&models.CVRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})

	if err != nil {
		return fmt.Errorf("failed to replace cv record: %w", err)
	}

	return nil
}
