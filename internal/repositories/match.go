package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nextstep/scholarship-matcher/internal/models"
)

// MatchRepository persists qualifying match results. Both batch directions use
// the same replace policy: delete the prior rows for the batch subject, then
// insert the freshly computed set, inside one transaction. Repeated batch runs
// therefore never accumulate duplicate (candidate, scholarship) rows.
type MatchRepository interface {
	ReplaceForCandidate(candidateID uuid.UUID, matches []models.ScholarshipMatch) error
	ReplaceForScholarship(scholarshipID uuid.UUID, matches []models.ScholarshipMatch) error
	FindByCandidate(candidateID uuid.UUID) ([]models.ScholarshipMatch, error)
	DeleteByCandidate(candidateID uuid.UUID) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// ReplaceForCandidate implements MatchRepository.
func (m *matchRepository) ReplaceForCandidate(candidateID uuid.UUID, matches []models.ScholarshipMatch) error {
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidate_id = ?", candidateID).Delete(&models.ScholarshipMatch{}).Error; err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		return tx.Create(&matches).Error
	})

	if err != nil {
		return fmt.Errorf("failed to replace matches for candidate %s: %w", candidateID, err)
	}

	return nil
}

// ReplaceForScholarship implements MatchRepository.
func (m *matchRepository) ReplaceForScholarship(scholarshipID uuid.UUID, matches []models.ScholarshipMatch) error {
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scholarship_id = ?", scholarshipID).Delete(&models.ScholarshipMatch{}).Error; err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		return tx.Create(&matches).Error
	})

	if err != nil {
		return fmt.Errorf("failed to replace matches for scholarship %s: %w", scholarshipID, err)
	}

	return nil
}

// FindByCandidate implements MatchRepository. Results come back best first.
func (m *matchRepository) FindByCandidate(candidateID uuid.UUID) ([]models.ScholarshipMatch, error) {
	var matches []models.ScholarshipMatch
	err := m.db.
		Preload("Scholarship").
		Where("candidate_id = ?", candidateID).
		Order("score DESC").
		Find(&matches).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find matches: %w", err)
	}

	return matches, nil
}

// DeleteByCandidate implements MatchRepository.
func (m *matchRepository) DeleteByCandidate(candidateID uuid.UUID) error {
	if err := m.db.Where("candidate_id = ?", candidateID).Delete(&models.ScholarshipMatch{}).Error; err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}

	return nil
}
