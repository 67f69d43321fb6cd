package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nextstep/scholarship-matcher/internal/models"
)

type ScholarshipRepository interface {
	Create(scholarship *models.Scholarship) error
	FindByID(id uuid.UUID) (*models.Scholarship, error)
	FindAll(limit, offset int) ([]models.Scholarship, error)
}

type scholarshipRepository struct {
	db *gorm.DB
}

func NewScholarshipRepository(db *gorm.DB) ScholarshipRepository {
	return &scholarshipRepository{db: db}
}

// Create implements ScholarshipRepository.
func (s *scholarshipRepository) Create(scholarship *models.Scholarship) error {
	if err := s.db.Create(scholarship).Error; err != nil {
		return fmt.Errorf("failed to create scholarship: %w", err)
	}

	return nil
}

// FindByID implements ScholarshipRepository.
func (s *scholarshipRepository) FindByID(id uuid.UUID) (*models.Scholarship, error) {
	var scholarship models.Scholarship
	if err := s.db.Where("id = ?", id).First(&scholarship).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("scholarship not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find scholarship: %w", err)
	}

	return &scholarship, nil
}

// FindAll implements ScholarshipRepository.
func (s *scholarshipRepository) FindAll(limit, offset int) ([]models.Scholarship, error) {
	query := s.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var scholarships []models.Scholarship
	if err := query.Find(&scholarships).Error; err != nil {
		return nil, fmt.Errorf("failed to find scholarships: %w", err)
	}

	return scholarships, nil
}
