package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/voicehire/interview-api/internal/models"
)

// ResultRepository defines data operations for completed interview results.
type ResultRepository interface {
	Create(ctx context.Context, result *models.TestResult) error
	GetByTestAndCandidate(ctx context.Context, testID, candidateID uint) (models.TestResult, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.TestResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository instantiates the repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, result *models.TestResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepository) GetByTestAndCandidate(ctx context.Context, testID, candidateID uint) (models.TestResult, error) {
	var result models.TestResult
	err := r.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Where("candidate_id = ?", candidateID).
		Order("completed_at DESC").
		First(&result).Error
	if err != nil {
		return models.TestResult{}, err
	}
	return result, nil
}

func (r *resultRepository) ListByCandidate(ctx context.Context, candidateID uint) ([]models.TestResult, error) {
	var results []models.TestResult
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("completed_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
