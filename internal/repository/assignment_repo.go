package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/voicehire/interview-api/internal/models"
)

// AssignmentRepository defines data operations for test assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.TestAssignment) error
	GetByTestAndCandidate(ctx context.Context, testID, candidateID uint) (models.TestAssignment, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.TestAssignment, error)
	List(ctx context.Context) ([]models.TestAssignment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.TestAssignment{}).
		Preload("Test").
		Preload("Candidate")
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.TestAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) GetByTestAndCandidate(ctx context.Context, testID, candidateID uint) (models.TestAssignment, error) {
	var assignment models.TestAssignment
	err := r.baseQuery(ctx).
		Where("test_id = ?", testID).
		Where("candidate_id = ?", candidateID).
		First(&assignment).Error
	if err != nil {
		return models.TestAssignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) ListByCandidate(ctx context.Context, candidateID uint) ([]models.TestAssignment, error) {
	var assignments []models.TestAssignment
	err := r.baseQuery(ctx).
		Where("candidate_id = ?", candidateID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.TestAssignment, error) {
	var assignments []models.TestAssignment
	if err := r.baseQuery(ctx).Order("assigned_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.TestAssignment{}).
		Where("id = ?", id).
		Update("status", status).Error
}
