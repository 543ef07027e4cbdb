package dto

import (
	"time"

	"github.com/voicehire/interview-api/internal/models"
)

// TestCreateRequest is the payload for defining a new interview test.
type TestCreateRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description"`
	Prompt         string `json:"prompt" validate:"required"`
	TotalQuestions int    `json:"total_questions" validate:"omitempty,min=1,max=50"`
}

// TestResponse is the public representation of a test definition.
type TestResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Prompt         string    `json:"prompt"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// AssignRequest links a test to a candidate.
type AssignRequest struct {
	TestID      uint `json:"test_id" validate:"required"`
	CandidateID uint `json:"candidate_id" validate:"required"`
}

// ResultSummary is the scored outcome attached to a completed assignment.
type ResultSummary struct {
	TotalScore     int       `json:"total_score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

// AssignmentResponse is one assignment joined with its test, candidate, and
// result when available.
type AssignmentResponse struct {
	ID         uint           `json:"id"`
	Test       TestResponse   `json:"test"`
	Candidate  UserResponse   `json:"candidate"`
	Status     string         `json:"status"`
	AssignedAt time.Time      `json:"assigned_at"`
	Result     *ResultSummary `json:"result,omitempty"`
}

// NewTestResponse maps a test model onto its public representation.
func NewTestResponse(test models.Test) TestResponse {
	return TestResponse{
		ID:             test.ID,
		Title:          test.Title,
		Description:    test.Description,
		Prompt:         test.Prompt,
		TotalQuestions: test.TotalQuestions,
		CreatedAt:      test.CreatedAt,
	}
}

// NewResultSummary maps a stored result onto its summary form.
func NewResultSummary(result models.TestResult) *ResultSummary {
	return &ResultSummary{
		TotalScore:     result.TotalScore,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		CompletedAt:    result.CompletedAt,
	}
}
