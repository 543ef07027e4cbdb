package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/voicehire/interview-api/internal/dto"
	"github.com/voicehire/interview-api/internal/models"
	"github.com/voicehire/interview-api/internal/repository"
)

// ErrTestNotFound indicates the referenced test does not exist.
var ErrTestNotFound = errors.New("test not found")

// ErrCandidateNotFound indicates the referenced account is not a candidate.
var ErrCandidateNotFound = errors.New("candidate not found")

// ErrAlreadyAssigned indicates the candidate already has this test.
var ErrAlreadyAssigned = errors.New("test already assigned to candidate")

const defaultQuestionCount = 5

// AdminService covers the test-author operations: defining tests, browsing
// candidates, and assigning tests to them.
type AdminService interface {
	CreateTest(ctx context.Context, adminID uint, payload dto.TestCreateRequest) (dto.TestResponse, error)
	ListTests(ctx context.Context, adminID uint) ([]dto.TestResponse, error)
	ListCandidates(ctx context.Context) ([]dto.UserResponse, error)
	AssignTest(ctx context.Context, adminID uint, payload dto.AssignRequest) (dto.AssignmentResponse, error)
	ListAssignments(ctx context.Context) ([]dto.AssignmentResponse, error)
}

type adminService struct {
	tests       repository.TestRepository
	users       repository.UserRepository
	assignments repository.AssignmentRepository
	results     repository.ResultRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAdminService constructs the admin service.
func NewAdminService(tests repository.TestRepository, users repository.UserRepository, assignments repository.AssignmentRepository, results repository.ResultRepository, validator *validator.Validate, logger zerolog.Logger) AdminService {
	return &adminService{
		tests:       tests,
		users:       users,
		assignments: assignments,
		results:     results,
		validator:   validator,
		logger:      logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) CreateTest(ctx context.Context, adminID uint, payload dto.TestCreateRequest) (dto.TestResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TestResponse{}, err
	}

	total := payload.TotalQuestions
	if total <= 0 {
		total = defaultQuestionCount
	}

	test := models.Test{
		Title:          strings.TrimSpace(payload.Title),
		Description:    strings.TrimSpace(payload.Description),
		Prompt:         strings.TrimSpace(payload.Prompt),
		TotalQuestions: total,
		CreatedBy:      adminID,
	}
	if err := s.tests.Create(ctx, &test); err != nil {
		return dto.TestResponse{}, err
	}

	s.logger.Info().Uint("test_id", test.ID).Uint("admin_id", adminID).Msg("test created")

	return dto.NewTestResponse(test), nil
}

func (s *adminService) ListTests(ctx context.Context, adminID uint) ([]dto.TestResponse, error) {
	tests, err := s.tests.ListByCreator(ctx, adminID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TestResponse, 0, len(tests))
	for _, test := range tests {
		responses = append(responses, dto.NewTestResponse(test))
	}
	return responses, nil
}

func (s *adminService) ListCandidates(ctx context.Context) ([]dto.UserResponse, error) {
	candidates, err := s.users.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(candidates))
	for _, candidate := range candidates {
		responses = append(responses, dto.NewUserResponse(candidate))
	}
	return responses, nil
}

func (s *adminService) AssignTest(ctx context.Context, adminID uint, payload dto.AssignRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	test, err := s.tests.GetByID(ctx, payload.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrTestNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	candidate, err := s.users.GetByID(ctx, payload.CandidateID)
	if err != nil || candidate.Role != models.RoleCandidate {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, err
		}
		return dto.AssignmentResponse{}, ErrCandidateNotFound
	}

	if _, err := s.assignments.GetByTestAndCandidate(ctx, test.ID, candidate.ID); err == nil {
		return dto.AssignmentResponse{}, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.TestAssignment{
		TestID:      test.ID,
		CandidateID: candidate.ID,
		AssignedBy:  adminID,
		Status:      models.AssignmentStatusPending,
	}
	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}
	assignment.Test = test
	assignment.Candidate = candidate

	s.logger.Info().
		Uint("test_id", test.ID).
		Uint("candidate_id", candidate.ID).
		Msg("test assigned")

	return s.toResponse(ctx, assignment), nil
}

func (s *adminService) ListAssignments(ctx context.Context) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, s.toResponse(ctx, assignment))
	}
	return responses, nil
}

func (s *adminService) toResponse(ctx context.Context, assignment models.TestAssignment) dto.AssignmentResponse {
	response := dto.AssignmentResponse{
		ID:         assignment.ID,
		Test:       dto.NewTestResponse(assignment.Test),
		Candidate:  dto.NewUserResponse(assignment.Candidate),
		Status:     assignment.Status,
		AssignedAt: assignment.AssignedAt,
	}

	if assignment.IsCompleted() {
		if result, err := s.results.GetByTestAndCandidate(ctx, assignment.TestID, assignment.CandidateID); err == nil {
			response.Result = dto.NewResultSummary(result)
		}
	}
	return response
}
