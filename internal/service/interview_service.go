package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/voicehire/interview-api/internal/dto"
	"github.com/voicehire/interview-api/internal/interview"
	"github.com/voicehire/interview-api/internal/models"
	"github.com/voicehire/interview-api/internal/repository"
	"github.com/voicehire/interview-api/pkg/format"
	"github.com/voicehire/interview-api/pkg/speech"
)

// ErrNotAssigned indicates the candidate does not hold the referenced test.
var ErrNotAssigned = errors.New("test not assigned to candidate")

// ErrAssignmentCompleted indicates the test was already taken.
var ErrAssignmentCompleted = errors.New("test already completed")

// InterviewService bridges HTTP requests to the session engine, enforcing
// assignment checks and keeping assignment status in sync.
type InterviewService interface {
	StartTest(ctx context.Context, caller interview.Caller, payload dto.StartTestRequest) (dto.StartTestResponse, error)
	SubmitAnswer(ctx context.Context, caller interview.Caller, payload dto.SubmitAnswerRequest) (dto.SubmitAnswerResponse, error)
	CompleteTest(ctx context.Context, caller interview.Caller, payload dto.CompleteTestRequest) (dto.CompleteTestResponse, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader) (dto.TranscribeResponse, error)
}

type interviewService struct {
	engine      *interview.Engine
	assignments repository.AssignmentRepository
	transcriber speech.Transcriber
	formatter   *format.Formatter
	dashboard   DashboardService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewInterviewService constructs the interview service.
func NewInterviewService(engine *interview.Engine, assignments repository.AssignmentRepository, transcriber speech.Transcriber, dashboard DashboardService, validator *validator.Validate, logger zerolog.Logger) InterviewService {
	return &interviewService{
		engine:      engine,
		assignments: assignments,
		transcriber: transcriber,
		formatter:   format.New(),
		dashboard:   dashboard,
		validator:   validator,
		logger:      logger.With().Str("component", "interview_service").Logger(),
	}
}

func (s *interviewService) StartTest(ctx context.Context, caller interview.Caller, payload dto.StartTestRequest) (dto.StartTestResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StartTestResponse{}, err
	}

	assignment, err := s.assignments.GetByTestAndCandidate(ctx, payload.TestID, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StartTestResponse{}, ErrNotAssigned
		}
		return dto.StartTestResponse{}, err
	}
	if assignment.IsCompleted() {
		return dto.StartTestResponse{}, ErrAssignmentCompleted
	}

	out, err := s.engine.Start(ctx, caller, assignment.TestID, assignment.Test.Prompt, assignment.Test.TotalQuestions)
	if err != nil {
		return dto.StartTestResponse{}, err
	}

	if err := s.assignments.UpdateStatus(ctx, assignment.ID, models.AssignmentStatusInProgress); err != nil {
		s.logger.Warn().Err(err).Uint("assignment_id", assignment.ID).Msg("failed to mark assignment in progress")
	}

	return dto.StartTestResponse{
		SessionID:      out.SessionID,
		TestTitle:      assignment.Test.Title,
		TotalQuestions: out.TotalQuestions,
		FirstQuestion:  s.formatter.ForVoice(out.FirstQuestion),
	}, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, caller interview.Caller, payload dto.SubmitAnswerRequest) (dto.SubmitAnswerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmitAnswerResponse{}, err
	}

	out, err := s.engine.SubmitAnswer(ctx, caller, payload.SessionID, payload.Answer)
	if err != nil {
		return dto.SubmitAnswerResponse{}, err
	}

	response := dto.SubmitAnswerResponse{
		Score:          out.Score,
		IsComplete:     out.IsComplete,
		QuestionNumber: out.QuestionNumber,
		TotalQuestions: out.TotalQuestions,
	}
	if out.NextQuestion != nil {
		next := s.formatter.ForVoice(*out.NextQuestion)
		response.NextQuestion = &next
	}
	return response, nil
}

func (s *interviewService) CompleteTest(ctx context.Context, caller interview.Caller, payload dto.CompleteTestRequest) (dto.CompleteTestResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CompleteTestResponse{}, err
	}

	out, err := s.engine.Complete(ctx, caller, payload.SessionID)
	if err != nil {
		return dto.CompleteTestResponse{}, err
	}

	if assignment, lookupErr := s.assignments.GetByTestAndCandidate(ctx, out.TestID, caller.UserID); lookupErr == nil {
		if updateErr := s.assignments.UpdateStatus(ctx, assignment.ID, models.AssignmentStatusCompleted); updateErr != nil {
			s.logger.Warn().Err(updateErr).Uint("assignment_id", assignment.ID).Msg("failed to mark assignment completed")
		}
	} else {
		s.logger.Warn().Err(lookupErr).Uint("test_id", out.TestID).Msg("completed session has no assignment")
	}

	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, caller.UserID)
	}

	return dto.CompleteTestResponse{
		ClosingMessage: out.ClosingMessage,
		FinalScore:     out.FinalScore,
		TotalQuestions: out.TotalQuestions,
		Percentage:     out.Percentage,
		Questions:      out.Questions,
		Answers:        out.Answers,
		Scores:         out.Scores,
	}, nil
}

func (s *interviewService) Transcribe(ctx context.Context, filename string, audio io.Reader) (dto.TranscribeResponse, error) {
	text, err := s.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		return dto.TranscribeResponse{}, err
	}
	return dto.TranscribeResponse{Transcription: s.formatter.ForVoice(text)}, nil
}

// resultSaver adapts the result repository to the engine's persistence hook.
type resultSaver struct {
	results repository.ResultRepository
}

// NewResultSaver wraps a result repository for the session engine.
func NewResultSaver(results repository.ResultRepository) interview.ResultSaver {
	return resultSaver{results: results}
}

func (r resultSaver) SaveResult(ctx context.Context, record interview.ResultRecord) (uint, error) {
	questions, err := json.Marshal(record.Questions)
	if err != nil {
		return 0, err
	}
	answers, err := json.Marshal(record.Answers)
	if err != nil {
		return 0, err
	}
	scores, err := json.Marshal(record.Scores)
	if err != nil {
		return 0, err
	}

	result := models.TestResult{
		TestID:         record.TestID,
		CandidateID:    record.CandidateID,
		Questions:      datatypes.JSON(questions),
		Answers:        datatypes.JSON(answers),
		Scores:         datatypes.JSON(scores),
		TotalScore:     record.TotalScore,
		TotalQuestions: record.TotalQuestions,
		Percentage:     record.Percentage,
	}
	if err := r.results.Create(ctx, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}
