package interview

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/voicehire/interview-api/pkg/llm"
)

// Caller carries the verified identity of the user driving a session. It is
// passed explicitly into every operation; the engine never inspects ambient
// request state.
type Caller struct {
	UserID uint
	Role   string
}

// ResultRecord is the finalised session handed to the persistence
// collaborator exactly once, at completion.
type ResultRecord struct {
	TestID         uint
	CandidateID    uint
	Questions      []string
	Answers        []string
	Scores         []int
	TotalScore     int
	TotalQuestions int
	Percentage     float64
}

// ResultSaver persists a finalised interview result.
type ResultSaver interface {
	SaveResult(ctx context.Context, record ResultRecord) (uint, error)
}

// StartOutput is returned when a session begins.
type StartOutput struct {
	SessionID      string
	FirstQuestion  string
	TotalQuestions int
}

// SubmitOutput reports the outcome of one answer submission. NextQuestion
// and QuestionNumber are nil once the final question has been answered.
type SubmitOutput struct {
	Score          int
	IsComplete     bool
	NextQuestion   *string
	QuestionNumber *int
	TotalQuestions int
}

// CompleteOutput is the final report handed back to the caller.
type CompleteOutput struct {
	TestID         uint
	ClosingMessage string
	FinalScore     int
	TotalQuestions int
	Percentage     float64
	Questions      []string
	Answers        []string
	Scores         []int
	ResultID       uint
}

// Engine owns the session lifecycle: creation, per-question submission, and
// one-shot completion. It is a library invoked by concurrent request
// handlers; per-session serialisation is provided by the Store.
type Engine struct {
	generator *Generator
	evaluator *Evaluator
	store     *Store
	results   ResultSaver
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewEngine wires the engine from its collaborators.
func NewEngine(client llm.Client, store *Store, results ResultSaver, logger zerolog.Logger) *Engine {
	return &Engine{
		generator: NewGenerator(client, logger),
		evaluator: NewEvaluator(client, logger),
		store:     store,
		results:   results,
		tracer:    otel.Tracer("github.com/voicehire/interview-api/internal/interview"),
		logger:    logger.With().Str("component", "session_engine").Logger(),
	}
}

// Start generates the question list and registers a new in-progress session.
// It fails only when generation is structurally impossible (count <= 0);
// otherwise the generator's fallback chain guarantees success.
func (e *Engine) Start(ctx context.Context, caller Caller, testID uint, prompt string, count int) (StartOutput, error) {
	ctx, span := e.tracer.Start(ctx, "interview.start", trace.WithAttributes(
		attribute.Int64("interview.test_id", int64(testID)),
		attribute.Int("interview.question_count", count),
	))
	defer span.End()

	questions, err := e.generator.Generate(ctx, prompt, count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation_failed")
		return StartOutput{}, err
	}

	session := &Session{
		ID:          NewSessionID(caller.UserID, testID),
		TestID:      testID,
		CandidateID: caller.UserID,
		Questions:   questions,
		Answers:     make([]string, 0, len(questions)),
		Scores:      make([]int, 0, len(questions)),
		Status:      StatusInProgress,
	}
	e.store.Create(session)
	sessionsStarted.Inc()

	e.logger.Info().
		Str("session_id", session.ID).
		Uint("test_id", testID).
		Int("questions", len(questions)).
		Msg("session started")

	return StartOutput{
		SessionID:      session.ID,
		FirstQuestion:  questions[0],
		TotalQuestions: len(questions),
	}, nil
}

// SubmitAnswer evaluates the answer to the current question and records the
// result. Exhausting the question list does not complete the session; the
// caller finalises explicitly so it can display the last score first.
func (e *Engine) SubmitAnswer(ctx context.Context, caller Caller, sessionID, answer string) (SubmitOutput, error) {
	ctx, span := e.tracer.Start(ctx, "interview.submit_answer", trace.WithAttributes(
		attribute.String("interview.session_id", sessionID),
	))
	defer span.End()

	var out SubmitOutput
	err := e.store.Update(sessionID, func(session *Session) error {
		if session.CandidateID != caller.UserID {
			return ErrSessionOwnership
		}
		if session.Status != StatusInProgress {
			return fmt.Errorf("%w: session is %s", ErrInvalidSessionState, session.Status)
		}
		if session.Exhausted() {
			return fmt.Errorf("%w: all questions answered", ErrInvalidSessionState)
		}

		question := session.Questions[session.CurrentIndex]
		score := e.evaluator.Evaluate(ctx, question, answer)
		session.recordAnswer(answer, score)

		out = SubmitOutput{
			Score:          score,
			IsComplete:     session.Exhausted(),
			TotalQuestions: len(session.Questions),
		}
		if !out.IsComplete {
			next := session.Questions[session.CurrentIndex]
			number := session.CurrentIndex + 1
			out.NextQuestion = &next
			out.QuestionNumber = &number
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit_failed")
		return SubmitOutput{}, err
	}

	span.SetAttributes(
		attribute.Int("interview.score", out.Score),
		attribute.Bool("interview.complete", out.IsComplete),
	)

	return out, nil
}

// Complete finalises the session: it persists the full record, removes the
// session from the live set, and returns the closing report. A second call
// with the same id fails with ErrSessionNotFound; completion is one-shot.
func (e *Engine) Complete(ctx context.Context, caller Caller, sessionID string) (CompleteOutput, error) {
	ctx, span := e.tracer.Start(ctx, "interview.complete", trace.WithAttributes(
		attribute.String("interview.session_id", sessionID),
	))
	defer span.End()

	var out CompleteOutput
	err := e.store.Remove(sessionID, func(session *Session) error {
		if session.CandidateID != caller.UserID {
			return ErrSessionOwnership
		}

		percentage := session.Percentage()
		record := ResultRecord{
			TestID:         session.TestID,
			CandidateID:    session.CandidateID,
			Questions:      session.Questions,
			Answers:        session.Answers,
			Scores:         session.Scores,
			TotalScore:     session.TotalScore,
			TotalQuestions: len(session.Questions),
			Percentage:     percentage,
		}

		resultID, err := e.results.SaveResult(ctx, record)
		if err != nil {
			// The session stays live so completion can be retried.
			return fmt.Errorf("save result: %w", err)
		}

		session.Status = StatusCompleted
		out = CompleteOutput{
			TestID:         session.TestID,
			ClosingMessage: closingMessage(session.TotalScore, len(session.Questions), percentage),
			FinalScore:     session.TotalScore,
			TotalQuestions: len(session.Questions),
			Percentage:     percentage,
			Questions:      session.Questions,
			Answers:        session.Answers,
			Scores:         session.Scores,
			ResultID:       resultID,
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "complete_failed")
		return CompleteOutput{}, err
	}

	sessionsCompleted.Inc()
	e.logger.Info().
		Str("session_id", sessionID).
		Int("score", out.FinalScore).
		Float64("percentage", out.Percentage).
		Msg("session completed")

	return out, nil
}

// closingMessage selects the report tone from the percentage thresholds.
func closingMessage(score, total int, percentage float64) string {
	var tone string
	switch {
	case percentage >= 80:
		tone = "Excellent work! You demonstrated strong knowledge."
	case percentage >= 60:
		tone = "Good effort! Keep practicing to improve your skills."
	default:
		tone = "Thank you for your time. Consider reviewing the topics covered."
	}

	return fmt.Sprintf(`Thank you for completing this test!

Your final score is %d out of %d (%.0f%%).

%s

Best of luck with your development journey!`, score, total, percentage, tone)
}
