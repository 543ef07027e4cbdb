package interview

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voicehire/interview-api/pkg/llm"
)

// Evaluator scores a (question, answer) pair as pass or fail with a single
// model call. Any failure to reach or parse the model scores 0: an outage
// fails candidates closed rather than blocking the interview.
type Evaluator struct {
	client llm.Client
	logger zerolog.Logger
}

// NewEvaluator builds an evaluator backed by the given model client.
func NewEvaluator(client llm.Client, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		client: client,
		logger: logger.With().Str("component", "answer_evaluator").Logger(),
	}
}

// Evaluate returns 1 when the model accepts the answer and 0 otherwise.
// The verdict must contain CORRECT and must not contain INCORRECT; the veto
// order biases ambiguous replies toward not over-crediting.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer string) int {
	reply, err := e.client.Send(ctx, evaluationPrompt(question, answer))
	if err != nil {
		evaluationFailures.Inc()
		e.logger.Error().Err(err).Msg("evaluation call failed, scoring zero")
		answersEvaluated.WithLabelValues("0").Inc()
		return 0
	}

	verdict := strings.ToUpper(strings.TrimSpace(reply))
	score := 0
	if strings.Contains(verdict, "CORRECT") && !strings.Contains(verdict, "INCORRECT") {
		score = 1
	}

	answersEvaluated.WithLabelValues(strconv.Itoa(score)).Inc()
	e.logger.Debug().Int("score", score).Msg("answer evaluated")

	return score
}

func evaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`You are an interviewer evaluating a candidate's answer.

Question: %s

Candidate's Answer: %s

Evaluate this answer and determine if it demonstrates sufficient understanding.
Consider:
- Technical accuracy
- Relevance to the question
- Depth of understanding
- Practical knowledge

Respond with ONLY "CORRECT" if the answer is acceptable (award 1 point), or "INCORRECT" if not (award 0 points).
Be reasonably lenient - if the answer shows basic understanding, mark it as CORRECT.`, question, answer)
}
