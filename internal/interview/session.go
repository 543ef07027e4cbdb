// Package interview implements the voice interview session engine: question
// generation with a tiered fallback chain, binary answer evaluation, and the
// session lifecycle that ties them together.
package interview

import (
	"fmt"

	"github.com/google/uuid"
)

// Status tracks the lifecycle of a session. Transitions are monotonic:
// created -> in_progress -> completed, never reversed.
type Status string

const (
	// StatusCreated is transient; a session becomes observable only after
	// its questions exist, at which point it is already in progress.
	StatusCreated Status = "created"
	// StatusInProgress means answers are still being collected.
	StatusInProgress Status = "in_progress"
	// StatusCompleted means the session has been finalised and persisted.
	StatusCompleted Status = "completed"
)

// Session holds one candidate's attempt at one test. Questions are fixed
// once generated; answers and scores grow one element per submission and
// always stay the same length as CurrentIndex.
type Session struct {
	ID           string
	TestID       uint
	CandidateID  uint
	Questions    []string
	Answers      []string
	Scores       []int
	CurrentIndex int
	TotalScore   int
	Status       Status
}

// NewSessionID derives an unguessable session identifier. The candidate and
// test components keep the id traceable in logs; the random suffix prevents
// one tenant from guessing another's session.
func NewSessionID(candidateID, testID uint) string {
	return fmt.Sprintf("%d-%d-%s", candidateID, testID, uuid.NewString())
}

// Exhausted reports whether every question has been answered.
func (s *Session) Exhausted() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// recordAnswer appends one answer/score pair and advances the cursor,
// preserving len(answers) == len(scores) == current_index and
// total_score == sum(scores).
func (s *Session) recordAnswer(answer string, score int) {
	s.Answers = append(s.Answers, answer)
	s.Scores = append(s.Scores, score)
	s.TotalScore += score
	s.CurrentIndex++
}

// Percentage returns the final score as a percentage of the question count,
// defined as 0 for an empty question list.
func (s *Session) Percentage() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(len(s.Questions)) * 100
}
