package dto

// StartTestRequest begins an interview session for an assigned test.
type StartTestRequest struct {
	TestID uint `json:"test_id" validate:"required"`
}

// StartTestResponse returns the new session and its opening question.
type StartTestResponse struct {
	SessionID      string `json:"session_id"`
	TestTitle      string `json:"test_title"`
	TotalQuestions int    `json:"total_questions"`
	FirstQuestion  string `json:"first_question"`
}

// SubmitAnswerRequest records one spoken (already transcribed) answer.
type SubmitAnswerRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Answer    string `json:"answer" validate:"required"`
}

// SubmitAnswerResponse reports the score for the submitted answer and the
// next question while the session is still in progress.
type SubmitAnswerResponse struct {
	Score          int     `json:"score"`
	IsComplete     bool    `json:"is_complete"`
	NextQuestion   *string `json:"next_question"`
	QuestionNumber *int    `json:"question_number"`
	TotalQuestions int     `json:"total_questions"`
}

// CompleteTestRequest finalises a session.
type CompleteTestRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// CompleteTestResponse is the final report for a finished interview.
type CompleteTestResponse struct {
	ClosingMessage string   `json:"closing_message"`
	FinalScore     int      `json:"final_score"`
	TotalQuestions int      `json:"total_questions"`
	Percentage     float64  `json:"percentage"`
	Questions      []string `json:"questions"`
	Answers        []string `json:"answers"`
	Scores         []int    `json:"scores"`
}

// TranscribeResponse carries the text recognised from an uploaded clip.
type TranscribeResponse struct {
	Transcription string `json:"transcription"`
}
