package dto

// DashboardStats summarises a candidate's assignment progress.
type DashboardStats struct {
	TotalTests     int64    `json:"total_tests"`
	CompletedTests int64    `json:"completed_tests"`
	PendingTests   int64    `json:"pending_tests"`
	AverageScore   *float64 `json:"average_score"`
}

// AssignedTest is one row of the candidate dashboard test list.
type AssignedTest struct {
	AssignmentID uint     `json:"assignment_id"`
	TestID       uint     `json:"test_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	NumQuestions int      `json:"num_questions"`
	Status       string   `json:"status"`
	Percentage   *float64 `json:"percentage"`
	AssignedAt   string   `json:"assigned_at"`
}

// DashboardResponse is the cached payload served to candidates.
type DashboardResponse struct {
	Stats DashboardStats `json:"stats"`
	Tests []AssignedTest `json:"tests"`
}
