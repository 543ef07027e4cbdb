package models

import "time"

// Assignment status values. A candidate moves an assignment from pending to
// in_progress when a session starts and to completed when it is finalised.
const (
	AssignmentStatusPending    = "pending"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"
)

// TestAssignment links one candidate to one test. The (test, candidate)
// pair is unique: a test cannot be assigned to the same candidate twice.
type TestAssignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TestID      uint      `gorm:"not null;uniqueIndex:idx_assignment_test_candidate" json:"test_id"`
	CandidateID uint      `gorm:"not null;uniqueIndex:idx_assignment_test_candidate" json:"candidate_id"`
	AssignedBy  uint      `gorm:"not null" json:"assigned_by"`
	Status      string    `gorm:"size:32;not null;default:pending" json:"status"`
	AssignedAt  time.Time `gorm:"autoCreateTime" json:"assigned_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Test        Test      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"test"`
	Candidate   User      `gorm:"foreignKey:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"candidate"`
}

// IsCompleted reports whether the assignment has a finalised result.
func (a TestAssignment) IsCompleted() bool {
	return a.Status == AssignmentStatusCompleted
}
