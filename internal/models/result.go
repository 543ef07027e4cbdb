package models

import (
	"time"

	"gorm.io/datatypes"
)

// TestResult is the durable record of a completed interview session. The
// question, answer, and score sequences are stored as JSON documents so the
// full transcript survives exactly as the candidate produced it.
type TestResult struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	TestID         uint           `gorm:"not null;index:idx_result_test_candidate" json:"test_id"`
	CandidateID    uint           `gorm:"not null;index:idx_result_test_candidate" json:"candidate_id"`
	Questions      datatypes.JSON `gorm:"not null" json:"questions"`
	Answers        datatypes.JSON `gorm:"not null" json:"answers"`
	Scores         datatypes.JSON `gorm:"not null" json:"scores"`
	TotalScore     int            `gorm:"not null" json:"total_score"`
	TotalQuestions int            `gorm:"not null" json:"total_questions"`
	Percentage     float64        `gorm:"not null" json:"percentage"`
	CompletedAt    time.Time      `gorm:"autoCreateTime" json:"completed_at"`
	Test           Test           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Candidate      User           `gorm:"foreignKey:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
