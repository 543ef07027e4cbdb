package models

import "time"

// Test is an interview definition: a free-text prompt from which questions
// are generated when a candidate starts a session.
type Test struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Prompt         string    `gorm:"type:text;not null" json:"prompt"`
	TotalQuestions int       `gorm:"not null;default:5" json:"total_questions"`
	CreatedBy      uint      `gorm:"not null;index" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Creator        User      `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
