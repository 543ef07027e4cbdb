package models

import "time"

// Role values distinguish test authors from interviewees.
const (
	// RoleAdmin can create, assign, and review tests.
	RoleAdmin = "admin"
	// RoleCandidate can take assigned tests.
	RoleCandidate = "candidate"
)

// User is an authenticated account, either an admin or a candidate.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Role         string    `gorm:"size:32;not null;index" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
