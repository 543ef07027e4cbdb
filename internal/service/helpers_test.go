package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/voicehire/interview-api/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Test{},
		&models.TestAssignment{},
		&models.TestResult{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func newValidator() *validator.Validate {
	return validator.New()
}

func createUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTest(t *testing.T, db *gorm.DB, adminID uint, total int) models.Test {
	t.Helper()

	test := models.Test{
		Title:          "React Fundamentals",
		Description:    "Core React concepts",
		Prompt:         "Senior React developer position",
		TotalQuestions: total,
		CreatedBy:      adminID,
	}
	require.NoError(t, db.Create(&test).Error)
	return test
}

func assignTest(t *testing.T, db *gorm.DB, testID, candidateID, adminID uint, status string) models.TestAssignment {
	t.Helper()

	assignment := models.TestAssignment{
		TestID:      testID,
		CandidateID: candidateID,
		AssignedBy:  adminID,
		Status:      status,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}

// scriptedLLM replays canned completions in order.
type scriptedLLM struct {
	replies []string
	calls   int
}

func (c *scriptedLLM) Send(_ context.Context, _ string) (string, error) {
	if c.calls >= len(c.replies) {
		return "", fmt.Errorf("no scripted reply for call %d", c.calls+1)
	}
	reply := c.replies[c.calls]
	c.calls++
	return reply, nil
}

// stubTranscriber returns a fixed transcription.
type stubTranscriber struct {
	text string
	err  error
}

func (s stubTranscriber) Transcribe(_ context.Context, _ string, _ io.Reader) (string, error) {
	return s.text, s.err
}
