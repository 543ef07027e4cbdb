package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

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

func seedUsers(t *testing.T, db *gorm.DB) (admin, candidate models.User) {
	t.Helper()

	admin = models.User{Email: "admin@example.com", PasswordHash: "x", Name: "Admin", Role: models.RoleAdmin}
	candidate = models.User{Email: "cand@example.com", PasswordHash: "x", Name: "Cand", Role: models.RoleCandidate}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&candidate).Error)
	return admin, candidate
}

func TestResultRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	admin, candidate := seedUsers(t, db)

	test := models.Test{Title: "React", Prompt: "React fundamentals", TotalQuestions: 2, CreatedBy: admin.ID}
	require.NoError(t, NewTestRepository(db).Create(context.Background(), &test))

	questions, _ := json.Marshal([]string{"Q1?", "Q2?"})
	answers, _ := json.Marshal([]string{"A1", "A2"})
	scores, _ := json.Marshal([]int{1, 0})

	repo := NewResultRepository(db)
	result := models.TestResult{
		TestID:         test.ID,
		CandidateID:    candidate.ID,
		Questions:      questions,
		Answers:        answers,
		Scores:         scores,
		TotalScore:     1,
		TotalQuestions: 2,
		Percentage:     50,
	}
	require.NoError(t, repo.Create(context.Background(), &result))
	require.NotZero(t, result.ID)

	fetched, err := repo.GetByTestAndCandidate(context.Background(), test.ID, candidate.ID)
	require.NoError(t, err)
	require.Equal(t, 1, fetched.TotalScore)
	require.InDelta(t, 50, fetched.Percentage, 0.001)

	var storedQuestions []string
	require.NoError(t, json.Unmarshal(fetched.Questions, &storedQuestions))
	require.Equal(t, []string{"Q1?", "Q2?"}, storedQuestions)

	listed, err := repo.ListByCandidate(context.Background(), candidate.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestAssignmentRepositoryUniquePair(t *testing.T) {
	db := testDB(t)
	admin, candidate := seedUsers(t, db)

	test := models.Test{Title: "JS", Prompt: "javascript", TotalQuestions: 3, CreatedBy: admin.ID}
	require.NoError(t, NewTestRepository(db).Create(context.Background(), &test))

	repo := NewAssignmentRepository(db)
	first := models.TestAssignment{TestID: test.ID, CandidateID: candidate.ID, AssignedBy: admin.ID, Status: models.AssignmentStatusPending}
	require.NoError(t, repo.Create(context.Background(), &first))

	duplicate := models.TestAssignment{TestID: test.ID, CandidateID: candidate.ID, AssignedBy: admin.ID, Status: models.AssignmentStatusPending}
	require.Error(t, repo.Create(context.Background(), &duplicate))

	require.NoError(t, repo.UpdateStatus(context.Background(), first.ID, models.AssignmentStatusInProgress))

	fetched, err := repo.GetByTestAndCandidate(context.Background(), test.ID, candidate.ID)
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusInProgress, fetched.Status)
	require.Equal(t, "JS", fetched.Test.Title)
}

func TestUserRepositoryEmailNormalisation(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	user := models.User{Email: "  Mixed@Example.COM ", PasswordHash: "x", Name: "User", Role: models.RoleCandidate}
	require.NoError(t, repo.Create(context.Background(), &user))
	require.Equal(t, "mixed@example.com", user.Email)

	fetched, err := repo.GetByEmail(context.Background(), "MIXED@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, fetched.ID)

	candidates, err := repo.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
}
