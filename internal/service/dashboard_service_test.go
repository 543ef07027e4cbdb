package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/interview-api/internal/models"
	"github.com/voicehire/interview-api/internal/repository"
)

func TestDashboardServiceAggregationAndCaching(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db := testDB(t)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)
	candidate := createUser(t, db, "cand@example.com", models.RoleCandidate)

	testA := createTest(t, db, admin.ID, 5)
	testB := models.Test{Title: "JS Deep Dive", Prompt: "Senior JS role", TotalQuestions: 4, CreatedBy: admin.ID}
	require.NoError(t, db.Create(&testB).Error)

	assignTest(t, db, testA.ID, candidate.ID, admin.ID, models.AssignmentStatusCompleted)
	assignTest(t, db, testB.ID, candidate.ID, admin.ID, models.AssignmentStatusPending)

	result := models.TestResult{
		TestID:         testA.ID,
		CandidateID:    candidate.ID,
		Questions:      []byte(`["Q1"]`),
		Answers:        []byte(`["A1"]`),
		Scores:         []byte(`[1]`),
		TotalScore:     4,
		TotalQuestions: 5,
		Percentage:     80,
	}
	require.NoError(t, db.Create(&result).Error)

	svc := NewDashboardService(
		repository.NewAssignmentRepository(db),
		repository.NewResultRepository(db),
		redisClient,
		time.Minute,
		zerolog.Nop(),
	)

	ctx := context.Background()
	first, err := svc.GetDashboard(ctx, candidate.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), first.Stats.TotalTests)
	require.Equal(t, int64(1), first.Stats.CompletedTests)
	require.Equal(t, int64(1), first.Stats.PendingTests)
	require.NotNil(t, first.Stats.AverageScore)
	require.Equal(t, 80.0, *first.Stats.AverageScore)
	require.Len(t, first.Tests, 2)

	// Second read comes from the cache even after the DB changes.
	require.NoError(t, db.Model(&models.TestAssignment{}).
		Where("test_id = ?", testB.ID).
		Update("status", models.AssignmentStatusCompleted).Error)

	cached, err := svc.GetDashboard(ctx, candidate.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), cached.Stats.PendingTests)

	// Invalidation forces a fresh aggregation.
	svc.Invalidate(ctx, candidate.ID)
	fresh, err := svc.GetDashboard(ctx, candidate.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), fresh.Stats.PendingTests)
}

func TestDashboardServiceNoCompletedTests(t *testing.T) {
	db := testDB(t)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)
	candidate := createUser(t, db, "cand@example.com", models.RoleCandidate)
	test := createTest(t, db, admin.ID, 5)
	assignTest(t, db, test.ID, candidate.ID, admin.ID, models.AssignmentStatusPending)

	svc := NewDashboardService(
		repository.NewAssignmentRepository(db),
		repository.NewResultRepository(db),
		nil,
		time.Minute,
		zerolog.Nop(),
	)

	dashboard, err := svc.GetDashboard(context.Background(), candidate.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), dashboard.Stats.PendingTests)
	require.Nil(t, dashboard.Stats.AverageScore)
	require.Nil(t, dashboard.Tests[0].Percentage)
}
