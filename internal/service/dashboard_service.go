package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/voicehire/interview-api/internal/dto"
	"github.com/voicehire/interview-api/internal/models"
	"github.com/voicehire/interview-api/internal/repository"
)

// DashboardService produces the candidate's aggregated assignment view.
type DashboardService interface {
	GetDashboard(ctx context.Context, candidateID uint) (dto.DashboardResponse, error)
	Invalidate(ctx context.Context, candidateID uint)
}

type dashboardService struct {
	assignments repository.AssignmentRepository
	results     repository.ResultRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(assignments repository.AssignmentRepository, results repository.ResultRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		assignments: assignments,
		results:     results,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func dashboardCacheKey(candidateID uint) string {
	return fmt.Sprintf("dashboard:candidate:%d", candidateID)
}

func (s *dashboardService) GetDashboard(ctx context.Context, candidateID uint) (dto.DashboardResponse, error) {
	cacheKey := dashboardCacheKey(candidateID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("candidate_id", candidateID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	assignments, err := s.assignments.ListByCandidate(ctx, candidateID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	results, err := s.results.ListByCandidate(ctx, candidateID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := buildDashboard(assignments, results)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

// Invalidate drops the cached dashboard after a result lands so the next
// read reflects the new score.
func (s *dashboardService) Invalidate(ctx context.Context, candidateID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey(candidateID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("candidate_id", candidateID).Msg("failed to invalidate dashboard cache")
	}
}

func buildDashboard(assignments []models.TestAssignment, results []models.TestResult) dto.DashboardResponse {
	resultByTest := map[uint]models.TestResult{}
	for _, result := range results {
		resultByTest[result.TestID] = result
	}

	stats := dto.DashboardStats{}
	tests := make([]dto.AssignedTest, 0, len(assignments))
	var percentageTotal float64
	var completedWithResult int

	for _, assignment := range assignments {
		stats.TotalTests++

		row := dto.AssignedTest{
			AssignmentID: assignment.ID,
			TestID:       assignment.TestID,
			Title:        assignment.Test.Title,
			Description:  assignment.Test.Description,
			NumQuestions: assignment.Test.TotalQuestions,
			Status:       assignment.Status,
			AssignedAt:   assignment.AssignedAt.Format(time.RFC3339),
		}

		if assignment.IsCompleted() {
			stats.CompletedTests++
			if result, ok := resultByTest[assignment.TestID]; ok {
				percentage := result.Percentage
				row.Percentage = &percentage
				percentageTotal += percentage
				completedWithResult++
			}
		} else {
			stats.PendingTests++
		}

		tests = append(tests, row)
	}

	if completedWithResult > 0 {
		average := percentageTotal / float64(completedWithResult)
		stats.AverageScore = &average
	}

	return dto.DashboardResponse{Stats: stats, Tests: tests}
}
