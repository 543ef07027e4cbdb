package interview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "voicehire",
		Subsystem: "interview",
		Name:      "sessions_started_total",
		Help:      "Number of interview sessions started",
	})

	sessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "voicehire",
		Subsystem: "interview",
		Name:      "sessions_completed_total",
		Help:      "Number of interview sessions finalised",
	})

	answersEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voicehire",
		Subsystem: "interview",
		Name:      "answers_evaluated_total",
		Help:      "Number of answers evaluated, labelled by score",
	}, []string{"score"})

	evaluationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "voicehire",
		Subsystem: "interview",
		Name:      "evaluation_failures_total",
		Help:      "Number of evaluations that failed closed to a zero score",
	})

	generatorTierOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voicehire",
		Subsystem: "interview",
		Name:      "generator_tier_total",
		Help:      "Question generation attempts, labelled by tier and outcome",
	}, []string{"tier", "outcome"})
)
