package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voicehire/interview-api/internal/config"
	"github.com/voicehire/interview-api/internal/database"
	"github.com/voicehire/interview-api/internal/handler"
	"github.com/voicehire/interview-api/internal/interview"
	"github.com/voicehire/interview-api/internal/middleware"
	"github.com/voicehire/interview-api/internal/models"
	"github.com/voicehire/interview-api/internal/repository"
	"github.com/voicehire/interview-api/internal/router"
	"github.com/voicehire/interview-api/internal/service"
	"github.com/voicehire/interview-api/pkg/llm"
	"github.com/voicehire/interview-api/pkg/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Test{}, &models.TestAssignment{}, &models.TestResult{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	llmClient, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	transcriber, err := speech.NewWhisperTranscriber(speech.WhisperConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.WhisperModel,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("failed to create transcriber: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	testRepo := repository.NewTestRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	resultRepo := repository.NewResultRepository(db)

	engine := interview.NewEngine(llmClient, interview.NewStore(), service.NewResultSaver(resultRepo), logger)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	adminService := service.NewAdminService(testRepo, userRepo, assignmentRepo, resultRepo, validate, logger)
	dashboardService := service.NewDashboardService(assignmentRepo, resultRepo, redisClient, cfg.DashboardCacheTTL, logger)
	interviewService := service.NewInterviewService(engine, assignmentRepo, transcriber, dashboardService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    cfg.MaxUploadBytes,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:      handler.NewAuthHandler(authService, logger),
		AdminHandler:     handler.NewAdminHandler(adminService, logger),
		DashboardHandler: handler.NewDashboardHandler(dashboardService, logger),
		InterviewHandler: handler.NewInterviewHandler(interviewService, logger),
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Msg("server listening")

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
