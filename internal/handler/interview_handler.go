package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voicehire/interview-api/internal/dto"
	"github.com/voicehire/interview-api/internal/interview"
	"github.com/voicehire/interview-api/internal/service"
	"github.com/voicehire/interview-api/internal/utils"
	"github.com/voicehire/interview-api/pkg/speech"
)

// sniffLen is how many leading bytes the content detector needs.
const sniffLen = 3072

// InterviewHandler exposes the candidate session endpoints.
type InterviewHandler struct {
	service service.InterviewService
	logger  zerolog.Logger
}

// NewInterviewHandler constructs an interview handler.
func NewInterviewHandler(service service.InterviewService, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		logger:  logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register wires the candidate session routes.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/tests/start", h.startTest)
	router.Post("/tests/submit-answer", h.submitAnswer)
	router.Post("/tests/complete", h.completeTest)
	router.Post("/transcribe", h.transcribe)
}

func (h *InterviewHandler) startTest(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.StartTestRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	started, err := h.service.StartTest(c.Context(), caller, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAssigned):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAssignmentCompleted):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, interview.ErrSessionCreation):
			requestLogger(h.logger, c).Error().Err(err).Msg("session creation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to start test")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to start test")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to start test")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "test started", started)
}

func (h *InterviewHandler) submitAnswer(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.SubmitAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.SubmitAnswer(c.Context(), caller, payload)
	if err != nil {
		return h.sendSessionError(c, err, "failed to submit answer")
	}

	return utils.SendSuccess(c, "answer recorded", result)
}

func (h *InterviewHandler) completeTest(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.CompleteTestRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.service.CompleteTest(c.Context(), caller, payload)
	if err != nil {
		return h.sendSessionError(c, err, "failed to complete test")
	}

	return utils.SendSuccess(c, "test completed", report)
}

func (h *InterviewHandler) transcribe(c *fiber.Ctx) error {
	if _, err := callerFromContext(c); err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "audio file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to open uploaded audio")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to read audio")
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to read uploaded audio")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to read audio")
	}
	if err := speech.ValidateAudio(head[:n]); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to rewind uploaded audio")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to read audio")
	}

	transcribed, err := h.service.Transcribe(c.Context(), fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, speech.ErrUnsupportedAudio) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("transcription failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "transcription failed")
	}

	return utils.SendSuccess(c, "audio transcribed", transcribed)
}

func (h *InterviewHandler) sendSessionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, interview.ErrSessionOwnership):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, interview.ErrInvalidSessionState):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
