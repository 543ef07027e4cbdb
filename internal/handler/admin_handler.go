package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voicehire/interview-api/internal/dto"
	"github.com/voicehire/interview-api/internal/service"
	"github.com/voicehire/interview-api/internal/utils"
)

// AdminHandler exposes the test-author endpoints.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register wires the admin routes.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Post("/tests", h.createTest)
	router.Get("/tests", h.listTests)
	router.Get("/candidates", h.listCandidates)
	router.Post("/assign", h.assignTest)
	router.Get("/assignments", h.listAssignments)
}

func (h *AdminHandler) createTest(c *fiber.Ctx) error {
	adminID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.TestCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.CreateTest(c.Context(), adminID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create test")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create test")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "test created", created)
}

func (h *AdminHandler) listTests(c *fiber.Ctx) error {
	adminID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	tests, err := h.service.ListTests(c.Context(), adminID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list tests")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list tests")
	}

	return utils.SendSuccess(c, "tests retrieved", tests)
}

func (h *AdminHandler) listCandidates(c *fiber.Ctx) error {
	candidates, err := h.service.ListCandidates(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list candidates")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list candidates")
	}

	return utils.SendSuccess(c, "candidates retrieved", candidates)
}

func (h *AdminHandler) assignTest(c *fiber.Ctx) error {
	adminID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.AssignRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assigned, err := h.service.AssignTest(c.Context(), adminID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotFound), errors.Is(err, service.ErrCandidateNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyAssigned):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to assign test")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to assign test")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "test assigned", assigned)
}

func (h *AdminHandler) listAssignments(c *fiber.Ctx) error {
	assignments, err := h.service.ListAssignments(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list assignments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list assignments")
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}
