package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/interview-api/internal/dto"
	"github.com/voicehire/interview-api/internal/handler"
	"github.com/voicehire/interview-api/internal/service"
	"github.com/voicehire/interview-api/internal/utils"
)

type stubAuthService struct {
	registerResponse dto.AuthResponse
	registerErr      error
	loginResponse    dto.AuthResponse
	loginErr         error
	meResponse       dto.UserResponse
	meErr            error
}

func (s *stubAuthService) Register(context.Context, dto.RegisterRequest) (dto.AuthResponse, error) {
	return s.registerResponse, s.registerErr
}

func (s *stubAuthService) Login(context.Context, dto.LoginRequest) (dto.AuthResponse, error) {
	return s.loginResponse, s.loginErr
}

func (s *stubAuthService) Me(context.Context, uint) (dto.UserResponse, error) {
	return s.meResponse, s.meErr
}

func authApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.Nop())
	h.Register(app.Group("/api/v1/auth"))

	protected := app.Group("/api/v1/auth", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(5))
		return c.Next()
	})
	h.RegisterProtected(protected)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) utils.APIResponse {
	t.Helper()

	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestAuthHandlerRegisterSuccess(t *testing.T) {
	svc := &stubAuthService{
		registerResponse: dto.AuthResponse{
			Token: "signed-token",
			User:  dto.UserResponse{ID: 1, Email: "jane@example.com", Role: "candidate"},
		},
	}
	app := authApp(svc)

	resp := postJSON(t, app, "/api/v1/auth/register", dto.RegisterRequest{
		Email:    "jane@example.com",
		Password: "strongpass1",
		Name:     "Jane",
		Role:     "candidate",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	app := authApp(&stubAuthService{registerErr: service.ErrEmailTaken})

	resp := postJSON(t, app, "/api/v1/auth/register", dto.RegisterRequest{
		Email:    "dup@example.com",
		Password: "strongpass1",
		Name:     "Dup",
		Role:     "candidate",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.False(t, envelope.Success)
}

func TestAuthHandlerLoginUnauthorized(t *testing.T) {
	app := authApp(&stubAuthService{loginErr: service.ErrInvalidCredentials})

	resp := postJSON(t, app, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerMe(t *testing.T) {
	app := authApp(&stubAuthService{meResponse: dto.UserResponse{ID: 5, Email: "me@example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
