package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (*http.Response, APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed APIResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	return resp, parsed
}

func TestSendSuccess(t *testing.T) {
	resp, parsed := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "session started", fiber.Map{"id": "1-2-abc"})
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, parsed.Success)
	require.Equal(t, "session started", parsed.Message)
	require.NotNil(t, parsed.Data)
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	_, parsed := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "", nil)
	})

	require.Equal(t, "success", parsed.Message)
}

func TestSendError(t *testing.T) {
	resp, parsed := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusBadRequest, "invalid session")
	})

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.False(t, parsed.Success)
	require.Equal(t, "invalid session", parsed.Message)
}
