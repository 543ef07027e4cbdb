package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func roleApp(role interface{}) *fiber.App {
	app := fiber.New()
	app.Get("/admin-only",
		func(c *fiber.Ctx) error {
			if role != nil {
				c.Locals("user_role", role)
			}
			return c.Next()
		},
		RequireRole("admin"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	app := roleApp("Admin")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin-only", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	app := roleApp("candidate")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin-only", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	app := roleApp(nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin-only", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
