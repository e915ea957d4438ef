package system_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitlane/internal/api/adapters/http/system"
)

func setupApp() *fiber.App {
	app := fiber.New()
	handler := system.NewHandler()

	app.Get("/", handler.Root)
	app.Get("/health", handler.Health)

	return app
}

func TestHandler_Root(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, "Welcome to F1 Data API", payload["message"])
	assert.Equal(t, system.ServiceVersion, payload["version"])

	endpoints, ok := payload["endpoints"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, endpoints, "f1_raw_data")
	assert.Contains(t, endpoints, "users_crud")
	assert.Contains(t, endpoints, "cache")
}

func TestHandler_Health(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, system.ServiceName, payload["service"])
}
