package cachehttp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitlane/internal/api/adapters/cache"
	"pitlane/internal/api/adapters/http/cachehttp"
	cacheport "pitlane/internal/api/ports/cache"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockCache) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

func setupApp(c cacheport.Cache) *fiber.App {
	app := fiber.New()
	handler := cachehttp.NewHandler(c)

	app.Post("/cache/set", handler.SetValue)
	app.Get("/cache/get/:key", handler.GetValue)
	app.Delete("/cache/delete/:key", handler.DeleteValue)
	app.Get("/cache/keys", handler.Keys)

	return app
}

func jsonRequest(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestHandler_SetValue(t *testing.T) {
	t.Run("Success - 201 with ttl message", func(t *testing.T) {
		store := new(mockCache)
		store.On("Set", mock.Anything, "race", "bahrain", 60*time.Second).Return(nil).Once()

		app := setupApp(store)
		resp, err := app.Test(jsonRequest("/cache/set", `{"key":"race","value":"bahrain","ttl":60}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, true, payload["success"])
		assert.Equal(t, "Value set with TTL of 60 seconds", payload["message"])
		store.AssertExpectations(t)
	})

	t.Run("Success - 201 without expiration", func(t *testing.T) {
		store := new(mockCache)
		store.On("Set", mock.Anything, "race", "bahrain", time.Duration(0)).Return(nil).Once()

		app := setupApp(store)
		resp, err := app.Test(jsonRequest("/cache/set", `{"key":"race","value":"bahrain"}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, "Value set without expiration", payload["message"])
		store.AssertExpectations(t)
	})

	t.Run("Error - empty key gives 400", func(t *testing.T) {
		store := new(mockCache)

		app := setupApp(store)
		resp, err := app.Test(jsonRequest("/cache/set", `{"key":"","value":"bahrain"}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		store.AssertExpectations(t)
	})

	t.Run("Error - oversized key gives 400", func(t *testing.T) {
		store := new(mockCache)

		app := setupApp(store)
		longKey := strings.Repeat("k", 257)
		resp, err := app.Test(jsonRequest("/cache/set", `{"key":"`+longKey+`","value":"v"}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		store.AssertExpectations(t)
	})

	t.Run("Error - empty value gives 400", func(t *testing.T) {
		store := new(mockCache)

		app := setupApp(store)
		resp, err := app.Test(jsonRequest("/cache/set", `{"key":"race","value":""}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		store.AssertExpectations(t)
	})

	t.Run("Error - non-positive ttl gives 400", func(t *testing.T) {
		store := new(mockCache)

		app := setupApp(store)
		resp, err := app.Test(jsonRequest("/cache/set", `{"key":"race","value":"bahrain","ttl":0}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		store.AssertExpectations(t)
	})

	t.Run("Error - uninitialized cache gives 500", func(t *testing.T) {
		app := setupApp(cache.NewUnavailable())
		resp, err := app.Test(jsonRequest("/cache/set", `{"key":"race","value":"bahrain"}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, "Cache is not available", payload["error"])
	})
}

func TestHandler_GetValue(t *testing.T) {
	t.Run("Success - existing key", func(t *testing.T) {
		store := new(mockCache)
		store.On("Get", mock.Anything, "race").Return("bahrain", true, nil).Once()

		app := setupApp(store)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cache/get/race", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, "bahrain", payload["value"])
		assert.Equal(t, true, payload["exists"])
		store.AssertExpectations(t)
	})

	t.Run("Success - missing key is 200 with null value", func(t *testing.T) {
		store := new(mockCache)
		store.On("Get", mock.Anything, "missing-key").Return("", false, nil).Once()

		app := setupApp(store)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cache/get/missing-key", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, "missing-key", payload["key"])
		assert.Nil(t, payload["value"])
		assert.Equal(t, false, payload["exists"])
		store.AssertExpectations(t)
	})
}

func TestHandler_DeleteValue(t *testing.T) {
	t.Run("Success - key deleted", func(t *testing.T) {
		store := new(mockCache)
		store.On("Delete", mock.Anything, "race").Return(true, nil).Once()

		app := setupApp(store)
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/cache/delete/race", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, true, payload["success"])
		store.AssertExpectations(t)
	})

	t.Run("Error - absent key gives 404 with message", func(t *testing.T) {
		store := new(mockCache)
		store.On("Delete", mock.Anything, "ghost").Return(false, nil).Once()

		app := setupApp(store)
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/cache/delete/ghost", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, "Key 'ghost' not found in cache", payload["error"])
		store.AssertExpectations(t)
	})
}

func TestHandler_Keys(t *testing.T) {
	t.Run("Success - default star pattern", func(t *testing.T) {
		store := new(mockCache)
		store.On("Keys", mock.Anything, "*").Return([]string{"race:1", "race:2"}, nil).Once()

		app := setupApp(store)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cache/keys", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, float64(2), payload["count"])
		assert.Equal(t, "*", payload["pattern"])
		store.AssertExpectations(t)
	})

	t.Run("Success - explicit pattern with no matches", func(t *testing.T) {
		store := new(mockCache)
		store.On("Keys", mock.Anything, "team:*").Return([]string{}, nil).Once()

		app := setupApp(store)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cache/keys?pattern=team:*", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		payload := decodeBody(t, resp)
		assert.Equal(t, float64(0), payload["count"])
		assert.NotNil(t, payload["keys"])
		store.AssertExpectations(t)
	})
}
