package f1_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	f1handler "pitlane/internal/api/adapters/http/f1"
	"pitlane/internal/api/app/dto"
	"pitlane/internal/api/domain/entities"
)

type mockF1UseCase struct {
	mock.Mock
}

func (m *mockF1UseCase) RawDrivers(ctx context.Context) (*entities.F1Data, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.F1Data), args.Error(1)
}

func (m *mockF1UseCase) RawRaces(ctx context.Context) (*entities.F1Data, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.F1Data), args.Error(1)
}

func (m *mockF1UseCase) RawStandings(ctx context.Context, season string) (*entities.F1Data, error) {
	args := m.Called(ctx, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.F1Data), args.Error(1)
}

func (m *mockF1UseCase) ProcessedDrivers(ctx context.Context) (*dto.F1ProcessedResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.F1ProcessedResponse), args.Error(1)
}

func (m *mockF1UseCase) ProcessedRaces(ctx context.Context) (*dto.F1ProcessedResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.F1ProcessedResponse), args.Error(1)
}

func (m *mockF1UseCase) ProcessedStandings(ctx context.Context, season string) (*dto.F1ProcessedResponse, error) {
	args := m.Called(ctx, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.F1ProcessedResponse), args.Error(1)
}

func setupApp(service *mockF1UseCase) *fiber.App {
	app := fiber.New()
	handler := f1handler.NewHandler(service)

	app.Get("/external/data/drivers", handler.RawDrivers)
	app.Get("/external/data/races", handler.RawRaces)
	app.Get("/external/data/standings", handler.RawStandings)
	app.Get("/external/processed/drivers", handler.ProcessedDrivers)
	app.Get("/external/processed/races", handler.ProcessedRaces)
	app.Get("/external/processed/standings", handler.ProcessedStandings)
	app.Get("/external/f1/html", handler.StandingsHTML)

	return app
}

func standingsResponse() *dto.F1ProcessedResponse {
	return &dto.F1ProcessedResponse{
		Title:       "F1 2025 Season - Driver Standings",
		Description: "Current driver championship standings",
		Season:      "2025",
		TotalItems:  3,
		Summary:     "Championship leader: Max Verstappen with 310.5 points and 9 wins.",
		Items: []*dto.ProcessedStanding{
			{Position: 1, DriverName: "Max Verstappen", DriverCode: "VER", Team: "Red Bull", Points: 310.5, Wins: 9},
			{Position: 2, DriverName: "Lando Norris", DriverCode: "NOR", Team: "McLaren", Points: 280, Wins: 6},
			{Position: 3, DriverName: "Charles Leclerc", DriverCode: "LEC", Team: "Ferrari", Points: 245, Wins: 3},
		},
	}
}

func TestHandler_RawData(t *testing.T) {
	t.Run("Success - raw drivers passthrough", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("RawDrivers", mock.Anything).Return(&entities.F1Data{
			DataType: entities.F1DataTypeDrivers,
			Season:   "2025",
			Items:    []json.RawMessage{json.RawMessage(`{"driverId":"max_verstappen"}`)},
		}, nil).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/data/drivers", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "drivers", payload["data_type"])
		assert.Equal(t, "2025", payload["season"])
		service.AssertExpectations(t)
	})

	t.Run("Success - standings season from query", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("RawStandings", mock.Anything, "2024").Return(&entities.F1Data{
			DataType: entities.F1DataTypeStandings,
			Season:   "2024",
			Items:    []json.RawMessage{},
		}, nil).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/data/standings?season=2024", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		service.AssertExpectations(t)
	})

	t.Run("Success - standings season defaults to current", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("RawStandings", mock.Anything, "current").Return(&entities.F1Data{
			DataType: entities.F1DataTypeStandings,
			Season:   "2025",
			Items:    []json.RawMessage{},
		}, nil).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/data/standings", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		service.AssertExpectations(t)
	})

	t.Run("Error - upstream failure gives 500 with message", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("RawRaces", mock.Anything).Return(nil, entities.ErrUpstream).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/data/races", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Contains(t, payload["error"], "Error fetching races data")
		service.AssertExpectations(t)
	})
}

func TestHandler_ProcessedData(t *testing.T) {
	t.Run("Success - processed standings as JSON", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("ProcessedStandings", mock.Anything, "current").Return(standingsResponse(), nil).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/processed/standings", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "F1 2025 Season - Driver Standings", payload["title"])
		assert.Equal(t, float64(3), payload["total_items"])
		service.AssertExpectations(t)
	})

	t.Run("Error - processing failure gives 500 with message", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("ProcessedDrivers", mock.Anything).Return(nil, entities.ErrUpstream).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/processed/drivers", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Contains(t, payload["error"], "Error processing drivers data")
		service.AssertExpectations(t)
	})
}

func TestHandler_StandingsHTML(t *testing.T) {
	t.Run("Success - renders podium classes", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("ProcessedStandings", mock.Anything, "current").Return(standingsResponse(), nil).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/f1/html", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		html := string(body)

		assert.Contains(t, html, "Max Verstappen")
		assert.Contains(t, html, `class="gold"`)
		assert.Contains(t, html, `class="silver"`)
		assert.Contains(t, html, `class="bronze"`)
		assert.True(t, strings.Index(html, "Max Verstappen") < strings.Index(html, "Lando Norris"))
		service.AssertExpectations(t)
	})

	t.Run("Success - explicit season forwarded", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("ProcessedStandings", mock.Anything, "2024").Return(standingsResponse(), nil).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/f1/html?season=2024", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		service.AssertExpectations(t)
	})

	t.Run("Error - upstream failure gives 500", func(t *testing.T) {
		service := new(mockF1UseCase)
		service.On("ProcessedStandings", mock.Anything, "current").Return(nil, entities.ErrUpstream).Once()

		app := setupApp(service)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/external/f1/html", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		service.AssertExpectations(t)
	})
}
