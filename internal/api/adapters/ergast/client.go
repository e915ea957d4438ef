// Package ergast содержит HTTP клиент Ergast F1 API.
package ergast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"pitlane/internal/api/config"
	"pitlane/internal/api/domain/entities"
	"pitlane/internal/api/ports/f1"
	"pitlane/pkg/logger"
)

// Пути ресурсов Ergast относительно базового URL.
const (
	driversPath = "/current/drivers.json"
	racesPath   = "/current.json"
)

// Константы для сообщений об ошибках.
const (
	ErrBuildRequest    = "failed to build upstream request"
	ErrExecuteRequest  = "upstream request failed"
	ErrUnexpectedCode  = "upstream returned unexpected status"
	ErrReadBody        = "failed to read upstream response"
	ErrMissingEnvelope = "upstream response missing expected envelope"
)

// Client реализует интерфейс f1.Client поверх net/http.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый клиент Ergast с фиксированным таймаутом.
func NewClient(cfg *config.ErgastConfig) f1.Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// CurrentSeasonDrivers возвращает сырой список пилотов текущего сезона.
func (c *Client) CurrentSeasonDrivers(ctx context.Context) (*entities.F1Data, error) {
	body, err := c.fetch(ctx, driversPath)
	if err != nil {
		return nil, err
	}

	table := gjson.GetBytes(body, "MRData.DriverTable")
	if !table.Exists() {
		return nil, fmt.Errorf("%s: %w", ErrMissingEnvelope, entities.ErrUpstream)
	}

	return &entities.F1Data{
		DataType: entities.F1DataTypeDrivers,
		Season:   seasonOrCurrent(table.Get("season")),
		Items:    rawItems(table.Get("Drivers")),
	}, nil
}

// CurrentSeasonRaces возвращает сырой календарь гонок текущего сезона.
func (c *Client) CurrentSeasonRaces(ctx context.Context) (*entities.F1Data, error) {
	body, err := c.fetch(ctx, racesPath)
	if err != nil {
		return nil, err
	}

	table := gjson.GetBytes(body, "MRData.RaceTable")
	if !table.Exists() {
		return nil, fmt.Errorf("%s: %w", ErrMissingEnvelope, entities.ErrUpstream)
	}

	return &entities.F1Data{
		DataType: entities.F1DataTypeRaces,
		Season:   seasonOrCurrent(table.Get("season")),
		Items:    rawItems(table.Get("Races")),
	}, nil
}

// DriverStandings возвращает сырые строки чемпионата пилотов. Сезон берется
// из первого списка ответа, если он есть, иначе из запрошенного значения.
func (c *Client) DriverStandings(ctx context.Context, season string) (*entities.F1Data, error) {
	if season == "" {
		season = entities.DefaultSeason
	}

	body, err := c.fetch(ctx, "/"+season+"/driverStandings.json")
	if err != nil {
		return nil, err
	}

	lists := gjson.GetBytes(body, "MRData.StandingsTable.StandingsLists")
	if !lists.Exists() {
		return nil, fmt.Errorf("%s: %w", ErrMissingEnvelope, entities.ErrUpstream)
	}

	actualSeason := season
	var items []json.RawMessage
	if first := lists.Get("0"); first.Exists() {
		if s := first.Get("season"); s.Exists() {
			actualSeason = s.String()
		}
		items = rawItems(first.Get("DriverStandings"))
	} else {
		items = make([]json.RawMessage, 0)
	}

	return &entities.F1Data{
		DataType: entities.F1DataTypeStandings,
		Season:   actualSeason,
		Items:    items,
	}, nil
}

// fetch выполняет один блокирующий GET без повторов.
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("client", "ergast"), zap.String("path", path))

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error(ctx, ErrBuildRequest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrBuildRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error(ctx, ErrExecuteRequest, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", ErrExecuteRequest, entities.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error(ctx, ErrUnexpectedCode, zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%s %d: %w", ErrUnexpectedCode, resp.StatusCode, entities.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, ErrReadBody, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", ErrReadBody, entities.ErrUpstream, err)
	}

	return body, nil
}

func rawItems(list gjson.Result) []json.RawMessage {
	items := make([]json.RawMessage, 0)
	list.ForEach(func(_, value gjson.Result) bool {
		items = append(items, json.RawMessage(value.Raw))
		return true
	})
	return items
}

func seasonOrCurrent(season gjson.Result) string {
	if season.Exists() {
		return season.String()
	}
	return entities.DefaultSeason
}
