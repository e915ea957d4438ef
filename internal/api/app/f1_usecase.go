package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"pitlane/internal/api/app/dto"
	"pitlane/internal/api/domain/entities"
	"pitlane/internal/api/ports/api"
	"pitlane/internal/api/ports/f1"
	"pitlane/pkg/logger"
)

const (
	methodRawDrivers         = "RawDrivers"
	methodRawRaces           = "RawRaces"
	methodRawStandings       = "RawStandings"
	methodProcessedDrivers   = "ProcessedDrivers"
	methodProcessedRaces     = "ProcessedRaces"
	methodProcessedStandings = "ProcessedStandings"

	msgFetchingF1Data = "fetching F1 data from upstream"
	msgF1DataFetched  = "F1 data fetched"

	msgErrFetchF1Data = "failed to fetch F1 data"

	errCtxFetchingDrivers   = "fetching drivers"
	errCtxFetchingRaces     = "fetching races"
	errCtxFetchingStandings = "fetching standings"
)

// Значение-заглушка для отсутствующих необязательных полей Ergast.
const notAvailable = "N/A"

// NoStandingsSummary - текст сводки при пустом списке чемпионата.
const NoStandingsSummary = "No standings data available."

// F1UseCaseImpl реализует интерфейс api.F1UseCase.
type F1UseCaseImpl struct {
	f1Client f1.Client
}

// NewF1UseCase создает новый экземпляр сервиса данных F1.
func NewF1UseCase(f1Client f1.Client) api.F1UseCase {
	return &F1UseCaseImpl{
		f1Client: f1Client,
	}
}

// RawDrivers возвращает сырой список пилотов текущего сезона.
func (u *F1UseCaseImpl) RawDrivers(ctx context.Context) (*entities.F1Data, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRawDrivers))
	log.Debug(ctx, msgFetchingF1Data)

	data, err := u.f1Client.CurrentSeasonDrivers(ctx)
	if err != nil {
		log.Error(ctx, msgErrFetchF1Data, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingDrivers, err)
	}

	log.Debug(ctx, msgF1DataFetched, zap.Int("items", len(data.Items)))
	return data, nil
}

// RawRaces возвращает сырой календарь гонок текущего сезона.
func (u *F1UseCaseImpl) RawRaces(ctx context.Context) (*entities.F1Data, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRawRaces))
	log.Debug(ctx, msgFetchingF1Data)

	data, err := u.f1Client.CurrentSeasonRaces(ctx)
	if err != nil {
		log.Error(ctx, msgErrFetchF1Data, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingRaces, err)
	}

	log.Debug(ctx, msgF1DataFetched, zap.Int("items", len(data.Items)))
	return data, nil
}

// RawStandings возвращает сырые данные чемпионата пилотов указанного сезона.
func (u *F1UseCaseImpl) RawStandings(ctx context.Context, season string) (*entities.F1Data, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRawStandings), zap.String("season", season))
	log.Debug(ctx, msgFetchingF1Data)

	data, err := u.f1Client.DriverStandings(ctx, season)
	if err != nil {
		log.Error(ctx, msgErrFetchF1Data, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingStandings, err)
	}

	log.Debug(ctx, msgF1DataFetched, zap.Int("items", len(data.Items)))
	return data, nil
}

// ProcessedDrivers возвращает нормализованный список пилотов.
func (u *F1UseCaseImpl) ProcessedDrivers(ctx context.Context) (*dto.F1ProcessedResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProcessedDrivers))

	data, err := u.f1Client.CurrentSeasonDrivers(ctx)
	if err != nil {
		log.Error(ctx, msgErrFetchF1Data, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingDrivers, err)
	}

	return ProcessDriversData(data), nil
}

// ProcessedRaces возвращает нормализованный календарь гонок.
func (u *F1UseCaseImpl) ProcessedRaces(ctx context.Context) (*dto.F1ProcessedResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProcessedRaces))

	data, err := u.f1Client.CurrentSeasonRaces(ctx)
	if err != nil {
		log.Error(ctx, msgErrFetchF1Data, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingRaces, err)
	}

	return ProcessRacesData(data), nil
}

// ProcessedStandings возвращает нормализованную таблицу чемпионата.
func (u *F1UseCaseImpl) ProcessedStandings(ctx context.Context, season string) (*dto.F1ProcessedResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProcessedStandings), zap.String("season", season))

	data, err := u.f1Client.DriverStandings(ctx, season)
	if err != nil {
		log.Error(ctx, msgErrFetchF1Data, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingStandings, err)
	}

	return ProcessStandingsData(data), nil
}

// ProcessDriversData превращает сырые записи о пилотах в плоскую форму.
func ProcessDriversData(data *entities.F1Data) *dto.F1ProcessedResponse {
	items := make([]*dto.ProcessedDriver, 0, len(data.Items))
	for _, raw := range data.Items {
		items = append(items, &dto.ProcessedDriver{
			FullName:     gjson.GetBytes(raw, "givenName").String() + " " + gjson.GetBytes(raw, "familyName").String(),
			Nationality:  gjson.GetBytes(raw, "nationality").String(),
			DriverNumber: stringOrDefault(gjson.GetBytes(raw, "permanentNumber")),
			Code:         stringOrDefault(gjson.GetBytes(raw, "code")),
			BirthDate:    gjson.GetBytes(raw, "dateOfBirth").String(),
			WikiURL:      gjson.GetBytes(raw, "url").String(),
		})
	}

	return &dto.F1ProcessedResponse{
		Title:       fmt.Sprintf("F1 %s Season - Drivers", data.Season),
		Description: "List of all drivers competing in the current Formula 1 season",
		Season:      data.Season,
		TotalItems:  len(items),
		Summary:     fmt.Sprintf("Current season has %d registered drivers from various nations.", len(items)),
		Items:       items,
	}
}

// ProcessRacesData превращает сырые записи календаря в плоскую форму.
func ProcessRacesData(data *entities.F1Data) *dto.F1ProcessedResponse {
	items := make([]*dto.ProcessedRace, 0, len(data.Items))
	for _, raw := range data.Items {
		location := gjson.GetBytes(raw, "Circuit.Location")
		items = append(items, &dto.ProcessedRace{
			Round:       gjson.GetBytes(raw, "round").String(),
			RaceName:    gjson.GetBytes(raw, "raceName").String(),
			CircuitName: gjson.GetBytes(raw, "Circuit.circuitName").String(),
			Location:    location.Get("locality").String() + ", " + location.Get("country").String(),
			Date:        gjson.GetBytes(raw, "date").String(),
			Time:        stringOr(gjson.GetBytes(raw, "time"), "TBA"),
			Coordinates: dto.Coordinates{
				Lat:  location.Get("lat").String(),
				Long: location.Get("long").String(),
			},
		})
	}

	return &dto.F1ProcessedResponse{
		Title:       fmt.Sprintf("F1 %s Season - Race Calendar", data.Season),
		Description: "Complete race schedule for the Formula 1 season",
		Season:      data.Season,
		TotalItems:  len(items),
		Summary:     fmt.Sprintf("The %s F1 season includes %d races across different countries.", data.Season, len(items)),
		Items:       items,
	}
}

// ProcessStandingsData превращает сырые строки чемпионата в плоскую форму,
// сортирует их по позиции и формирует сводку о лидере. Пустой список дает
// сводку об отсутствии данных, а не ошибку.
func ProcessStandingsData(data *entities.F1Data) *dto.F1ProcessedResponse {
	items := make([]*dto.ProcessedStanding, 0, len(data.Items))
	for _, raw := range data.Items {
		team := notAvailable
		if constructor := gjson.GetBytes(raw, "Constructors.0.name"); constructor.Exists() {
			team = constructor.String()
		}

		items = append(items, &dto.ProcessedStanding{
			Position:    int(gjson.GetBytes(raw, "position").Int()),
			DriverName:  gjson.GetBytes(raw, "Driver.givenName").String() + " " + gjson.GetBytes(raw, "Driver.familyName").String(),
			DriverCode:  stringOrDefault(gjson.GetBytes(raw, "Driver.code")),
			Nationality: gjson.GetBytes(raw, "Driver.nationality").String(),
			Team:        team,
			Points:      gjson.GetBytes(raw, "points").Float(),
			Wins:        int(gjson.GetBytes(raw, "wins").Int()),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})

	summary := NoStandingsSummary
	if len(items) > 0 {
		leader := items[0]
		summary = fmt.Sprintf("Championship leader: %s with %.1f points and %d wins.",
			leader.DriverName, leader.Points, leader.Wins)
	}

	return &dto.F1ProcessedResponse{
		Title:       fmt.Sprintf("F1 %s Season - Driver Standings", data.Season),
		Description: "Current driver championship standings",
		Season:      data.Season,
		TotalItems:  len(items),
		Summary:     summary,
		Items:       items,
	}
}

func stringOrDefault(result gjson.Result) string {
	return stringOr(result, notAvailable)
}

func stringOr(result gjson.Result, fallback string) string {
	if result.Exists() {
		return result.String()
	}
	return fallback
}
