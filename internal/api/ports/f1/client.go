// Package f1 определяет интерфейс клиента внешнего поставщика статистики.
package f1

import (
	"context"

	"pitlane/internal/api/domain/entities"
)

// Client определяет интерфейс для получения сырых данных от Ergast F1 API.
type Client interface {
	CurrentSeasonDrivers(ctx context.Context) (*entities.F1Data, error)

	CurrentSeasonRaces(ctx context.Context) (*entities.F1Data, error)

	DriverStandings(ctx context.Context, season string) (*entities.F1Data, error)
}
