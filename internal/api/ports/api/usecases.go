// Package api определяет интерфейсы бизнес-логики, используемые HTTP слоем.
package api

import (
	"context"

	"pitlane/internal/api/app/dto"
	"pitlane/internal/api/domain/entities"
)

// UserUseCase определяет операции жизненного цикла пользователя.
type UserUseCase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*entities.User, error)

	ListUsers(ctx context.Context, skip, limit int) ([]*entities.User, error)

	GetUser(ctx context.Context, id int64) (*entities.User, error)

	UpdateUser(ctx context.Context, id int64, patch *entities.UserPatch) (*entities.User, error)

	DeleteUser(ctx context.Context, id int64) error
}

// F1UseCase определяет операции получения и нормализации данных Ergast.
type F1UseCase interface {
	RawDrivers(ctx context.Context) (*entities.F1Data, error)

	RawRaces(ctx context.Context) (*entities.F1Data, error)

	RawStandings(ctx context.Context, season string) (*entities.F1Data, error)

	ProcessedDrivers(ctx context.Context) (*dto.F1ProcessedResponse, error)

	ProcessedRaces(ctx context.Context) (*dto.F1ProcessedResponse, error)

	ProcessedStandings(ctx context.Context, season string) (*dto.F1ProcessedResponse, error)
}
