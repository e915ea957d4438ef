// Package repositories определяет интерфейсы хранилищ API сервиса.
package repositories

import (
	"context"

	"pitlane/internal/api/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователя.
// Методы поиска возвращают (nil, nil), если запись отсутствует.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	List(ctx context.Context, offset, limit int) ([]*entities.User, error)

	GetByID(ctx context.Context, id int64) (*entities.User, error)

	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	Update(ctx context.Context, id int64, patch *entities.UserPatch) (*entities.User, error)

	Delete(ctx context.Context, id int64) (bool, error)
}
