// Package postgres содержит реализации репозиториев поверх Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"pitlane/internal/api/domain/entities"
	"pitlane/internal/api/ports/repositories"
	"pitlane/pkg/logger"
)

// Код нарушения уникального индекса Postgres.
const uniqueViolationCode = "23505"

// Имена уникальных ограничений таблицы users из миграции.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

const userColumns = "id, username, email, full_name, is_active, created_at, updated_at"

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create вставляет нового пользователя и возвращает сохраненную запись.
// Нарушение уникального индекса переводится в доменную ошибку дубликата.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username, email, full_name)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	var created entities.User
	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.FullName,
	).Scan(
		&created.ID,
		&created.Username,
		&created.Email,
		&created.FullName,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		if dupErr := translateUniqueViolation(err); dupErr != nil {
			log.Debug(ctx, "unique constraint violated on insert", zap.Error(err))
			return nil, dupErr
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &created, nil
}

// List возвращает пользователей от новых к старым с пагинацией.
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.FullName,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "error scanning user row", zap.Error(err))
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating user rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// GetByID находит пользователя по ID. Отсутствие записи не является ошибкой.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return r.getByField(ctx, "GetByID", "id", id)
}

// GetByUsername находит пользователя по username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.getByField(ctx, "GetByUsername", "username", username)
}

// GetByEmail находит пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getByField(ctx, "GetByEmail", "email", email)
}

func (r *UserRepository) getByField(ctx context.Context, method, field string, value any) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE ` + field + ` = $1`

	var user entities.User
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("field", field))
			return nil, nil
		}
		log.Error(ctx, "error querying user", zap.Error(err))
		return nil, fmt.Errorf("error querying user by %s: %w", field, err)
	}

	return &user, nil
}

// Update применяет только поля, присутствующие в patch. Пустой patch
// возвращает текущую запись без изменений. Отсутствие записи дает (nil, nil).
func (r *UserRepository) Update(ctx context.Context, id int64, patch *entities.UserPatch) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	if patch.IsEmpty() {
		log.Debug(ctx, "empty patch, returning current record", zap.Int64("id", id))
		return r.GetByID(ctx, id)
	}

	setClauses := make([]string, 0, 5)
	args := make([]any, 0, 6)
	args = append(args, id)

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Username != nil {
		addSet("username", *patch.Username)
	}
	if patch.Email != nil {
		addSet("email", *patch.Email)
	}
	if patch.FullName.Set {
		// nil Value записывает NULL.
		addSet("full_name", patch.FullName.Value)
	}
	if patch.IsActive != nil {
		addSet("is_active", *patch.IsActive)
	}
	setClauses = append(setClauses, "updated_at = now()")

	query := `
        UPDATE users
        SET ` + strings.Join(setClauses, ", ") + `
        WHERE id = $1
        RETURNING ` + userColumns

	var updated entities.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&updated.ID,
		&updated.Username,
		&updated.Email,
		&updated.FullName,
		&updated.IsActive,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.Int64("id", id))
			return nil, nil
		}
		if dupErr := translateUniqueViolation(err); dupErr != nil {
			log.Debug(ctx, "unique constraint violated on update", zap.Error(err))
			return nil, dupErr
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return &updated, nil
}

// Delete удаляет пользователя по ID и сообщает, была ли удалена запись.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return false, fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.Int64("id", id))
		return false, nil
	}

	return true, nil
}

// translateUniqueViolation переводит нарушение уникального индекса в доменную
// ошибку дубликата; для остальных ошибок возвращает nil.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}
	switch pgErr.ConstraintName {
	case usernameConstraint:
		return entities.ErrUsernameTaken
	case emailConstraint:
		return entities.ErrEmailTaken
	default:
		return fmt.Errorf("unique constraint %s violated: %w", pgErr.ConstraintName, err)
	}
}
