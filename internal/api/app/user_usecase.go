// Package app реализует бизнес-логику API сервиса.
package app

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"pitlane/internal/api/app/dto"
	"pitlane/internal/api/domain/entities"
	"pitlane/internal/api/ports/api"
	"pitlane/internal/api/ports/repositories"
	"pitlane/pkg/logger"
)

const (
	methodCreateUser = "CreateUser"
	methodListUsers  = "ListUsers"
	methodGetUser    = "GetUser"
	methodUpdateUser = "UpdateUser"
	methodDeleteUser = "DeleteUser"

	msgCreatingUser   = "creating new user"
	msgUserCreated    = "user created successfully"
	msgListingUsers   = "listing users"
	msgUserFound      = "user retrieved"
	msgUpdatingUser   = "updating user"
	msgUserUpdated    = "user updated successfully"
	msgDeletingUser   = "deleting user"
	msgUserDeleted    = "user deleted successfully"
	msgUsernameExists = "username already taken"
	msgEmailExists    = "email already registered"
	msgUserNotFound   = "user not found"

	msgErrCheckUsername = "failed to check username uniqueness"
	msgErrCheckEmail    = "failed to check email uniqueness"
	msgErrCreateUser    = "failed to create user"
	msgErrListUsers     = "failed to list users"
	msgErrGetUser       = "failed to get user"
	msgErrUpdateUser    = "failed to update user"
	msgErrDeleteUser    = "failed to delete user"

	errCtxValidatingInput  = "validating input"
	errCtxCheckingUsername = "checking username uniqueness"
	errCtxCheckingEmail    = "checking email uniqueness"
	errCtxCreatingUser     = "creating user"
	errCtxListingUsers     = "listing users"
	errCtxFetchingUser     = "fetching user"
	errCtxUpdatingUser     = "updating user"
	errCtxDeletingUser     = "deleting user"
)

// DefaultListLimit - размер страницы списка пользователей по умолчанию.
const DefaultListLimit = 100

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserUseCaseImpl реализует интерфейс api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр сервиса пользователей.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
	}
}

// CreateUser создает пользователя после проверки уникальности username и email.
// Проверки выполняются до вставки; гонку двух одновременных создании
// закрывает уникальный индекс, нарушение которого репозиторий переводит
// в ту же доменную ошибку.
func (u *UserUseCaseImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("username", req.Username))
	log.Debug(ctx, msgCreatingUser)

	if err := validateUsername(req.Username); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}
	if err := validateFullName(req.FullName); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	existing, err := u.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		log.Error(ctx, msgErrCheckUsername, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUsername, err)
	}
	if existing != nil {
		log.Debug(ctx, msgUsernameExists)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUsername, entities.ErrUsernameTaken)
	}

	existing, err = u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error(ctx, msgErrCheckEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}
	if existing != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, entities.ErrEmailTaken)
	}

	user := &entities.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		IsActive: true,
	}

	created, err := u.userRepo.Create(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("id", created.ID))
	return created, nil
}

// ListUsers возвращает страницу пользователей, отсортированных от новых к старым.
func (u *UserUseCaseImpl) ListUsers(ctx context.Context, skip, limit int) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListUsers), zap.Int("skip", skip), zap.Int("limit", limit))
	log.Debug(ctx, msgListingUsers)

	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, entities.ErrInvalidPaging)
	}
	if limit == 0 {
		limit = DefaultListLimit
	}

	users, err := u.userRepo.List(ctx, skip, limit)
	if err != nil {
		log.Error(ctx, msgErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	return users, nil
}

// GetUser возвращает пользователя по идентификатору.
func (u *UserUseCaseImpl) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUser), zap.Int64("id", id))

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrGetUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	if user == nil {
		log.Debug(ctx, msgUserNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, entities.ErrUserNotFound)
	}

	log.Debug(ctx, msgUserFound)
	return user, nil
}

// UpdateUser применяет частичное обновление. Проверка уникальности выполняется
// только для присутствующих полей, значение которых отличается от текущего,
// поэтому обновление username на собственное текущее значение не конфликтует.
func (u *UserUseCaseImpl) UpdateUser(ctx context.Context, id int64, patch *entities.UserPatch) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.Int64("id", id))
	log.Debug(ctx, msgUpdatingUser)

	existing, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrGetUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	if existing == nil {
		log.Debug(ctx, msgUserNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, entities.ErrUserNotFound)
	}

	if patch.Username != nil {
		if err := validateUsername(*patch.Username); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
		}
		if *patch.Username != existing.Username {
			taken, err := u.userRepo.GetByUsername(ctx, *patch.Username)
			if err != nil {
				log.Error(ctx, msgErrCheckUsername, zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errCtxCheckingUsername, err)
			}
			if taken != nil {
				log.Debug(ctx, msgUsernameExists)
				return nil, fmt.Errorf("%s: %w", errCtxCheckingUsername, entities.ErrUsernameTaken)
			}
		}
	}

	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
		}
		if *patch.Email != existing.Email {
			taken, err := u.userRepo.GetByEmail(ctx, *patch.Email)
			if err != nil {
				log.Error(ctx, msgErrCheckEmail, zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
			}
			if taken != nil {
				log.Debug(ctx, msgEmailExists)
				return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, entities.ErrEmailTaken)
			}
		}
	}

	if err := validateFullName(patch.FullName.Value); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	updated, err := u.userRepo.Update(ctx, id, patch)
	if err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}
	if updated == nil {
		log.Debug(ctx, msgUserNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, entities.ErrUserNotFound)
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// DeleteUser удаляет пользователя. Повторное удаление того же идентификатора
// завершается ErrUserNotFound.
func (u *UserUseCaseImpl) DeleteUser(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int64("id", id))
	log.Debug(ctx, msgDeletingUser)

	deleted, err := u.userRepo.Delete(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}
	if !deleted {
		log.Debug(ctx, msgUserNotFound)
		return fmt.Errorf("%s: %w", errCtxDeletingUser, entities.ErrUserNotFound)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

func validateUsername(username string) error {
	if len(username) < entities.MinUsernameLength || len(username) > entities.MaxUsernameLength {
		return entities.ErrInvalidUsername
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRegexp.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}

func validateFullName(fullName *string) error {
	if fullName != nil && len(*fullName) > entities.MaxFullNameLength {
		return entities.ErrFullNameTooLong
	}
	return nil
}
