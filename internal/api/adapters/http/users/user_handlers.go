// Package users содержит HTTP-обработчики для управления пользователями.
package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"pitlane/internal/api/adapters/http/middleware"
	"pitlane/internal/api/app/dto"
	"pitlane/internal/api/domain/entities"
	"pitlane/internal/api/ports/api"
	"pitlane/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateUser = "handling create user request"
	LogHandlerListUsers  = "handling list users request"
	LogHandlerGetUser    = "handling get user request"
	LogHandlerUpdateUser = "handling update user request"
	LogHandlerDeleteUser = "handling delete user request"

	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInternal           = "Internal server error"
)

// Handler обработчик HTTP-запросов для работы с пользователями.
type Handler struct {
	userService api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(userService api.UserUseCase) *Handler {
	return &Handler{
		userService: userService,
	}
}

// CreateUser обрабатывает запрос на создание нового пользователя.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, LogHandlerCreateUser)

	var req dto.CreateUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	user, err := h.userService.CreateUser(requestCtx, &req)
	if err != nil {
		log.Error(requestCtx, "failed to create user", zap.Error(err))
		switch {
		case errors.Is(err, entities.ErrUsernameTaken):
			return sendError(ctx, fiber.StatusBadRequest, fmt.Sprintf("Username '%s' already exists", req.Username))
		case errors.Is(err, entities.ErrEmailTaken):
			return sendError(ctx, fiber.StatusBadRequest, fmt.Sprintf("Email '%s' already registered", req.Email))
		default:
			return handleValidationError(ctx, err)
		}
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListUsers обрабатывает запрос на получение списка пользователей с пагинацией.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(requestCtx, LogHandlerListUsers)

	skip, err := strconv.Atoi(ctx.Query("skip", "0"))
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidPagination, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
	}

	limit, err := strconv.Atoi(ctx.Query("limit", "100"))
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidPagination, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
	}

	usersList, err := h.userService.ListUsers(requestCtx, skip, limit)
	if err != nil {
		log.Error(requestCtx, "failed to list users", zap.Error(err))
		if errors.Is(err, entities.ErrInvalidPaging) {
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
		}
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}

	if err := ctx.JSON(dto.NewUserListResponse(usersList)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetUser обрабатывает запрос на получение пользователя по ID.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(requestCtx, LogHandlerGetUser)

	userID, err := parseUserID(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidUserID, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	user, err := h.userService.GetUser(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, "failed to get user", zap.Error(err))
		if errors.Is(err, entities.ErrUserNotFound) {
			return sendError(ctx, fiber.StatusNotFound, fmt.Sprintf("User with id %d not found", userID))
		}
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}

	if err := ctx.JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateUser обрабатывает запрос на частичное обновление пользователя.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateUser"))
	log.Debug(requestCtx, LogHandlerUpdateUser)

	userID, err := parseUserID(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidUserID, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	var req dto.UpdateUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	user, err := h.userService.UpdateUser(requestCtx, userID, req.ToPatch())
	if err != nil {
		log.Error(requestCtx, "failed to update user", zap.Error(err))
		switch {
		case errors.Is(err, entities.ErrUserNotFound):
			return sendError(ctx, fiber.StatusNotFound, fmt.Sprintf("User with id %d not found", userID))
		case errors.Is(err, entities.ErrUsernameTaken):
			return sendError(ctx, fiber.StatusBadRequest, fmt.Sprintf("Username '%s' already exists", derefOrEmpty(req.Username)))
		case errors.Is(err, entities.ErrEmailTaken):
			return sendError(ctx, fiber.StatusBadRequest, fmt.Sprintf("Email '%s' already registered", derefOrEmpty(req.Email)))
		default:
			return handleValidationError(ctx, err)
		}
	}

	if err := ctx.JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteUser обрабатывает запрос на удаление пользователя.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteUser"))
	log.Debug(requestCtx, LogHandlerDeleteUser)

	userID, err := parseUserID(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidUserID, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	if err := h.userService.DeleteUser(requestCtx, userID); err != nil {
		log.Error(requestCtx, "failed to delete user", zap.Error(err))
		if errors.Is(err, entities.ErrUserNotFound) {
			return sendError(ctx, fiber.StatusNotFound, fmt.Sprintf("User with id %d not found", userID))
		}
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}

	if err := ctx.JSON(&dto.MessageResponse{Message: fmt.Sprintf("User %d deleted successfully", userID)}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func parseUserID(ctx fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("user_id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing user id: %w", err)
	}
	return id, nil
}

// handleValidationError отвечает 400 для ошибок валидации входных данных
// и 500 для всего остального.
func handleValidationError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrInvalidUsername),
		errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrFullNameTooLong):
		return sendError(ctx, fiber.StatusBadRequest, errors.Unwrap(err).Error())
	default:
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
