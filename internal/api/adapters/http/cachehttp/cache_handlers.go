// Package cachehttp содержит HTTP-обработчики для работы с кэшем Redis.
package cachehttp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"pitlane/internal/api/adapters/http/middleware"
	"pitlane/internal/api/app/dto"
	"pitlane/internal/api/ports/cache"
	"pitlane/pkg/logger"
)

// Ограничения на параметры операций кэша.
const (
	MinKeyLength = 1
	MaxKeyLength = 256
)

// Константы ошибок и сообщений.
const (
	LogHandlerSetValue    = "handling cache set request"
	LogHandlerGetValue    = "handling cache get request"
	LogHandlerDeleteValue = "handling cache delete request"
	LogHandlerKeys        = "handling cache keys request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidKey         = "Key must be between 1 and 256 characters"
	ErrMsgEmptyValue         = "Value must not be empty"
	ErrMsgInvalidTTL         = "TTL must be a positive number of seconds"
	ErrMsgCacheUnavailable   = "Cache is not available"

	MsgSetWithTTL    = "Value set with TTL of %d seconds"
	MsgSetWithoutTTL = "Value set without expiration"
)

// Handler обработчик HTTP-запросов кэша.
type Handler struct {
	cache cache.Cache
}

// NewHandler создает новый экземпляр обработчика кэша.
func NewHandler(c cache.Cache) *Handler {
	return &Handler{
		cache: c,
	}
}

// SetValue обрабатывает запрос на запись значения в кэш.
func (h *Handler) SetValue(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SetValue"))
	log.Debug(requestCtx, LogHandlerSetValue)

	var req dto.CacheSetRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	if len(req.Key) < MinKeyLength || len(req.Key) > MaxKeyLength {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidKey)
	}
	if req.Value == "" {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgEmptyValue)
	}

	var ttl time.Duration
	if req.TTL != nil {
		if *req.TTL < 1 {
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidTTL)
		}
		ttl = time.Duration(*req.TTL) * time.Second
	}

	if err := h.cache.Set(requestCtx, req.Key, req.Value, ttl); err != nil {
		log.Error(requestCtx, "failed to set cache value", zap.Error(err), zap.String("key", req.Key))
		return handleCacheError(ctx, err)
	}

	message := MsgSetWithoutTTL
	if req.TTL != nil {
		message = fmt.Sprintf(MsgSetWithTTL, *req.TTL)
	}

	resp := &dto.CacheSetResponse{
		Success: true,
		Key:     req.Key,
		Message: message,
		TTL:     req.TTL,
	}
	if err := ctx.Status(fiber.StatusCreated).JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetValue обрабатывает запрос на чтение значения из кэша.
func (h *Handler) GetValue(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetValue"))
	log.Debug(requestCtx, LogHandlerGetValue)

	key := ctx.Params("key")

	value, exists, err := h.cache.Get(requestCtx, key)
	if err != nil {
		log.Error(requestCtx, "failed to get cache value", zap.Error(err), zap.String("key", key))
		return handleCacheError(ctx, err)
	}

	resp := &dto.CacheGetResponse{
		Key:    key,
		Exists: exists,
	}
	if exists {
		resp.Value = &value
	}

	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteValue обрабатывает запрос на удаление ключа из кэша.
func (h *Handler) DeleteValue(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteValue"))
	log.Debug(requestCtx, LogHandlerDeleteValue)

	key := ctx.Params("key")

	deleted, err := h.cache.Delete(requestCtx, key)
	if err != nil {
		log.Error(requestCtx, "failed to delete cache value", zap.Error(err), zap.String("key", key))
		return handleCacheError(ctx, err)
	}

	if !deleted {
		return sendError(ctx, fiber.StatusNotFound, fmt.Sprintf("Key '%s' not found in cache", key))
	}

	resp := &dto.CacheDeleteResponse{
		Success: true,
		Key:     key,
		Message: "Key deleted successfully",
	}
	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Keys обрабатывает запрос на перечисление ключей кэша по шаблону.
func (h *Handler) Keys(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Keys"))
	log.Debug(requestCtx, LogHandlerKeys)

	pattern := ctx.Query("pattern", "*")

	keys, err := h.cache.Keys(requestCtx, pattern)
	if err != nil {
		log.Error(requestCtx, "failed to list cache keys", zap.Error(err), zap.String("pattern", pattern))
		return handleCacheError(ctx, err)
	}

	if keys == nil {
		keys = []string{}
	}

	resp := &dto.CacheKeysResponse{
		Pattern: pattern,
		Count:   len(keys),
		Keys:    keys,
	}
	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleCacheError отвечает 500 с понятным сообщением, когда кэш недоступен.
func handleCacheError(ctx fiber.Ctx, err error) error {
	if errors.Is(err, cache.ErrNotInitialized) {
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgCacheUnavailable)
	}
	return sendError(ctx, fiber.StatusInternalServerError, fmt.Sprintf("Cache error: %s", err))
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}
