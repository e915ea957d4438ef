// Package f1 содержит HTTP-обработчики данных Ergast F1 API.
package f1

import (
	"bytes"
	"context"
	"fmt"

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
	LogHandlerRawData   = "handling raw F1 data request"
	LogHandlerProcessed = "handling processed F1 data request"
	LogHandlerHTML      = "handling F1 HTML view request"

	ErrMsgRenderHTML = "failed to render standings page"
)

// Handler обработчик HTTP-запросов данных F1.
type Handler struct {
	f1Service api.F1UseCase
}

// NewHandler создает новый экземпляр обработчика данных F1.
func NewHandler(f1Service api.F1UseCase) *Handler {
	return &Handler{
		f1Service: f1Service,
	}
}

// RawDrivers возвращает сырой список пилотов текущего сезона.
func (h *Handler) RawDrivers(ctx fiber.Ctx) error {
	return h.raw(ctx, "drivers", func(requestCtx context.Context) (*entities.F1Data, error) {
		return h.f1Service.RawDrivers(requestCtx)
	})
}

// RawRaces возвращает сырой календарь гонок текущего сезона.
func (h *Handler) RawRaces(ctx fiber.Ctx) error {
	return h.raw(ctx, "races", func(requestCtx context.Context) (*entities.F1Data, error) {
		return h.f1Service.RawRaces(requestCtx)
	})
}

// RawStandings возвращает сырые данные чемпионата запрошенного сезона.
func (h *Handler) RawStandings(ctx fiber.Ctx) error {
	season := ctx.Query("season", entities.DefaultSeason)
	return h.raw(ctx, "standings", func(requestCtx context.Context) (*entities.F1Data, error) {
		return h.f1Service.RawStandings(requestCtx, season)
	})
}

func (h *Handler) raw(ctx fiber.Ctx, kind string, fetch func(context.Context) (*entities.F1Data, error)) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Raw"), zap.String("kind", kind))
	log.Debug(requestCtx, LogHandlerRawData)

	data, err := fetch(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to fetch raw F1 data", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, fmt.Sprintf("Error fetching %s data: %s", kind, err))
	}

	if err := ctx.JSON(dto.NewF1DataResponse(data)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ProcessedDrivers возвращает нормализованный список пилотов.
func (h *Handler) ProcessedDrivers(ctx fiber.Ctx) error {
	return h.processed(ctx, "drivers", func(requestCtx context.Context) (*dto.F1ProcessedResponse, error) {
		return h.f1Service.ProcessedDrivers(requestCtx)
	})
}

// ProcessedRaces возвращает нормализованный календарь гонок.
func (h *Handler) ProcessedRaces(ctx fiber.Ctx) error {
	return h.processed(ctx, "races", func(requestCtx context.Context) (*dto.F1ProcessedResponse, error) {
		return h.f1Service.ProcessedRaces(requestCtx)
	})
}

// ProcessedStandings возвращает нормализованную таблицу чемпионата.
func (h *Handler) ProcessedStandings(ctx fiber.Ctx) error {
	season := ctx.Query("season", entities.DefaultSeason)
	return h.processed(ctx, "standings", func(requestCtx context.Context) (*dto.F1ProcessedResponse, error) {
		return h.f1Service.ProcessedStandings(requestCtx, season)
	})
}

func (h *Handler) processed(ctx fiber.Ctx, kind string, fetch func(context.Context) (*dto.F1ProcessedResponse, error)) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Processed"), zap.String("kind", kind))
	log.Debug(requestCtx, LogHandlerProcessed)

	processed, err := fetch(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to process F1 data", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, fmt.Sprintf("Error processing %s data: %s", kind, err))
	}

	if err := ctx.JSON(processed); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// StandingsHTML возвращает HTML страницу с таблицей чемпионата.
func (h *Handler) StandingsHTML(ctx fiber.Ctx) error {
	requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		requestCtx = ctx.Context()
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.StandingsHTML"))
	log.Debug(requestCtx, LogHandlerHTML)

	season := ctx.Query("season", entities.DefaultSeason)

	processed, err := h.f1Service.ProcessedStandings(requestCtx, season)
	if err != nil {
		log.Error(requestCtx, "failed to process F1 data", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, fmt.Sprintf("Error processing standings data: %s", err))
	}

	var buf bytes.Buffer
	if err := standingsTemplate.Execute(&buf, newStandingsPage(processed)); err != nil {
		log.Error(requestCtx, ErrMsgRenderHTML, zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgRenderHTML)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if err := ctx.SendString(buf.String()); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}
