// Package system содержит служебные HTTP-обработчики.
package system

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// Метаданные сервиса.
const (
	ServiceName    = "F1 Data API"
	ServiceVersion = "2.0.0"
)

// Handler обработчик служебных HTTP-запросов.
type Handler struct{}

// NewHandler создает новый экземпляр служебного обработчика.
func NewHandler() *Handler {
	return &Handler{}
}

// Root возвращает описание сервиса и карту его эндпоинтов.
func (h *Handler) Root(ctx fiber.Ctx) error {
	if err := ctx.JSON(fiber.Map{
		"message":     "Welcome to F1 Data API",
		"version":     ServiceVersion,
		"description": "Integration with Ergast F1 API, PostgreSQL and Redis",
		"endpoints": fiber.Map{
			"f1_raw_data": fiber.Map{
				"drivers":   "/external/data/drivers",
				"races":     "/external/data/races",
				"standings": "/external/data/standings?season=current",
			},
			"f1_processed_data": fiber.Map{
				"drivers":   "/external/processed/drivers",
				"races":     "/external/processed/races",
				"standings": "/external/processed/standings?season=current",
			},
			"f1_html_view": "/external/f1/html?season=current",
			"users_crud": fiber.Map{
				"create":    "POST /users/",
				"get_all":   "GET /users/",
				"get_by_id": "GET /users/{user_id}",
				"update":    "PUT /users/{user_id}",
				"delete":    "DELETE /users/{user_id}",
			},
			"cache": fiber.Map{
				"set":    "POST /cache/set",
				"get":    "GET /cache/get/{key}",
				"delete": "DELETE /cache/delete/{key}",
				"keys":   "GET /cache/keys?pattern=*",
			},
			"health": "/health",
		},
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Health возвращает статус работоспособности сервиса.
func (h *Handler) Health(ctx fiber.Ctx) error {
	if err := ctx.JSON(fiber.Map{
		"status":  "healthy",
		"service": ServiceName,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
