// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"pitlane/internal/api/adapters/http/cachehttp"
	"pitlane/internal/api/adapters/http/f1"
	"pitlane/internal/api/adapters/http/middleware"
	"pitlane/internal/api/adapters/http/system"
	"pitlane/internal/api/adapters/http/users"
	"pitlane/internal/api/ports/api"
	"pitlane/internal/api/ports/cache"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, userService api.UserUseCase, f1Service api.F1UseCase, cacheClient cache.Cache) {
	userHandler := users.NewHandler(userService)
	f1Handler := f1.NewHandler(f1Service)
	cacheHandler := cachehttp.NewHandler(cacheClient)
	systemHandler := system.NewHandler()

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Служебные маршруты.
	app.Get("/", systemHandler.Root)
	app.Get("/health", systemHandler.Health)

	// Маршруты пользователей.
	userRoutes := app.Group("/users")
	userRoutes.Post("/", userHandler.CreateUser)
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Get("/:user_id", userHandler.GetUser)
	userRoutes.Put("/:user_id", userHandler.UpdateUser)
	userRoutes.Delete("/:user_id", userHandler.DeleteUser)

	// Маршруты данных F1.
	externalRoutes := app.Group("/external")
	externalRoutes.Get("/data/drivers", f1Handler.RawDrivers)
	externalRoutes.Get("/data/races", f1Handler.RawRaces)
	externalRoutes.Get("/data/standings", f1Handler.RawStandings)
	externalRoutes.Get("/processed/drivers", f1Handler.ProcessedDrivers)
	externalRoutes.Get("/processed/races", f1Handler.ProcessedRaces)
	externalRoutes.Get("/processed/standings", f1Handler.ProcessedStandings)
	externalRoutes.Get("/f1/html", f1Handler.StandingsHTML)

	// Маршруты кэша.
	cacheRoutes := app.Group("/cache")
	cacheRoutes.Post("/set", cacheHandler.SetValue)
	cacheRoutes.Get("/get/:key", cacheHandler.GetValue)
	cacheRoutes.Delete("/delete/:key", cacheHandler.DeleteValue)
	cacheRoutes.Get("/keys", cacheHandler.Keys)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
