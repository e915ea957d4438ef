// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"pitlane/pkg/logger"
)

// RequestContextKey - ключ Locals с контекстом запроса.
const RequestContextKey = "requestContext"

// HeaderRequestID - заголовок с внешним идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware создает промежуточное ПО, помещающее в контекст
// запроса идентификатор из заголовка или сгенерированный.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Locals(RequestContextKey, requestCtx)
		return ctx.Next()
	}
}
