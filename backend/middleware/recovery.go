package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Recovery turns panics into errors for the app's ErrorHandler.
func Recovery(stackTrace bool) fiber.Handler {
	return recover.New(recover.Config{EnableStackTrace: stackTrace})
}
