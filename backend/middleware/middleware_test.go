package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/database"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, app *fiber.App, header, value string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{"anonymous", nil, fiber.StatusUnauthorized},
		{"student", &models.User{Role: models.RoleStudent}, fiber.StatusForbidden},
		{"instructor", &models.User{Role: models.RoleInstructor}, fiber.StatusOK},
		{"admin", &models.User{Role: models.RoleAdmin}, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				if tt.user != nil {
					c.Locals(userKey, tt.user)
				}
				return c.Next()
			}, Authorize(models.RoleInstructor, models.RoleAdmin), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})
			assert.Equal(t, tt.want, get(t, app, "", "").StatusCode)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	cfg := &config.Config{JWTSecret: "secret"}

	user := models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Get("/", AuthMiddleware(db, cfg), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Email)
	})

	token, err := utils.GenerateJWTToken(user.ID, "secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, get(t, app, fiber.HeaderAuthorization, "Bearer "+token).StatusCode)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "", "").StatusCode)

	ghost, err := utils.GenerateJWTToken(user.ID+100, "secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, fiber.HeaderAuthorization, "Bearer "+ghost).StatusCode)
}

func TestRequestID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestID(), LoggingMiddleware(log.New(&buf, "", log.Lmsgprefix)))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	rec := get(t, app, fiber.HeaderXRequestID, "req-123")
	assert.Equal(t, "req-123", rec.Header.Get(fiber.HeaderXRequestID))
	assert.Contains(t, buf.String(), "req-123")
	assert.Contains(t, buf.String(), "204")
	assert.NotContains(t, buf.String(), "\033[")

	rec = get(t, app, "", "")
	assert.Len(t, rec.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(2, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	assert.Equal(t, fiber.StatusOK, get(t, app, "", "").StatusCode)
	assert.Equal(t, fiber.StatusOK, get(t, app, "", "").StatusCode)
	assert.Equal(t, fiber.StatusTooManyRequests, get(t, app, "", "").StatusCode)

	open := fiber.New()
	open.Use(RateLimiter(0, time.Minute))
	open.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, fiber.StatusOK, get(t, open, "", "").StatusCode)
	}
}

func TestRecovery(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Use(Recovery(false))
	app.Get("/", func(c *fiber.Ctx) error { panic("boom") })

	assert.Equal(t, fiber.StatusInternalServerError, get(t, app, "", "").StatusCode)
}
