package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAppErrorStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NotFoundError("x"), fiber.StatusNotFound},
		{ForbiddenError("x"), fiber.StatusForbidden},
		{ConflictError("x"), fiber.StatusBadRequest},
		{InvalidInputError("x"), fiber.StatusBadRequest},
		{UnauthorizedError("x"), fiber.StatusUnauthorized},
		{InternalError("x", nil), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Status())
		})
	}
}

func TestAppErrorMatching(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("saving: %w", InternalError("Error saving", cause))

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, KindConflict, KindOf(ConflictError("taken")))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &AppError{Kind: KindInternal})
	assert.NotErrorIs(t, err, &AppError{Kind: KindNotFound})
	assert.EqualError(t, InternalError("Error saving", cause), "Error saving: disk full")
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: users.email")))
	assert.True(t, IsDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
}

func failWith(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return Fail(c, err, "Something broke") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestFail(t *testing.T) {
	status, body := failWith(t, ForbiddenError("Not yours"))
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Not yours", body.Message)
	assert.Empty(t, body.Error)

	invalid := InvalidInputError("email is required")
	invalid.Details = map[string]string{"email": "required"}
	status, body = failWith(t, invalid)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, map[string]interface{}{"email": "required"}, body.Details)

	status, body = failWith(t, InternalError("Error saving", errors.New("disk full")))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Error saving", body.Message)
	assert.Equal(t, "disk full", body.Error)

	status, body = failWith(t, fiber.ErrTooManyRequests)
	assert.Equal(t, fiber.StatusTooManyRequests, status)

	status, body = failWith(t, errors.New("boom"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Something broke", body.Message)
	assert.False(t, body.Success)
}
