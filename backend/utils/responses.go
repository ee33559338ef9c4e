package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponse is the envelope for failures
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success writes a successful JSON response
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// OK writes a 200 response
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return Success(c, fiber.StatusOK, message, data)
}

// Created writes a 201 response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return Success(c, fiber.StatusCreated, message, data)
}

// Paginate writes a list response with pagination metadata
func Paginate(c *fiber.Ctx, data interface{}, p Pagination) error {
	return c.JSON(SuccessResponse{
		Success:    true,
		Data:       data,
		Pagination: &p,
	})
}

// Error writes a failure; err, when given, is attached for diagnosis
func Error(c *fiber.Ctx, status int, message string, err error) error {
	response := ErrorResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	return c.Status(status).JSON(response)
}

// Fail translates any error into a status and envelope. fallback is the
// message used for unclassified errors.
func Fail(c *fiber.Ctx, err error, fallback string) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal {
			return Error(c, appErr.Status(), appErr.Message, appErr.Err)
		}
		response := ErrorResponse{Success: false, Message: appErr.Message}
		if len(appErr.Details) > 0 {
			response.Details = appErr.Details
		}
		return c.Status(appErr.Status()).JSON(response)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Error(c, fiberErr.Code, fiberErr.Message, nil)
	}
	return Error(c, fiber.StatusInternalServerError, fallback, err)
}

// ErrorHandler renders framework errors (unknown routes, recovered panics) in the envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := http.StatusText(code)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	if code == fiber.StatusNotFound {
		message = "Route not found"
	}
	return Error(c, code, message, nil)
}
