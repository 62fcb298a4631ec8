// Package response centralizes the wire-level response contract:
// successful responses are the bare object or array, error responses
// are an {"error": "<message>"} envelope with an appropriate status
// code.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success returns 200 with the payload as-is.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created returns 201 with the payload as-is.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent returns a 204 No Content response.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error returns an error envelope with the given status code.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// BadRequest returns a 400 Bad Request error envelope.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized returns a 401 Unauthorized error envelope.
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Not authenticated"
	}
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden returns a 403 Forbidden error envelope.
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Access forbidden"
	}
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound returns a 404 Not Found error envelope.
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message)
}

// TooManyRequests returns a 429 Too Many Requests error envelope.
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message)
}

// InternalServerError returns a 500 Internal Server Error envelope.
// Handlers route unexpected failures here so a request never crashes
// the process without a structured error.
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message)
}
