package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readError(t *testing.T, body io.Reader) string {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope["error"]
}

func TestErrorHandlerFiberError(t *testing.T) {
	server := NewAPIServer(":0")
	app := server.GetEngine()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Resource not found", readError(t, resp.Body))
}

func TestErrorHandlerPlainError(t *testing.T) {
	server := NewAPIServer(":0")
	app := server.GetEngine()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("unexpected failure")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "unexpected failure", readError(t, resp.Body))
}
