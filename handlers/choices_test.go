package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleUserRoles(t *testing.T) {
	app := fiber.New()
	app.Get("/user-roles/", HandleUserRoles)

	resp, err := app.Test(httptest.NewRequest("GET", "/user-roles/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var choices map[string]string
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &choices))

	assert.Equal(t, map[string]string{
		"admin":   "Admin",
		"teacher": "Teacher",
		"student": "Student",
	}, choices)
}

// The choice listings are public. A request carrying no credentials
// at all must still get the mapping back.
func TestChoiceListingsAllowAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/user-roles/", HandleUserRoles)
	app.Get("/user-statuses/", HandleUserStatuses)

	for _, path := range []string{"/user-roles/", "/user-statuses/"} {
		req := httptest.NewRequest("GET", path, nil)
		// No Authorization header on purpose.
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestHandleUserStatuses(t *testing.T) {
	app := fiber.New()
	app.Get("/user-statuses/", HandleUserStatuses)

	resp, err := app.Test(httptest.NewRequest("GET", "/user-statuses/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var choices map[string]string
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &choices))

	assert.Equal(t, map[string]string{
		"active":    "Active",
		"inactive":  "Inactive",
		"suspended": "Suspended",
	}, choices)
}
