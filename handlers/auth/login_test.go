package auth_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbase/academic-records-api/database"
	auth_handlers "github.com/campusbase/academic-records-api/handlers/auth"
	"github.com/campusbase/academic-records-api/model"
	authutil "github.com/campusbase/academic-records-api/utils/auth"
)

func doLogin(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp.StatusCode, payload
}

// The missing-field checks run before any database access, so they
// are testable without one.
func TestLoginMissingFields(t *testing.T) {
	handler := auth_handlers.NewAuthHandler(nil, nil)
	app := fiber.New()
	app.Post("/login/", handler.Login)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: `{}`},
		{name: "missing password", body: `{"username": "alice"}`},
		{name: "missing username", body: `{"password": "secret"}`},
		{name: "malformed json", body: `{"username":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := doLogin(t, app, "/login/", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "Please provide both username and password", payload["error"])
		})
	}
}

func TestObtainAuthTokenMissingFields(t *testing.T) {
	handler := auth_handlers.NewAuthHandler(nil, nil)
	app := fiber.New()
	app.Post("/api-token-auth/", handler.ObtainAuthToken)

	status, payload := doLogin(t, app, "/api-token-auth/", `{"username": "alice"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Unable to log in with provided credentials", payload["error"])
}

// TestLoginErrorTaxonomy drives the full credential checks against a
// real database: bad password and disabled account each answer 401
// with their own message, valid credentials answer 200 with a token.
func TestLoginErrorTaxonomy(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	store, err := database.StartGORM()
	require.NoError(t, err, "database must be reachable for integration tests")
	require.NoError(t, store.Init())
	defer store.Close()
	db := store.DB()

	password := "correct-horse-battery"
	hash, err := authutil.HashPassword(password)
	require.NoError(t, err)

	suffix := time.Now().UnixNano()
	active := model.User{
		Name:         "Login Probe Active",
		Username:     fmt.Sprintf("login-active-%d", suffix),
		Email:        fmt.Sprintf("login-active-%d@example.com", suffix),
		PasswordHash: hash,
		Role:         model.RoleStudent,
		Status:       model.StatusActive,
		IsActive:     true,
	}
	disabled := model.User{
		Name:         "Login Probe Disabled",
		Username:     fmt.Sprintf("login-disabled-%d", suffix),
		Email:        fmt.Sprintf("login-disabled-%d@example.com", suffix),
		PasswordHash: hash,
		Role:         model.RoleStudent,
		Status:       model.StatusInactive,
		IsActive:     false,
	}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&disabled).Error)
	defer db.Delete(&active)
	defer db.Delete(&disabled)
	defer db.Where("user_id IN ?", []uint{active.ID, disabled.ID}).Delete(&model.AuthToken{})

	handler := auth_handlers.NewAuthHandler(db, nil)
	app := fiber.New()
	app.Post("/login/", handler.Login)

	t.Run("unknown username", func(t *testing.T) {
		status, payload := doLogin(t, app, "/login/",
			fmt.Sprintf(`{"username": "no-such-user-%d", "password": %q}`, suffix, password))
		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", payload["error"])
	})

	t.Run("wrong password", func(t *testing.T) {
		status, payload := doLogin(t, app, "/login/",
			fmt.Sprintf(`{"username": %q, "password": "not-the-password"}`, active.Username))
		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", payload["error"])
	})

	t.Run("disabled account", func(t *testing.T) {
		status, payload := doLogin(t, app, "/login/",
			fmt.Sprintf(`{"username": %q, "password": %q}`, disabled.Username, password))
		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Equal(t, "User is disabled", payload["error"])
	})

	t.Run("valid credentials", func(t *testing.T) {
		status, payload := doLogin(t, app, "/login/",
			fmt.Sprintf(`{"username": %q, "password": %q}`, active.Username, password))
		assert.Equal(t, fiber.StatusOK, status)
		token, _ := payload["token"].(string)
		assert.NotEmpty(t, token)
		assert.Equal(t, active.Username, payload["username"])
	})
}
