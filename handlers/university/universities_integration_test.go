package university_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbase/academic-records-api/database"
	university_handlers "github.com/campusbase/academic-records-api/handlers/university"
	"github.com/campusbase/academic-records-api/model"
)

// TestListUniversitiesOrderedByName inserts records in reverse
// alphabetical order and checks the listing comes back sorted by
// name, not by insertion id.
func TestListUniversitiesOrderedByName(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	store, err := database.StartGORM()
	require.NoError(t, err, "database must be reachable for integration tests")
	require.NoError(t, store.Init())
	defer store.Close()
	db := store.DB()

	suffix := time.Now().UnixNano()
	later := model.University{
		Name:           fmt.Sprintf("Zz Ordering Probe %d", suffix),
		Location:       "Nowhere",
		FoundationYear: 1900,
	}
	earlier := model.University{
		Name:           fmt.Sprintf("Aa Ordering Probe %d", suffix),
		Location:       "Nowhere",
		FoundationYear: 1900,
	}
	require.NoError(t, db.Create(&later).Error)
	require.NoError(t, db.Create(&earlier).Error)
	defer db.Delete(&later)
	defer db.Delete(&earlier)

	handler := university_handlers.NewUniversityHandler(db)
	app := fiber.New()
	// Stand in for the auth middleware with a head admin identity.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &model.User{ID: 1, Role: model.RoleAdmin})
		return c.Next()
	})
	app.Get("/universities/", handler.ListUniversities)

	resp, err := app.Test(httptest.NewRequest("GET", "/universities/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var listed []model.University
	require.NoError(t, json.Unmarshal(raw, &listed))

	posEarlier, posLater := -1, -1
	for i, u := range listed {
		switch u.ID {
		case earlier.ID:
			posEarlier = i
		case later.ID:
			posLater = i
		}
	}
	require.NotEqual(t, -1, posEarlier)
	require.NotEqual(t, -1, posLater)
	assert.Less(t, posEarlier, posLater, "expected name order, not insertion order")
}
