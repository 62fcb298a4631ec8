package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/utils/response"
)

// HandleUserRoles serves GET /user-roles/: the static role code to
// label mapping.
func HandleUserRoles(c *fiber.Ctx) error {
	return response.Success(c, model.RoleChoices)
}

// HandleUserStatuses serves GET /user-statuses/: the static status
// code to label mapping.
func HandleUserStatuses(c *fiber.Ctx) error {
	return response.Success(c, model.StatusChoices)
}
