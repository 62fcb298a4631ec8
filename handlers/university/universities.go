// Package university implements the /universities/ CRUD endpoints.
// A university administers itself: tenant admins may only mutate the
// university object whose ID matches their own tenant.
package university

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/policy"
	"github.com/campusbase/academic-records-api/serializer"
	"github.com/campusbase/academic-records-api/utils/middleware"
	"github.com/campusbase/academic-records-api/utils/response"
	"github.com/campusbase/academic-records-api/utils/validation"
)

// UniversityHandler handles university-related requests
type UniversityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(db *gorm.DB) *UniversityHandler {
	return &UniversityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateUniversityRequest represents the request body for creating a
// university
type CreateUniversityRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Location       string  `json:"location" validate:"required,max=200"`
	FoundationYear int     `json:"foundation_year" validate:"required,min=800,max=2100"`
	Students       int     `json:"students" validate:"omitempty,min=0"`
	Website        *string `json:"website"`
	Description    *string `json:"description"`
}

// UpdateUniversityRequest represents the request body for updating a
// university. created_at and updated_at are absent on purpose: they
// are read-only.
type UpdateUniversityRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=200"`
	Location       *string `json:"location" validate:"omitempty,max=200"`
	FoundationYear *int    `json:"foundation_year" validate:"omitempty,min=800,max=2100"`
	Students       *int    `json:"students" validate:"omitempty,min=0"`
	Website        *string `json:"website"`
	Description    *string `json:"description"`
}

func (h *UniversityHandler) scoped(id policy.Identity) *gorm.DB {
	query := h.db.Model(&model.University{})
	if restrict := policy.VisibleUniversities(id); restrict != nil {
		query = query.Where("id = ?", *restrict)
	}
	return query
}

// ListUniversities handles GET /universities/
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var universities []model.University
	if err := h.scoped(policy.FromUser(requester)).Order("name").Find(&universities).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, universities)
}

// GetUniversity handles GET /universities/:id/
func (h *UniversityHandler) GetUniversity(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var university model.University
	if err := h.scoped(policy.FromUser(requester)).
		Where("id = ?", c.Params("id")).First(&university).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, university)
}

// CreateUniversity handles POST /universities/
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	// Only head admins may create universities: a tenant admin has no
	// university to administer other than their own existing one.
	if !policy.FromUser(requester).IsHeadAdmin() {
		return response.Forbidden(c, "You do not have permission to perform this action")
	}

	var req CreateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	university := model.University{
		Name:           validation.SanitizeString(req.Name),
		Location:       validation.SanitizeString(req.Location),
		FoundationYear: req.FoundationYear,
		Students:       req.Students,
		Website:        serializer.NormalizeWebsite(req.Website),
		Description:    req.Description,
	}

	if err := h.db.Create(&university).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, university)
}

// UpdateUniversity handles PUT/PATCH /universities/:id/
func (h *UniversityHandler) UpdateUniversity(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}
	identity := policy.FromUser(requester)

	var university model.University
	if err := h.scoped(identity).
		Where("id = ?", c.Params("id")).First(&university).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if !policy.CanAdministerUniversity(identity, university.ID) {
		return response.Forbidden(c, "You do not have permission to perform this action")
	}

	var req UpdateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	if req.Name != nil {
		university.Name = validation.SanitizeString(*req.Name)
	}
	if req.Location != nil {
		university.Location = validation.SanitizeString(*req.Location)
	}
	if req.FoundationYear != nil {
		university.FoundationYear = *req.FoundationYear
	}
	if req.Students != nil {
		university.Students = *req.Students
	}
	if req.Website != nil {
		university.Website = serializer.NormalizeWebsite(req.Website)
	}
	if req.Description != nil {
		university.Description = req.Description
	}

	if err := h.db.Save(&university).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, university)
}

// DeleteUniversity handles DELETE /universities/:id/
func (h *UniversityHandler) DeleteUniversity(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}
	identity := policy.FromUser(requester)

	var university model.University
	if err := h.scoped(identity).
		Where("id = ?", c.Params("id")).First(&university).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if !policy.CanAdministerUniversity(identity, university.ID) {
		return response.Forbidden(c, "You do not have permission to perform this action")
	}

	// Courses cascade at the database level; user references are
	// detached explicitly so stale tenant scopes cannot survive.
	if err := h.db.Model(&model.User{}).
		Where("university_id = ?", university.ID).
		Update("university_id", nil).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	if err := h.db.Delete(&university).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.NoContent(c)
}
