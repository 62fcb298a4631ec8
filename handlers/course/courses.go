// Package course implements the /courses/ CRUD endpoints. Course
// listings combine the tenant visibility scope with an optional
// ?university= query filter; both apply, so a filter pointing outside
// the caller's tenant intersects down to an empty list.
package course

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campusbase/academic-records-api/handlers"
	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/policy"
	"github.com/campusbase/academic-records-api/serializer"
	"github.com/campusbase/academic-records-api/utils/middleware"
	"github.com/campusbase/academic-records-api/utils/response"
	"github.com/campusbase/academic-records-api/utils/validation"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Credits     int     `json:"credits" validate:"required,min=1,max=60"`
	Professor   *string `json:"professor"`
	Type        string  `json:"type" validate:"omitempty,oneof=mandatory optional"`
	Description *string `json:"description"`
	University  uint    `json:"university"`
}

// UpdateCourseRequest represents the request body for updating a course
type UpdateCourseRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Credits     *int    `json:"credits" validate:"omitempty,min=1,max=60"`
	Professor   *string `json:"professor"`
	Type        *string `json:"type" validate:"omitempty,oneof=mandatory optional"`
	Description *string `json:"description"`
	University  *uint   `json:"university"`
}

func (h *CourseHandler) scoped(id policy.Identity) *gorm.DB {
	query := h.db.Model(&model.Course{})
	if restrict := policy.VisibleCourses(id); restrict != nil {
		query = query.Where("university_id = ?", *restrict)
	}
	return query
}

// serialize loads the shared lookup data and renders one or more
// courses with university_name and enrolled_count attached.
func (h *CourseHandler) serialize(c *fiber.Ctx, courses []model.Course, single bool, created bool) error {
	names, err := handlers.UniversityNames(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}
	users, err := handlers.AllUsersForEnrollment(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	if single {
		out := serializer.Course(&courses[0], names[courses[0].UniversityID], users)
		if created {
			return response.Created(c, out)
		}
		return response.Success(c, out)
	}
	return response.Success(c, serializer.Courses(courses, names, users))
}

// ListCourses handles GET /courses/?university=<id>
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	query := h.scoped(policy.FromUser(requester))

	// A malformed university filter is ignored rather than rejected.
	if raw := c.Query("university"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			query = query.Where("university_id = ?", uint(id))
		}
	}

	var courses []model.Course
	if err := query.Order("name").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return h.serialize(c, courses, false, false)
}

// GetCourse handles GET /courses/:id/
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var course model.Course
	if err := h.scoped(policy.FromUser(requester)).
		Where("id = ?", c.Params("id")).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	return h.serialize(c, []model.Course{course}, true, false)
}

// CreateCourse handles POST /courses/
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}
	identity := policy.FromUser(requester)

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	// Tenant-scoped creators always get their own university; the
	// submitted value only matters for head admins.
	universityID := policy.CourseUniversityForCreate(identity, req.University)
	if universityID == 0 {
		return response.BadRequest(c, "university is required")
	}
	if err := h.ensureUniversityExists(universityID); err != nil {
		return response.BadRequest(c, err.Error())
	}

	course := model.Course{
		Name:         validation.SanitizeString(req.Name),
		Credits:      req.Credits,
		Professor:    req.Professor,
		Type:         model.CourseTypeMandatory,
		Description:  req.Description,
		UniversityID: universityID,
	}
	if req.Type != "" {
		course.Type = req.Type
	}

	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return h.serialize(c, []model.Course{course}, true, true)
}

// UpdateCourse handles PUT/PATCH /courses/:id/
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}
	identity := policy.FromUser(requester)

	var course model.Course
	if err := h.scoped(identity).
		Where("id = ?", c.Params("id")).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if !policy.CanAdministerUniversity(identity, course.UniversityID) {
		return response.Forbidden(c, "You do not have permission to perform this action")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	if req.Name != nil {
		course.Name = validation.SanitizeString(*req.Name)
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Professor != nil {
		course.Professor = req.Professor
	}
	if req.Type != nil {
		course.Type = *req.Type
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.University != nil {
		// Reassignment still cannot escape the caller's tenant.
		target := policy.CourseUniversityForCreate(identity, *req.University)
		if err := h.ensureUniversityExists(target); err != nil {
			return response.BadRequest(c, err.Error())
		}
		course.UniversityID = target
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return h.serialize(c, []model.Course{course}, true, false)
}

// DeleteCourse handles DELETE /courses/:id/
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}
	identity := policy.FromUser(requester)

	var course model.Course
	if err := h.scoped(identity).
		Where("id = ?", c.Params("id")).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if !policy.CanAdministerUniversity(identity, course.UniversityID) {
		return response.Forbidden(c, "You do not have permission to perform this action")
	}

	// Grade entries referencing this course are left in place; readers
	// skip dangling course references when deriving GPA.
	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.NoContent(c)
}

func (h *CourseHandler) ensureUniversityExists(id uint) error {
	var count int64
	if err := h.db.Model(&model.University{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.New("university does not exist")
	}
	return nil
}
