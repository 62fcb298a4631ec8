// Package user implements the /users/ CRUD endpoints. Listing and
// single-object lookups both resolve through the role/tenant
// visibility scope, so an out-of-scope user is indistinguishable from
// a missing one.
package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campusbase/academic-records-api/handlers"
	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/policy"
	"github.com/campusbase/academic-records-api/serializer"
	authutil "github.com/campusbase/academic-records-api/utils/auth"
	"github.com/campusbase/academic-records-api/utils/middleware"
	"github.com/campusbase/academic-records-api/utils/response"
	"github.com/campusbase/academic-records-api/utils/validation"
)

// UserHandler handles user-related requests
type UserHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name              string             `json:"name" validate:"required,max=100"`
	Username          string             `json:"username" validate:"required,max=50"`
	Email             string             `json:"email" validate:"required,email"`
	Password          string             `json:"password" validate:"omitempty,min=8"`
	Role              string             `json:"role" validate:"omitempty,oneof=admin teacher student"`
	Status            string             `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	IsActive          *bool              `json:"is_active"`
	University        *uint              `json:"university"`
	CoursesWithGrades []model.GradeEntry `json:"coursesWithGrades"`
}

// UpdateUserRequest represents the request body for updating a user.
// Pointer fields distinguish "absent" from "zero"; PUT and PATCH are
// both treated as partial updates.
type UpdateUserRequest struct {
	Name              *string             `json:"name" validate:"omitempty,max=100"`
	Username          *string             `json:"username" validate:"omitempty,max=50"`
	Email             *string             `json:"email" validate:"omitempty,email"`
	Password          *string             `json:"password"`
	Role              *string             `json:"role" validate:"omitempty,oneof=admin teacher student"`
	Status            *string             `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	IsActive          *bool               `json:"is_active"`
	University        *uint               `json:"university"`
	CoursesWithGrades *[]model.GradeEntry `json:"coursesWithGrades"`
}

// scoped returns the user query restricted to what the identity may
// see.
func (h *UserHandler) scoped(id policy.Identity) *gorm.DB {
	query := h.db.Model(&model.User{})
	scope := policy.VisibleUsers(id)
	if scope.UniversityID != nil {
		query = query.Where("university_id = ?", *scope.UniversityID)
	}
	return query
}

// ListUsers handles GET /users/
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var users []model.User
	if err := h.scoped(policy.FromUser(requester)).Order("id").Find(&users).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	credits, err := handlers.CourseCredits(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, serializer.Users(users, credits))
}

// GetUser handles GET /users/:id/
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var user model.User
	if err := h.scoped(policy.FromUser(requester)).
		Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	credits, err := handlers.CourseCredits(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, serializer.User(&user, credits))
}

// CreateUser handles POST /users/
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	if _, ok := middleware.GetUser(c); !ok {
		return response.Unauthorized(c, "")
	}

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	user := model.User{
		Name:     validation.SanitizeString(req.Name),
		Username: validation.SanitizeString(req.Username),
		Email:    authutil.NormalizeEmail(req.Email),
		Role:     model.RoleStudent,
		Status:   model.StatusActive,
		IsActive: true,
	}

	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if req.Password != "" {
		hash, err := authutil.HashPassword(req.Password)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		user.PasswordHash = hash
	}

	if req.University != nil {
		if err := h.ensureUniversityExists(*req.University); err != nil {
			return response.BadRequest(c, err.Error())
		}
		user.UniversityID = req.University
	}

	if err := user.SetGradeEntries(req.CoursesWithGrades); err != nil {
		return response.BadRequest(c, "Invalid coursesWithGrades payload")
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.BadRequest(c, "A user with this username or email already exists")
		}
		return response.InternalServerError(c, err.Error())
	}

	credits, err := handlers.CourseCredits(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, serializer.User(&user, credits))
}

// UpdateUser handles PUT/PATCH /users/:id/
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var user model.User
	if err := h.scoped(policy.FromUser(requester)).
		Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	if req.Name != nil {
		user.Name = validation.SanitizeString(*req.Name)
	}
	if req.Username != nil {
		user.Username = validation.SanitizeString(*req.Username)
	}
	if req.Email != nil {
		user.Email = authutil.NormalizeEmail(*req.Email)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.University != nil {
		if err := h.ensureUniversityExists(*req.University); err != nil {
			return response.BadRequest(c, err.Error())
		}
		user.UniversityID = req.University
	}
	if req.CoursesWithGrades != nil {
		if err := user.SetGradeEntries(*req.CoursesWithGrades); err != nil {
			return response.BadRequest(c, "Invalid coursesWithGrades payload")
		}
	}

	// Only re-hash when a new password value was actually supplied.
	if req.Password != nil && *req.Password != "" {
		hash, err := authutil.HashPassword(*req.Password)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		user.PasswordHash = hash
	}

	if err := h.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.BadRequest(c, "A user with this username or email already exists")
		}
		return response.InternalServerError(c, err.Error())
	}

	credits, err := handlers.CourseCredits(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, serializer.User(&user, credits))
}

// DeleteUser handles DELETE /users/:id/
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	requester, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var user model.User
	if err := h.scoped(policy.FromUser(requester)).
		Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if err := h.db.Delete(&user).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.NoContent(c)
}

func (h *UserHandler) ensureUniversityExists(id uint) error {
	var count int64
	if err := h.db.Model(&model.University{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.New("university does not exist")
	}
	return nil
}
