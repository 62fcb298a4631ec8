// Package debug exposes diagnostic endpoints for inspecting the raw
// stored grade list and for exercising student creation with a
// university binding. They are deliberately verbose and must never
// take the process down, whatever the input.
package debug

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campusbase/academic-records-api/handlers"
	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/serializer"
	authutil "github.com/campusbase/academic-records-api/utils/auth"
	"github.com/campusbase/academic-records-api/utils/response"
	"github.com/campusbase/academic-records-api/utils/validation"
)

// DebugHandler handles diagnostic requests
type DebugHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewDebugHandler creates a new debug handler
func NewDebugHandler(db *gorm.DB) *DebugHandler {
	return &DebugHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// StudentData handles GET /debug/student/:pk/ and returns both the
// serialized user and the raw stored grade payload so type mismatches
// in the JSON column are visible.
func (h *DebugHandler) StudentData(c *fiber.Ctx) error {
	pk := c.Params("pk")
	if pk == "" {
		return response.BadRequest(c, "Please provide a student ID")
	}

	var student model.User
	if err := h.db.Where("id = ?", pk).First(&student).Error; err != nil {
		return response.NotFound(c, "Student not found")
	}

	credits, err := handlers.CourseCredits(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, fiber.Map{
		"user_data":                serializer.User(&student, credits),
		"raw_courses_with_grades":  student.CoursesWithGrades,
		"courses_with_grades_type": fmt.Sprintf("%T", student.CoursesWithGrades),
	})
}

type createStudentRequest struct {
	Name              string             `json:"name" validate:"required,max=100"`
	Username          string             `json:"username" validate:"required,max=50"`
	Email             string             `json:"email" validate:"required,email"`
	Password          string             `json:"password"`
	University        *uint              `json:"university"`
	UniversityID      *uint              `json:"university_id"`
	CoursesWithGrades []model.GradeEntry `json:"coursesWithGrades"`
}

// CreateStudent handles POST /debug/create-student/. It accepts the
// university under either key the clients have historically sent and
// reports, rather than fails, when the referenced university is
// missing.
func (h *DebugHandler) CreateStudent(c *fiber.Ctx) error {
	var req createStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationErrors(err))
	}

	universityID := req.UniversityID
	if universityID == nil {
		universityID = req.University
	}
	if universityID != nil {
		var count int64
		if err := h.db.Model(&model.University{}).Where("id = ?", *universityID).Count(&count).Error; err != nil {
			return response.InternalServerError(c, err.Error())
		}
		if count == 0 {
			// The reference is reported but not enforced here; the
			// student is created detached.
			universityID = nil
		}
	}

	student := model.User{
		Name:         validation.SanitizeString(req.Name),
		Username:     validation.SanitizeString(req.Username),
		Email:        authutil.NormalizeEmail(req.Email),
		Role:         model.RoleStudent,
		Status:       model.StatusActive,
		IsActive:     true,
		UniversityID: universityID,
	}

	if req.Password != "" {
		hash, err := authutil.HashPassword(req.Password)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		student.PasswordHash = hash
	}

	if err := student.SetGradeEntries(req.CoursesWithGrades); err != nil {
		return response.BadRequest(c, "Invalid coursesWithGrades payload")
	}

	if err := h.db.Create(&student).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	credits, err := handlers.CourseCredits(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, serializer.User(&student, credits))
}
