// Package auth implements login, token obtain and the current-user
// endpoint on top of the opaque per-user bearer token.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campusbase/academic-records-api/handlers"
	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/serializer"
	authutil "github.com/campusbase/academic-records-api/utils/auth"
	"github.com/campusbase/academic-records-api/utils/middleware"
	"github.com/campusbase/academic-records-api/utils/response"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		bruteForceProtection: bruteForceProtection,
	}
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var errBadCredentials = errors.New("Invalid credentials")
var errUserDisabled = errors.New("User is disabled")

// authenticate resolves username+password to an active user.
func (h *AuthHandler) authenticate(username, password string) (*model.User, error) {
	var user model.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if err := authutil.VerifyPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, authutil.ErrPasswordMismatch) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	// A disabled account fails authentication distinctly from a bad
	// password, so clients can surface the right message.
	if !user.IsActive {
		return nil, errUserDisabled
	}

	return &user, nil
}

// getOrCreateToken returns the user's token, minting one on first
// login. The insert ignores conflicts on the unique user index, so
// two concurrent first logins converge on a single row.
func (h *AuthHandler) getOrCreateToken(user *model.User) (*model.AuthToken, error) {
	token := model.AuthToken{
		Key:    authutil.GenerateTokenKey(),
		UserID: user.ID,
	}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&token).Error; err != nil {
		return nil, err
	}

	// Re-read: on conflict the existing row wins.
	var existing model.AuthToken
	if err := h.db.Where("user_id = ?", user.ID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Login handles POST /login/: full user representation plus token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Please provide both username and password")
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Please provide both username and password")
	}

	ip := c.IP()

	user, err := h.authenticate(req.Username, req.Password)
	if err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		if errors.Is(err, errBadCredentials) || errors.Is(err, errUserDisabled) {
			return response.Unauthorized(c, err.Error())
		}
		return response.InternalServerError(c, err.Error())
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	token, err := h.getOrCreateToken(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}

	credits, err := handlers.CourseCredits(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, serializer.UserWithToken{
		UserOut: serializer.User(user, credits),
		Token:   token.Key,
	})
}

// ObtainAuthToken handles POST /api-token-auth/: the plain token
// obtain endpoint, returning only the key.
func (h *AuthHandler) ObtainAuthToken(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Unable to log in with provided credentials")
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Unable to log in with provided credentials")
	}

	user, err := h.authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errBadCredentials) || errors.Is(err, errUserDisabled) {
			return response.BadRequest(c, "Unable to log in with provided credentials")
		}
		return response.InternalServerError(c, err.Error())
	}

	token, err := h.getOrCreateToken(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}

	return response.Success(c, fiber.Map{"token": token.Key})
}

// CurrentUser handles GET /current-user/.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	credits, err := handlers.CourseCredits(h.db)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, serializer.User(user, credits))
}
