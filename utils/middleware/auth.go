package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/utils/auth"
	"github.com/campusbase/academic-records-api/utils/response"
)

// AuthMiddleware resolves opaque bearer tokens ("Token <key>" or
// "Bearer <key>") against the auth_tokens table and attaches the
// owning user to the request context.
type AuthMiddleware struct {
	db *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{db: db}
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*model.User, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, errors.New("missing authorization token")
	}

	key, err := auth.ParseTokenHeader(header)
	if err != nil {
		return nil, errors.New("invalid authorization format")
	}

	var token model.AuthToken
	if err := m.db.Where("key = ?", key).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid token")
		}
		return nil, err
	}

	var user model.User
	if err := m.db.First(&user, token.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid token")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, errors.New("user inactive or deleted")
	}

	return &user, nil
}

// Required rejects requests without a valid token.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.resolve(c)
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}

// Optional resolves a token when present but lets anonymous requests
// through; handlers decide what anonymity means for them.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.resolve(c)
		if err == nil {
			c.Locals("user", user)
			c.Locals("user_id", user.ID)
		}
		return c.Next()
	}
}

// GetUser extracts the authenticated user from the request context.
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}
