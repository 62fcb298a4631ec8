package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidAuthHeader = errors.New("invalid authorization header")
)

// GenerateTokenKey mints a new opaque token key. Keys carry no
// structure; all meaning lives in the auth_tokens row they index.
func GenerateTokenKey() string {
	// Two UUIDs stripped of dashes give a 64-char hex key.
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// ParseTokenHeader extracts the opaque key from an Authorization
// header. Both the DRF-style "Token <key>" scheme and the common
// "Bearer <key>" scheme are accepted.
func ParseTokenHeader(header string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return "", ErrInvalidAuthHeader
	}
	scheme := parts[0]
	if scheme != "Token" && scheme != "Bearer" {
		return "", ErrInvalidAuthHeader
	}
	key := strings.TrimSpace(parts[1])
	if key == "" {
		return "", ErrInvalidAuthHeader
	}
	return key, nil
}
