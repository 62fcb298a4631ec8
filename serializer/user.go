// Package serializer shapes entities into their external JSON
// representations and computes the derived read-only fields (display
// labels, GPA, enrollment counts). Everything here is pure: handlers
// load the records, serializers only transform them.
package serializer

import (
	"time"

	"github.com/campusbase/academic-records-api/grading"
	"github.com/campusbase/academic-records-api/model"
)

// UserOut is the external representation of a user.
type UserOut struct {
	ID                uint              `json:"id"`
	Name              string            `json:"name"`
	Username          string            `json:"username"`
	Email             string            `json:"email"`
	Role              string            `json:"role"`
	RoleDisplay       string            `json:"role_display"`
	Status            string            `json:"status"`
	StatusDisplay     string            `json:"status_display"`
	DateJoined        time.Time         `json:"date_joined"`
	IsActive          bool              `json:"is_active"`
	UniversityID      *uint             `json:"university_id"`
	University        *uint             `json:"university"`
	CoursesWithGrades []model.GradeEntry `json:"coursesWithGrades"`
	GPA               string            `json:"gpa"`
}

// RoleLabel returns the display label for a role code, falling back
// to the raw code when no label is known. Never fails.
func RoleLabel(role string) string {
	if label, ok := model.RoleChoices[role]; ok {
		return label
	}
	return role
}

// StatusLabel returns the display label for a status code, falling
// back to the raw code. Never fails.
func StatusLabel(status string) string {
	if label, ok := model.StatusChoices[status]; ok {
		return label
	}
	return status
}

// User builds the external user representation. credits maps course
// IDs to credit hours and feeds the GPA derivation; missing entries
// are treated as dangling references and skipped.
func User(u *model.User, credits map[uint]int) UserOut {
	entries := u.GradeEntries()
	if entries == nil {
		entries = []model.GradeEntry{}
	}

	return UserOut{
		ID:                u.ID,
		Name:              u.Name,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		RoleDisplay:       RoleLabel(u.Role),
		Status:            u.Status,
		StatusDisplay:     StatusLabel(u.Status),
		DateJoined:        u.DateJoined,
		IsActive:          u.IsActive,
		UniversityID:      u.UniversityID,
		University:        u.UniversityID,
		CoursesWithGrades: entries,
		GPA:               grading.GPA(entries, credits),
	}
}

// Users serializes a collection with a shared credits lookup.
func Users(users []model.User, credits map[uint]int) []UserOut {
	out := make([]UserOut, 0, len(users))
	for i := range users {
		out = append(out, User(&users[i], credits))
	}
	return out
}

// UserWithToken is the login response payload: the full user
// representation with the opaque bearer token flattened alongside it.
type UserWithToken struct {
	UserOut
	Token string `json:"token"`
}
