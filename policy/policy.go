// Package policy decides, for an authenticated identity, which records
// are visible and which mutations are allowed. All rules are pure
// functions over the identity and target so they can be tested without
// a database or an HTTP request.
package policy

import (
	"github.com/campusbase/academic-records-api/model"
)

// Identity is the policy view of the requesting user.
type Identity struct {
	ID           uint
	Role         string
	UniversityID *uint // nil = head admin
	IsSuperuser  bool
}

// FromUser builds the policy identity for a loaded user record.
func FromUser(u *model.User) Identity {
	return Identity{
		ID:           u.ID,
		Role:         u.Role,
		UniversityID: u.UniversityID,
		IsSuperuser:  u.IsSuperuser,
	}
}

// IsHeadAdmin reports whether the identity has unrestricted scope.
func (id Identity) IsHeadAdmin() bool {
	return id.UniversityID == nil
}

// UserScope describes which user records a listing may return.
type UserScope struct {
	// Rule is the name of the visibility rule that matched, for
	// logging and tests.
	Rule string
	// UniversityID, when non-nil, restricts the listing to users of
	// that university. Nil means no restriction.
	UniversityID *uint
}

// userVisibilityRule is one entry in the ordered visibility table.
type userVisibilityRule struct {
	name    string
	applies func(Identity) bool
	scope   func(Identity) *uint
}

func all(Identity) *uint            { return nil }
func ownUniversity(id Identity) *uint { return id.UniversityID }

// userVisibilityRules is evaluated top to bottom, first match wins.
//
// The student rule deliberately short-circuits before the tenant
// rules: a student always sees the full user list, even when they
// belong to a university. Existing clients rely on this; confirm with
// stakeholders before tightening it.
var userVisibilityRules = []userVisibilityRule{
	{
		name:    "student-sees-all",
		applies: func(id Identity) bool { return id.Role == model.RoleStudent },
		scope:   all,
	},
	{
		name:    "teacher-own-university",
		applies: func(id Identity) bool { return id.Role == model.RoleTeacher && id.UniversityID != nil },
		scope:   ownUniversity,
	},
	{
		name:    "tenant-admin-own-university",
		applies: func(id Identity) bool { return id.UniversityID != nil && !id.IsSuperuser },
		scope:   ownUniversity,
	},
	{
		name:    "head-admin-sees-all",
		applies: func(Identity) bool { return true },
		scope:   all,
	},
}

// VisibleUsers returns the listing scope for the user collection.
func VisibleUsers(id Identity) UserScope {
	for _, rule := range userVisibilityRules {
		if rule.applies(id) {
			return UserScope{Rule: rule.name, UniversityID: rule.scope(id)}
		}
	}
	// Unreachable: the last rule always applies.
	return UserScope{Rule: "head-admin-sees-all"}
}

// VisibleUniversities returns the university listing restriction:
// nil means all universities, otherwise only the returned ID.
func VisibleUniversities(id Identity) *uint {
	if id.IsHeadAdmin() {
		return nil
	}
	return id.UniversityID
}

// VisibleCourses returns the tenant restriction on the course listing:
// nil means unrestricted, otherwise only courses of that university.
// An explicit query filter is applied in addition to (not instead of)
// this restriction, so conflicting filters intersect to an empty set.
func VisibleCourses(id Identity) *uint {
	if id.IsHeadAdmin() {
		return nil
	}
	return id.UniversityID
}

// CanAdministerUniversity reports whether the identity may mutate a
// resource belonging to the given university. For the University
// entity itself the target ID is the university's own ID: a
// university administers itself.
func CanAdministerUniversity(id Identity, targetUniversityID uint) bool {
	if id.IsHeadAdmin() {
		return true
	}
	return *id.UniversityID == targetUniversityID
}

// CourseUniversityForCreate returns the university a new course must
// be assigned to. A tenant-scoped creator always gets their own
// university regardless of the submitted value, preventing
// cross-tenant course injection.
func CourseUniversityForCreate(id Identity, requested uint) uint {
	if id.UniversityID != nil {
		return *id.UniversityID
	}
	return requested
}
