package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/policy"
)

func uintPtr(v uint) *uint { return &v }

func TestVisibleUsers(t *testing.T) {
	tests := []struct {
		name         string
		identity     policy.Identity
		wantRule     string
		wantUniverse *uint
	}{
		{
			name:         "student without university sees all",
			identity:     policy.Identity{Role: model.RoleStudent},
			wantRule:     "student-sees-all",
			wantUniverse: nil,
		},
		{
			name: "tenant-scoped student still sees all (precedence)",
			identity: policy.Identity{
				Role:         model.RoleStudent,
				UniversityID: uintPtr(7),
			},
			wantRule:     "student-sees-all",
			wantUniverse: nil,
		},
		{
			name: "teacher with university is filtered",
			identity: policy.Identity{
				Role:         model.RoleTeacher,
				UniversityID: uintPtr(7),
			},
			wantRule:     "teacher-own-university",
			wantUniverse: uintPtr(7),
		},
		{
			name:         "teacher without university sees all",
			identity:     policy.Identity{Role: model.RoleTeacher},
			wantRule:     "head-admin-sees-all",
			wantUniverse: nil,
		},
		{
			name: "university admin is filtered",
			identity: policy.Identity{
				Role:         model.RoleAdmin,
				UniversityID: uintPtr(3),
			},
			wantRule:     "tenant-admin-own-university",
			wantUniverse: uintPtr(3),
		},
		{
			name: "tenant-scoped superuser sees all",
			identity: policy.Identity{
				Role:         model.RoleAdmin,
				UniversityID: uintPtr(3),
				IsSuperuser:  true,
			},
			wantRule:     "head-admin-sees-all",
			wantUniverse: nil,
		},
		{
			name:         "head admin sees all",
			identity:     policy.Identity{Role: model.RoleAdmin},
			wantRule:     "head-admin-sees-all",
			wantUniverse: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := policy.VisibleUsers(tt.identity)
			assert.Equal(t, tt.wantRule, scope.Rule)
			if tt.wantUniverse == nil {
				assert.Nil(t, scope.UniversityID)
			} else {
				assert.NotNil(t, scope.UniversityID)
				assert.Equal(t, *tt.wantUniverse, *scope.UniversityID)
			}
		})
	}
}

func TestVisibleUniversities(t *testing.T) {
	assert.Nil(t, policy.VisibleUniversities(policy.Identity{Role: model.RoleAdmin}))

	got := policy.VisibleUniversities(policy.Identity{Role: model.RoleAdmin, UniversityID: uintPtr(4)})
	assert.NotNil(t, got)
	assert.Equal(t, uint(4), *got)
}

func TestVisibleCourses(t *testing.T) {
	assert.Nil(t, policy.VisibleCourses(policy.Identity{Role: model.RoleAdmin}))

	got := policy.VisibleCourses(policy.Identity{Role: model.RoleTeacher, UniversityID: uintPtr(9)})
	assert.NotNil(t, got)
	assert.Equal(t, uint(9), *got)
}

func TestCanAdministerUniversity(t *testing.T) {
	headAdmin := policy.Identity{Role: model.RoleAdmin}
	tenantAdmin := policy.Identity{Role: model.RoleAdmin, UniversityID: uintPtr(2)}

	assert.True(t, policy.CanAdministerUniversity(headAdmin, 2))
	assert.True(t, policy.CanAdministerUniversity(headAdmin, 99))
	assert.True(t, policy.CanAdministerUniversity(tenantAdmin, 2))
	assert.False(t, policy.CanAdministerUniversity(tenantAdmin, 3))
}

func TestCourseUniversityForCreate(t *testing.T) {
	headAdmin := policy.Identity{Role: model.RoleAdmin}
	tenantAdmin := policy.Identity{Role: model.RoleAdmin, UniversityID: uintPtr(5)}

	// Head admin keeps the submitted university.
	assert.Equal(t, uint(8), policy.CourseUniversityForCreate(headAdmin, 8))

	// Tenant admin gets force-set to their own, whatever they submit.
	assert.Equal(t, uint(5), policy.CourseUniversityForCreate(tenantAdmin, 8))
	assert.Equal(t, uint(5), policy.CourseUniversityForCreate(tenantAdmin, 0))
}

func TestFromUser(t *testing.T) {
	u := &model.User{
		ID:           11,
		Role:         model.RoleTeacher,
		UniversityID: uintPtr(6),
		IsSuperuser:  false,
	}
	id := policy.FromUser(u)
	assert.Equal(t, uint(11), id.ID)
	assert.Equal(t, model.RoleTeacher, id.Role)
	assert.Equal(t, uint(6), *id.UniversityID)
	assert.False(t, id.IsHeadAdmin())

	u.UniversityID = nil
	assert.True(t, policy.FromUser(u).IsHeadAdmin())
}
