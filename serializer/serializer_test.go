package serializer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/serializer"
)

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }

func TestRoleAndStatusLabels(t *testing.T) {
	assert.Equal(t, "Teacher", serializer.RoleLabel("teacher"))
	assert.Equal(t, "Suspended", serializer.StatusLabel("suspended"))

	// Unknown codes fall back to the raw value instead of failing.
	assert.Equal(t, "wizard", serializer.RoleLabel("wizard"))
	assert.Equal(t, "on-leave", serializer.StatusLabel("on-leave"))
}

func TestUserSerialization(t *testing.T) {
	u := model.User{
		ID:           1,
		Name:         "Ada Lovelace",
		Username:     "ada",
		Email:        "ada@example.com",
		Role:         model.RoleStudent,
		Status:       model.StatusActive,
		IsActive:     true,
		UniversityID: uintPtr(4),
	}
	require.NoError(t, u.SetGradeEntries([]model.GradeEntry{
		{CourseID: 10, Grade: "A"},
		{CourseID: 11, Grade: "C"},
	}))

	credits := map[uint]int{10: 3, 11: 4}
	out := serializer.User(&u, credits)

	assert.Equal(t, "Student", out.RoleDisplay)
	assert.Equal(t, "Active", out.StatusDisplay)
	assert.Equal(t, uint(4), *out.UniversityID)
	assert.Equal(t, uint(4), *out.University)
	assert.Equal(t, "2.86", out.GPA)
	assert.Len(t, out.CoursesWithGrades, 2)
}

func TestUserSerializationEmptyGrades(t *testing.T) {
	u := model.User{ID: 2, Role: model.RoleTeacher, Status: model.StatusInactive}
	out := serializer.User(&u, nil)

	assert.Equal(t, "0.00", out.GPA)
	assert.Nil(t, out.UniversityID)

	// The grade list renders as [] rather than null.
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"coursesWithGrades":[]`)
}

func TestUserWithTokenFlattens(t *testing.T) {
	u := model.User{ID: 3, Username: "grace", Role: model.RoleAdmin, Status: model.StatusActive}
	payload := serializer.UserWithToken{
		UserOut: serializer.User(&u, nil),
		Token:   "abc123",
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "abc123", decoded["token"])
	assert.Equal(t, "grace", decoded["username"])
}

func TestCourseSerialization(t *testing.T) {
	course := model.Course{
		ID:           10,
		Name:         "Databases",
		Credits:      3,
		Professor:    strPtr("Dr. Codd"),
		Type:         model.CourseTypeMandatory,
		UniversityID: 4,
	}

	var enrolled, duplicated, other model.User
	require.NoError(t, enrolled.SetGradeEntries([]model.GradeEntry{{CourseID: 10, Grade: "B"}}))
	require.NoError(t, duplicated.SetGradeEntries([]model.GradeEntry{
		{CourseID: 10, Grade: "B"},
		{CourseID: 10, Grade: "A"},
	}))
	require.NoError(t, other.SetGradeEntries([]model.GradeEntry{{CourseID: 99, Grade: "A"}}))

	out := serializer.Course(&course, "Example University", []model.User{enrolled, duplicated, other})

	assert.Equal(t, "Example University", out.UniversityName)
	assert.Equal(t, 2, out.EnrolledCount) // duplicate entries count once
	assert.Equal(t, uint(4), out.University)
}

func TestCoursesSharedScan(t *testing.T) {
	courses := []model.Course{
		{ID: 1, Name: "Algebra", UniversityID: 4},
		{ID: 2, Name: "Logic", UniversityID: 5},
	}
	names := map[uint]string{4: "A University", 5: "B University"}

	var u model.User
	require.NoError(t, u.SetGradeEntries([]model.GradeEntry{{CourseID: 2, Grade: "A"}}))

	out := serializer.Courses(courses, names, []model.User{u})
	require.Len(t, out, 2)
	assert.Equal(t, "A University", out[0].UniversityName)
	assert.Equal(t, 0, out[0].EnrolledCount)
	assert.Equal(t, 1, out[1].EnrolledCount)
}

func TestNormalizeWebsite(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"nil stays nil", nil, nil},
		{"empty becomes nil", strPtr(""), nil},
		{"whitespace becomes nil", strPtr("   "), nil},
		{"bare domain gains https", strPtr("example.com"), strPtr("https://example.com")},
		{"http left alone", strPtr("http://example.com"), strPtr("http://example.com")},
		{"https left alone", strPtr("https://example.com"), strPtr("https://example.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.NormalizeWebsite(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}
