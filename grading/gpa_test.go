package grading_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbase/academic-records-api/grading"
	"github.com/campusbase/academic-records-api/model"
)

func TestGPA(t *testing.T) {
	credits := map[uint]int{
		1: 3, // course A
		2: 4, // course B
	}

	tests := []struct {
		name    string
		entries []model.GradeEntry
		want    string
	}{
		{
			name:    "empty grade list",
			entries: nil,
			want:    "0.00",
		},
		{
			name: "only dangling course references",
			entries: []model.GradeEntry{
				{CourseID: 999, Grade: "A"},
			},
			want: "0.00",
		},
		{
			name: "single course B grade",
			entries: []model.GradeEntry{
				{CourseID: 1, Grade: "B"},
			},
			want: "3.00",
		},
		{
			name: "weighted average across two courses",
			entries: []model.GradeEntry{
				{CourseID: 1, Grade: "A"}, // 3 credits x 4.0
				{CourseID: 2, Grade: "C"}, // 4 credits x 2.0
			},
			want: "2.86", // (12+8)/7 = 2.857...
		},
		{
			name: "dangling reference skipped, rest counted",
			entries: []model.GradeEntry{
				{CourseID: 999, Grade: "A"},
				{CourseID: 1, Grade: "B"},
			},
			want: "3.00",
		},
		{
			name: "N/A counts as zero points but consumes credits",
			entries: []model.GradeEntry{
				{CourseID: 1, Grade: "A"},
				{CourseID: 2, Grade: "N/A"},
			},
			want: "1.71", // (12+0)/7
		},
		{
			name: "unknown grade treated like zero",
			entries: []model.GradeEntry{
				{CourseID: 1, Grade: "excellent"},
			},
			want: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, grading.GPA(tt.entries, credits))
		})
	}
}

func TestGPAZeroCreditCourse(t *testing.T) {
	credits := map[uint]int{1: 0}
	entries := []model.GradeEntry{{CourseID: 1, Grade: "A"}}
	assert.Equal(t, "0.00", grading.GPA(entries, credits))
}

func TestEnrolledCount(t *testing.T) {
	mkUser := func(entries []model.GradeEntry) model.User {
		var u model.User
		require.NoError(t, u.SetGradeEntries(entries))
		return u
	}

	users := []model.User{
		mkUser([]model.GradeEntry{{CourseID: 1, Grade: "A"}}),
		mkUser([]model.GradeEntry{
			// duplicate entries for course 1 count once
			{CourseID: 1, Grade: "B"},
			{CourseID: 1, Grade: "A-"},
			{CourseID: 2, Grade: "C"},
		}),
		mkUser(nil),
		mkUser([]model.GradeEntry{{CourseID: 2, Grade: "F"}}),
	}

	assert.Equal(t, 2, grading.EnrolledCount(1, users))
	assert.Equal(t, 2, grading.EnrolledCount(2, users))
	assert.Equal(t, 0, grading.EnrolledCount(42, users))
}

func TestGradeEntriesTolerantDecoding(t *testing.T) {
	var u model.User

	// Empty column decodes to nothing.
	assert.Empty(t, u.GradeEntries())

	// Garbage decodes to nothing instead of failing.
	u.CoursesWithGrades = []byte(`{"not": "a list"`)
	assert.Empty(t, u.GradeEntries())

	u.CoursesWithGrades = []byte(`[{"courseId": 3, "grade": "B+"}]`)
	entries := u.GradeEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, uint(3), entries[0].CourseID)
	assert.Equal(t, "B+", entries[0].Grade)
}
