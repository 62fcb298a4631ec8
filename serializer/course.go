package serializer

import (
	"github.com/campusbase/academic-records-api/grading"
	"github.com/campusbase/academic-records-api/model"
)

// CourseOut is the external representation of a course.
type CourseOut struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Credits        int     `json:"credits"`
	Professor      *string `json:"professor"`
	Type           string  `json:"type"`
	Description    *string `json:"description"`
	University     uint    `json:"university"`
	UniversityName string  `json:"university_name"`
	EnrolledCount  int     `json:"enrolled_count"`
}

// Course builds the external course representation. universityName is
// denormalized from the owning university; users is the population
// scanned for the enrollment count.
func Course(c *model.Course, universityName string, users []model.User) CourseOut {
	return CourseOut{
		ID:             c.ID,
		Name:           c.Name,
		Credits:        c.Credits,
		Professor:      c.Professor,
		Type:           c.Type,
		Description:    c.Description,
		University:     c.UniversityID,
		UniversityName: universityName,
		EnrolledCount:  grading.EnrolledCount(c.ID, users),
	}
}

// Courses serializes a collection, resolving university names through
// the given lookup and sharing one user scan across all counts.
func Courses(courses []model.Course, universityNames map[uint]string, users []model.User) []CourseOut {
	out := make([]CourseOut, 0, len(courses))
	for i := range courses {
		out = append(out, Course(&courses[i], universityNames[courses[i].UniversityID], users))
	}
	return out
}
