// Package handlers holds the health endpoint, the static choice
// listings and small loaders shared by the per-resource handler
// packages.
package handlers

import (
	"gorm.io/gorm"

	"github.com/campusbase/academic-records-api/model"
)

// CourseCredits loads the courseID -> credits map that feeds GPA
// derivation. Dangling grade entries simply miss the map.
func CourseCredits(db *gorm.DB) (map[uint]int, error) {
	var courses []model.Course
	if err := db.Select("id", "credits").Find(&courses).Error; err != nil {
		return nil, err
	}

	credits := make(map[uint]int, len(courses))
	for _, course := range courses {
		credits[course.ID] = course.Credits
	}
	return credits, nil
}

// UniversityNames loads the universityID -> name map used to
// denormalize course representations.
func UniversityNames(db *gorm.DB) (map[uint]string, error) {
	var universities []model.University
	if err := db.Select("id", "name").Find(&universities).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(universities))
	for _, u := range universities {
		names[u.ID] = u.Name
	}
	return names, nil
}

// AllUsersForEnrollment loads the user population scanned when
// computing enrolled counts. Only the grade list column is needed.
func AllUsersForEnrollment(db *gorm.DB) ([]model.User, error) {
	var users []model.User
	if err := db.Select("id", "courses_with_grades").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
