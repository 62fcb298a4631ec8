package model

import (
	"time"
)

// Course types.
const (
	CourseTypeMandatory = "mandatory"
	CourseTypeOptional  = "optional"
)

// CourseTypeChoices maps course type codes to their labels.
var CourseTypeChoices = map[string]string{
	CourseTypeMandatory: "Mandatory",
	CourseTypeOptional:  "Optional",
}

// Course represents a taught course owned by a university. Grade
// entries inside User.CoursesWithGrades reference courses by ID
// without referential integrity.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(200);not null" json:"name"`
	Credits      int       `gorm:"not null" json:"credits"`
	Professor    *string   `gorm:"type:varchar(200)" json:"professor"`
	Type         string    `gorm:"type:varchar(20);default:'mandatory'" json:"type"`
	Description  *string   `gorm:"type:text" json:"description"`
	UniversityID uint      `gorm:"not null;index" json:"university"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	University University `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"-"`
}
