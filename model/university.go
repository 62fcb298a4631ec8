package model

import (
	"time"
)

// University represents an educational institution. It is also the
// tenant boundary: university admins and teachers only see records
// belonging to their own university.
type University struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(200);not null" json:"name"`
	Location       string    `gorm:"type:varchar(200);not null" json:"location"`
	FoundationYear int       `gorm:"not null" json:"foundation_year"`
	Students       int       `gorm:"default:0" json:"students"`
	Website        *string   `gorm:"type:varchar(200)" json:"website"`
	Description    *string   `gorm:"type:text" json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Deleting a university cascades to its courses; user references
	// are nulled instead (see User.University).
	Courses []Course `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"-"`
	Users   []User   `gorm:"foreignKey:UniversityID;constraint:OnDelete:SET NULL" json:"-"`
}
