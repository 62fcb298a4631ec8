package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// User roles.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// RoleChoices maps role codes to their human-readable labels.
var RoleChoices = map[string]string{
	RoleAdmin:   "Admin",
	RoleTeacher: "Teacher",
	RoleStudent: "Student",
}

// StatusChoices maps status codes to their human-readable labels.
var StatusChoices = map[string]string{
	StatusActive:    "Active",
	StatusInactive:  "Inactive",
	StatusSuspended: "Suspended",
}

// User represents an account in the system: head admins, university
// admins, teachers and students. A nil UniversityID marks a head admin
// with unrestricted scope.
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"type:varchar(100);not null" json:"name"`
	Username     string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string      `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string      `gorm:"type:varchar(20);default:'student'" json:"role"`
	Status       string      `gorm:"type:varchar(20);default:'active'" json:"status"`
	DateJoined   time.Time   `gorm:"autoCreateTime" json:"date_joined"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
	IsStaff      bool        `gorm:"default:false" json:"-"`
	IsSuperuser  bool        `gorm:"default:false" json:"-"`
	UniversityID *uint       `gorm:"index" json:"university_id"`
	University   *University `gorm:"foreignKey:UniversityID;constraint:OnDelete:SET NULL" json:"-"`

	// CoursesWithGrades holds the embedded grade list: an ordered JSON
	// array of {"courseId": <id>, "grade": "<letter>"} entries. Course
	// references in here are informal and may dangle after a course is
	// deleted; readers must tolerate that.
	CoursesWithGrades datatypes.JSON `gorm:"type:jsonb" json:"coursesWithGrades"`
}

// GradeEntry is a single {courseId, grade} record inside a user's
// embedded grade list.
type GradeEntry struct {
	CourseID uint   `json:"courseId"`
	Grade    string `json:"grade"`
}

// GradeEntries decodes the embedded grade list. Malformed or empty
// payloads yield an empty slice, never an error: the grade list is
// tolerated as eventually consistent.
func (u *User) GradeEntries() []GradeEntry {
	if len(u.CoursesWithGrades) == 0 {
		return nil
	}
	var entries []GradeEntry
	if err := json.Unmarshal(u.CoursesWithGrades, &entries); err != nil {
		return nil
	}
	return entries
}

// SetGradeEntries encodes entries into the embedded JSON column.
func (u *User) SetGradeEntries(entries []GradeEntry) error {
	if entries == nil {
		entries = []GradeEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	u.CoursesWithGrades = datatypes.JSON(raw)
	return nil
}
