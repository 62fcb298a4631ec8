package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/campusbase/academic-records-api/model"
	"github.com/campusbase/academic-records-api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seed functions against the given connection.
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedHeadAdmin(); err != nil {
		return fmt.Errorf("failed to seed head admin: %w", err)
	}

	if err := s.SeedUniversities(); err != nil {
		return fmt.Errorf("failed to seed universities: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedHeadAdmin creates the default head admin (no university, full
// scope) from ADMIN_* environment variables.
func (s *Seeder) SeedHeadAdmin() error {
	var count int64
	if err := s.db.Model(&model.User{}).
		Where("role = ? AND university_id IS NULL", model.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Head admin already exists, skipping...")
		return nil
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping head admin creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Name:         "System Administrator",
		Username:     adminUsername,
		Email:        auth.NormalizeEmail(adminEmail),
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Created head admin: %s\n", admin.Username)
	return nil
}

// SeedUniversities creates sample universities when the table is empty.
func (s *Seeder) SeedUniversities() error {
	var count int64
	if err := s.db.Model(&model.University{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Universities already exist, skipping...")
		return nil
	}

	website := func(u string) *string { return &u }

	universities := []model.University{
		{
			Name:           "Politehnica University",
			Location:       "Bucharest",
			FoundationYear: 1864,
			Website:        website("https://upb.ro"),
		},
		{
			Name:           "Technical University of Cluj-Napoca",
			Location:       "Cluj-Napoca",
			FoundationYear: 1948,
			Website:        website("https://utcluj.ro"),
		},
	}

	if err := s.db.Create(&universities).Error; err != nil {
		return err
	}

	log.Printf("Created %d sample universities\n", len(universities))
	return nil
}

// SeedCourses creates sample courses for the seeded universities.
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Courses already exist, skipping...")
		return nil
	}

	var universities []model.University
	if err := s.db.Order("id").Find(&universities).Error; err != nil {
		return err
	}
	if len(universities) == 0 {
		log.Println("No universities found, skipping course seeding")
		return nil
	}

	professor := func(p string) *string { return &p }

	courses := []model.Course{
		{
			Name:         "Data Structures and Algorithms",
			Credits:      6,
			Professor:    professor("Dr. E. Ionescu"),
			Type:         model.CourseTypeMandatory,
			UniversityID: universities[0].ID,
		},
		{
			Name:         "Databases",
			Credits:      5,
			Professor:    professor("Dr. M. Popescu"),
			Type:         model.CourseTypeMandatory,
			UniversityID: universities[0].ID,
		},
		{
			Name:         "Computer Graphics",
			Credits:      4,
			Type:         model.CourseTypeOptional,
			UniversityID: universities[len(universities)-1].ID,
		},
	}

	if err := s.db.Create(&courses).Error; err != nil {
		return err
	}

	log.Printf("Created %d sample courses\n", len(courses))
	return nil
}
