package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campusbase/academic-records-api/database"
	"github.com/campusbase/academic-records-api/handlers"
	auth_handlers "github.com/campusbase/academic-records-api/handlers/auth"
	course_handlers "github.com/campusbase/academic-records-api/handlers/course"
	debug_handlers "github.com/campusbase/academic-records-api/handlers/debug"
	university_handlers "github.com/campusbase/academic-records-api/handlers/university"
	user_handlers "github.com/campusbase/academic-records-api/handlers/user"
	"github.com/campusbase/academic-records-api/utils/cache"
	"github.com/campusbase/academic-records-api/utils/middleware"
)

// SetupRoutes registers every endpoint. Paths keep the trailing-slash
// form existing clients send; Fiber's lenient routing accepts both
// with and without the slash.
func SetupRoutes(app *fiber.App, store database.Storage) {
	db := store.DB()

	// Redis backs login brute force protection. The API stays up
	// without it, just unprotected.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(db)

	authHandler := auth_handlers.NewAuthHandler(db, bruteForceProtection)
	userHandler := user_handlers.NewUserHandler(db)
	universityHandler := university_handlers.NewUniversityHandler(db)
	courseHandler := course_handlers.NewCourseHandler(db)
	debugHandler := debug_handlers.NewDebugHandler(db)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// Auth routes (public)
	if bruteForceProtection != nil {
		app.Post("/login/", bruteForceProtection.CheckAttempt(), authHandler.Login)
	} else {
		app.Post("/login/", authHandler.Login)
	}
	app.Post("/api-token-auth/", authHandler.ObtainAuthToken)

	// Current user resolves lazily so the handler can answer 401 with
	// its own message instead of the middleware's.
	app.Get("/current-user/", authMiddleware.Optional(), authHandler.CurrentUser)

	// Static choice listings (public: clients render signup forms
	// from these before any login)
	app.Get("/user-roles/", handlers.HandleUserRoles)
	app.Get("/user-statuses/", handlers.HandleUserStatuses)

	// Users
	users := app.Group("/users", authMiddleware.Required())
	users.Get("/", userHandler.ListUsers)
	users.Post("/", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Patch("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	// Universities
	universities := app.Group("/universities", authMiddleware.Required())
	universities.Get("/", universityHandler.ListUniversities)
	universities.Post("/", universityHandler.CreateUniversity)
	universities.Get("/:id", universityHandler.GetUniversity)
	universities.Put("/:id", universityHandler.UpdateUniversity)
	universities.Patch("/:id", universityHandler.UpdateUniversity)
	universities.Delete("/:id", universityHandler.DeleteUniversity)

	// Courses
	courses := app.Group("/courses", authMiddleware.Required())
	courses.Get("/", courseHandler.ListCourses)
	courses.Post("/", courseHandler.CreateCourse)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Put("/:id", courseHandler.UpdateCourse)
	courses.Patch("/:id", courseHandler.UpdateCourse)
	courses.Delete("/:id", courseHandler.DeleteCourse)

	// Diagnostic endpoints
	debug := app.Group("/debug", authMiddleware.Required())
	debug.Get("/student/:pk", debugHandler.StudentData)
	debug.Post("/create-student", debugHandler.CreateStudent)
}
