package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// APIServer owns the Fiber engine and the listen address.
type APIServer struct {
	app           *fiber.App
	listenAddress string
}

// NewAPIServer builds the Fiber app. The error handler is the single
// boundary translator: any error escaping a handler (including
// recovered panics) becomes an {"error": "<message>"} envelope with
// an appropriate status code, so a request can never crash the
// process or leak an unstructured response.
func NewAPIServer(listenAddress string) *APIServer {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	return &APIServer{
		app:           app,
		listenAddress: listenAddress,
	}
}

// GetEngine exposes the underlying Fiber app for route registration.
func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run starts the listener and blocks.
func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}
