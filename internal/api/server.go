package api

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/interfaces"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
)

// RequestIDHeader carries the correlation id of each request
const RequestIDHeader = "X-Request-ID"

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr     string
	Location *time.Location
}

// Dependencies are the services the API exposes
type Dependencies struct {
	UserService    interfaces.UserServiceInterface
	FoodLogSvc     interfaces.FoodLogServiceInterface
	ExerciseLogSvc interfaces.ExerciseLogServiceInterface
	ReportSvc      interfaces.ReportServiceInterface
	Estimator      *calories.Estimator
}

// Server exposes the Fiber application.
type Server struct {
	app  *fiber.App
	deps Dependencies
	cfg  Config
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, deps Dependencies) *Server {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestContext)
	app.Use(cors.New())

	srv := &Server{app: app, deps: deps, cfg: cfg}
	srv.registerRoutes()
	return srv
}

// App returns the underlying fiber application
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	logger.Info("API server listening", "addr", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")
	api.Get("/estimate/food", s.handleEstimateFood)
	api.Get("/estimate/exercise", s.handleEstimateExercise)

	users := api.Group("/users/:id")
	users.Get("/dashboard", s.handleDashboard)
	users.Get("/summary", s.handleSummary)
	users.Post("/food", s.handleLogFood)
	users.Post("/exercise", s.handleLogExercise)
}

// requestContext attaches a correlation id and logs each request
func requestContext(c *fiber.Ctx) error {
	start := time.Now()
	ctx, id := logger.NewRequestContext(c.UserContext())
	c.SetUserContext(ctx)
	c.Set(RequestIDHeader, id)

	err := c.Next()
	if err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	logger.WithContext(ctx).Info("HTTP request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start).String())
	return nil
}

// errorHandler maps AppError types to HTTP status codes
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	status := fiber.StatusInternalServerError
	message := apperrors.ErrInternalServer.Message
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrDatabaseError):
		status = fiber.StatusServiceUnavailable
		message = apperrors.ErrDatabaseError.Message
	case errors.As(err, &appErr):
		switch appErr.Type {
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeMalformedInput, apperrors.ErrorTypeUnrecognizedInput:
			status = fiber.StatusBadRequest
			message = appErr.Message
		case apperrors.ErrorTypeNotFound:
			status = fiber.StatusNotFound
			message = appErr.Message
		}
	default:
		err = apperrors.NewInternalError(err)
	}
	if status >= fiber.StatusInternalServerError {
		ctx := c.UserContext()
		apperrors.NewHandler(logger.WithContext(ctx).With("path", c.Path())).Handle(ctx, err)
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func userID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}
	return uint(id), nil
}
