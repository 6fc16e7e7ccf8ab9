// Package server exposes the HTTP API over Fiber.
package server

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"famorg/internal/common"
	"famorg/internal/docgen"
	"famorg/internal/docgen/template"
	"famorg/internal/export"
	"famorg/internal/profiles"
	"famorg/internal/repository"
	"famorg/internal/tasks"
	"famorg/internal/weather"
)

// Deps are the services the HTTP layer fronts. Weather may be nil.
type Deps struct {
	Profiles  *profiles.Service
	Tasks     *tasks.Service
	Documents *docgen.Service
	DocRepo   repository.DocumentRepository
	Export    *export.Service
	Weather   *weather.Client

	// DocumentsDir, when set, is served statically under PublicBase.
	DocumentsDir string
	PublicBase   string

	// Defaults for the forecast widget.
	Latitude  float64
	Longitude float64
}

type Server struct {
	app    *fiber.App
	deps   Deps
	logger *slog.Logger
}

func New(deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: errorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(cors.New())

	if deps.DocumentsDir != "" {
		base := deps.PublicBase
		if base == "" {
			base = "/documents"
		}
		app.Static(base, deps.DocumentsDir)
	}

	s := &Server{app: app, deps: deps, logger: logger}
	s.registerRoutes()
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.logger.Info("server.listen", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")

	api.Get("/templates", s.handleListTemplates)

	api.Post("/profiles", s.handleCreateProfile)
	api.Get("/profiles", s.handleListProfiles)
	api.Get("/profiles/:id", s.handleGetProfile)
	api.Put("/profiles/:id", s.handleUpdateProfile)

	api.Post("/tasks", s.handleCreateTask)
	api.Get("/tasks", s.handleListTasks)
	api.Get("/tasks/:id", s.handleGetTask)
	api.Put("/tasks/:id", s.handleUpdateTask)
	api.Post("/tasks/:id/done", s.handleTaskDone)
	api.Delete("/tasks/:id", s.handleDeleteTask)
	api.Post("/tasks/ingest", s.handleIngestEmail)

	api.Post("/documents/generate", s.handleGenerateDocument)
	api.Post("/documents/preview", s.handlePreviewDocument)
	api.Get("/documents", s.handleListDocuments)

	api.Get("/export/tasks.xlsx", s.handleExportTasks)
	api.Get("/weather", s.handleWeather)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleListTemplates(c *fiber.Ctx) error {
	type tplView struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Kind     string   `json:"kind"`
		Required []string `json:"required"`
	}
	all := template.All()
	out := make([]tplView, 0, len(all))
	for _, t := range all {
		out = append(out, tplView{
			ID:       t.ID,
			Title:    t.Title,
			Kind:     string(t.Kind),
			Required: t.Required,
		})
	}
	return c.JSON(out)
}

// errorHandler maps domain errors to HTTP statuses.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			code = fe.Code
		case errors.Is(err, common.ErrNotFound), errors.Is(err, template.ErrUnknownTemplate):
			code = fiber.StatusNotFound
		case errors.Is(err, common.ErrInvalidInput):
			code = fiber.StatusBadRequest
		}
		if code >= 500 {
			logger.Error("server.request_failed", "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
