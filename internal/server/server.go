// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes context validation and prompt assembly over HTTP.
package server

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/capecc-engine/internal/form"
	"github.com/pdiddy/capecc-engine/internal/prompt"
	"github.com/pdiddy/capecc-engine/pkg/types"
)

// Server wires the validation core behind a Fiber app. It holds no state
// beyond its configuration and logger; every request is validated
// independently.
type Server struct {
	app *fiber.App
	cfg types.ServerConfig
	log *zap.Logger

	// now supplies the default report date; tests pin it.
	now func() time.Time
}

// New builds the Fiber app and registers routes.
func New(cfg types.ServerConfig, log *zap.Logger) *Server {
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 1 << 20
	}
	app := fiber.New(fiber.Config{
		AppName:               "capecc-engine",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	s := &Server{app: app, cfg: cfg, log: log, now: time.Now}

	app.Get("/health", s.health)
	app.Post("/prompts", s.buildPrompt)
	app.Post("/forms/validate", s.validateForm)

	return s
}

// App returns the underlying Fiber app, used by tests for in-memory requests.
func (s *Server) App() *fiber.App { return s.app }

// Run listens on the configured address until the app is shut down.
func (s *Server) Run() error {
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// decodeBody parses the request body into an untyped tree. A failure is
// reported in the same shape as a validation failure so clients handle one
// error format.
func decodeBody(c *fiber.Ctx) (any, bool) {
	var payload any
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// buildPrompt validates a patient context payload and responds with the
// prompt template and assembled payload. Validation failures map to 422
// carrying the error list verbatim.
func (s *Server) buildPrompt(c *fiber.Ctx) error {
	payload, ok := decodeBody(c)
	if !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": []string{"request body must be a JSON object"},
		})
	}

	ok, ctx, errs := form.ValidateContext(payload, s.now())
	if !ok {
		s.log.Debug("context rejected", zap.Strings("errors", errs))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	p := types.NewResectionPrompt(ctx, "")
	s.log.Info("prompt assembled", zap.String("patient_id", ctx.PatientID))
	return c.JSON(fiber.Map{
		"template": prompt.DefaultTemplate,
		"payload":  p.PromptPayload(),
	})
}

// validateForm validates a resection form payload and responds with its
// canonical representation.
func (s *Server) validateForm(c *fiber.Ctx) error {
	payload, ok := decodeBody(c)
	if !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": []string{"request body must be a JSON object"},
		})
	}

	ok, f, errs := form.Validate(payload)
	if !ok {
		s.log.Debug("form rejected", zap.Int("error_count", len(errs)))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"form":  f.Payload(),
	})
}
