// Package api exposes the questionnaire as a JSON form-collector API.
package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/dass21/internal/intake"
	"github.com/abhisek/dass21/internal/questionnaire"
)

// AutoVariant resolves to the bank best matching Accept-Language.
const AutoVariant = "auto"

// Server serves the questionnaire over HTTP.
type Server struct {
	app      *fiber.App
	svc      *intake.Service
	validate *validator.Validate
	logger   *slog.Logger
}

// New builds the HTTP server and registers its routes.
func New(svc *intake.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "dass21",
			DisableStartupMessage: true,
			BodyLimit:             64 * 1024,
		}),
		svc:      svc,
		validate: validator.New(),
		logger:   logger,
	}
	s.app.Use(s.requestLogger)
	s.routes()
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http collector listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := s.app.Group("/api")
	api.Get("/variants", s.listVariants)
	api.Get("/variants/:id", s.getVariant)
	api.Post("/submissions", s.createSubmission)
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Info("request completed",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return err
}

func (s *Server) resolve(c *fiber.Ctx, id string) (*questionnaire.Engine, error) {
	if id == AutoVariant {
		return s.svc.Bank().Match(c.Get(fiber.HeaderAcceptLanguage)), nil
	}
	return s.svc.Engine(id)
}

func (s *Server) listVariants(c *fiber.Ctx) error {
	engines := s.svc.Bank().Engines()
	out := make([]VariantSummary, 0, len(engines))
	for _, e := range engines {
		v := e.Variant()
		out = append(out, VariantSummary{ID: v.ID, Locale: v.Locale, Title: v.Title})
	}
	return Success(c, "question banks", out)
}

func (s *Server) getVariant(c *fiber.Ctx) error {
	eng, err := s.resolve(c, c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusNotFound, err.Error())
	}
	return Success(c, eng.Variant().Title, newVariantForm(eng.Variant()))
}

func (s *Server) createSubmission(c *fiber.Ctx) error {
	var req SubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := s.validate.Struct(&req); err != nil {
		return ValidationFailed(c, err)
	}

	variant := req.Variant
	if variant == AutoVariant {
		variant = s.svc.Bank().Match(c.Get(fiber.HeaderAcceptLanguage)).Variant().ID
	}

	rcpt, err := s.svc.Submit(c.UserContext(), intake.Request{
		Variant:   variant,
		Identity:  req.identity(),
		Responses: req.responses(),
	})

	var ve *questionnaire.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		eng, _ := s.svc.Engine(variant)
		return ErrorWithDetails(c, fiber.StatusUnprocessableEntity, ve.Localize(eng.Variant()), RejectionDetails{
			Reason:   ve.Reason,
			Field:    ve.Field,
			Position: ve.Position,
		})
	case errors.Is(err, questionnaire.ErrUnknownVariant):
		return Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, intake.ErrNotRecorded):
		eng, _ := s.svc.Engine(variant)
		msg := eng.Variant().Messages.NotRecorded
		if msg == "" {
			msg = "submission was not recorded"
		}
		return Error(c, fiber.StatusInternalServerError, msg)
	default:
		s.logger.Error("submission failed", "error", err)
		return Error(c, fiber.StatusInternalServerError, "internal error")
	}

	return SuccessWithCode(c, fiber.StatusCreated, rcpt.Variant.Messages.Recorded, SubmissionResponse{
		SubmissionID: rcpt.SubmissionID,
		Variant:      rcpt.Variant.ID,
		Recorded:     rcpt.Recorded,
		Scores:       rcpt.Result.Scores,
	})
}
