package integrity

import (
	"genedb/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/manifest", h.HandleManifestCheck)
	group.Get("/server", h.HandleServerCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every check and reports each one separately.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]any)

	if genomes, err := h.service.CheckManifest(); err != nil {
		report["manifest"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["manifest"] = fiber.Map{"status": "ok", "genomes": genomes}
	}

	if srv, err := h.service.CheckServer(); err != nil {
		report["server"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["server"] = srv
	}

	if st, err := h.service.CheckStorage(c.UserContext()); err != nil {
		report["storage"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = st
	}

	return c.JSON(report)
}

// HandleManifestCheck reports missing input files per genome.
func (h *Handler) HandleManifestCheck(c *fiber.Ctx) error {
	genomes, err := h.service.CheckManifest()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Manifest check failed", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":  "checked",
		"genomes": genomes,
	})
}

// HandleServerCheck compares the run tables with their models.
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckServer()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Server check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleStorageCheck inspects the publish bucket; ?fix=true creates it.
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.UserContext()

	report, err := h.service.CheckStorage(ctx)
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Exists && c.Query("fix") == "true" {
		l.Info("Attempting to create missing bucket")
		if err := h.service.FixStorage(ctx); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "bucket": report.Bucket})
	}

	return c.JSON(report)
}
