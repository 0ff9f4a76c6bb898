package repodb

import (
	"errors"
	"sync"

	"genedb/core/build"
	"genedb/core/errs"
	"genedb/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves build runs over HTTP.
type Handler struct {
	service   *Service
	store     *Store
	publisher *Publisher
	genomes   []build.Genome
	logger    *zap.Logger

	// one build at a time
	building sync.Mutex
}

// NewHandler creates a new HTTP handler. publisher may be nil.
func NewHandler(service *Service, store *Store, publisher *Publisher, genomes []build.Genome, logger *zap.Logger) *Handler {
	return &Handler{
		service:   service,
		store:     store,
		publisher: publisher,
		genomes:   genomes,
		logger:    logger,
	}
}

// RegisterRoutes registers the run routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/runs")
	group.Get("/", h.HandleListRuns)
	group.Post("/", h.HandleCreateRun)
	group.Get("/:id", h.HandleGetRun)
	group.Get("/:id/genomes", h.HandleListGenomes)
}

// HandleListRuns returns the most recent runs. The limit query parameter
// defaults to 50.
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.store.ListRuns(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Listing runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleGetRun returns a single run.
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	run, err := h.store.GetRun(c.UserContext(), c.Params("id"))
	if errors.Is(err, ErrRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Fetching run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(run)
}

// HandleListGenomes returns the genome summaries of a run.
func (h *Handler) HandleListGenomes(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.store.GetRun(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrRunNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	genomes, err := h.store.ListGenomes(c.UserContext(), id)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Listing genomes failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(genomes)
}

// HandleCreateRun builds the configured manifest, writes the outputs and
// stores the run. A build already in progress yields 409.
func (h *Handler) HandleCreateRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	if !h.building.TryLock() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a build is already running"})
	}
	defer h.building.Unlock()

	ctx := c.UserContext()
	cfg := h.service.Config()

	res, err := h.service.Build(ctx, h.genomes)
	if err != nil {
		l.Error("Build failed", zap.Error(err))
		var ge *GenomeError
		if errors.As(err, &ge) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  err.Error(),
				"genome": ge.Genome,
				"file":   ge.File,
				"class":  ge.Class.String(),
			})
		}
		if errs.IsInvalid(err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
				"class": errs.ClassInvalid.String(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	files, err := WriteOutputs(cfg.OutputDir, cfg.Prefix, res, cfg.AlignmentType)
	if err != nil {
		l.Error("Writing outputs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.store.SaveRun(ctx, res, cfg.OutputDir); err != nil {
		l.Error("Saving run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if h.publisher != nil {
		if _, err := h.publisher.Publish(ctx, res.RunID, cfg.OutputDir, files); err != nil {
			// outputs are on disk and the run is stored; publishing can be retried
			l.Warn("Publishing outputs failed", zap.Error(err))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(NewReport(res, files))
}
