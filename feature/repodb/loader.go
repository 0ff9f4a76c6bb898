package repodb

import (
	"genedb/core/build"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates the runs feature. It is disabled without a store.
func NewFeature(service *Service, store *Store, publisher *Publisher, genomes []build.Genome, logger *zap.Logger) *Feature {
	return &Feature{
		handler: NewHandler(service, store, publisher, genomes, logger),
		enabled: store != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "runs"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
