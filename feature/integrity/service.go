package integrity

import (
	"context"
	"fmt"

	"genedb/core/build"
	"genedb/core/storage"
	"genedb/feature/integrity/checks"
	"genedb/feature/repodb"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	storage storage.Config
	db      *gorm.DB
	genomes []build.Genome
	logger  *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil.
func NewService(client storage.Client, cfg storage.Config, db *gorm.DB, genomes []build.Genome, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		storage: cfg,
		db:      db,
		genomes: genomes,
		logger:  logger,
	}
}

// CheckManifest validates the manifest and checks every genome's files.
func (s *Service) CheckManifest() ([]checks.GenomeReport, error) {
	if err := build.ValidateManifest(s.genomes); err != nil {
		return nil, err
	}
	return checks.CheckManifest(s.genomes), nil
}

// CheckServer compares the run tables with their models.
func (s *Service) CheckServer() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, repodb.RunRecord{}, repodb.GenomeRecord{})
}

// CheckStorage inspects the publish bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage client is not configured")
	}
	return checks.CheckStorage(ctx, s.client, s.storage.Bucket, s.storage.Prefix)
}

// FixStorage creates the publish bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("storage client is not configured")
	}
	return checks.FixStorage(ctx, s.client, s.storage.Bucket, s.storage.Region, s.logger)
}
