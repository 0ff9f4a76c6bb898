package repodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// Store persists build runs.
type Store struct {
	db *gorm.DB
}

// NewStore creates a run store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the run tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&RunRecord{}, &GenomeRecord{}); err != nil {
		return fmt.Errorf("failed to migrate run tables: %w", err)
	}
	return nil
}

// SaveRun stores res and its genome summaries in one transaction.
func (s *Store) SaveRun(ctx context.Context, res *Result, outputDir string) (*RunRecord, error) {
	run := &RunRecord{
		ID:             res.RunID,
		AlignmentType:  res.AlignmentType,
		MatchThreshold: res.Threshold,
		GeneticCode:    res.GeneticCode,
		OutputDir:      outputDir,
		Genomes:        len(res.Genomes),
		Records:        len(res.AllRecords()),
		CreatedAt:      time.Now().UTC(),
	}

	genomes := make([]GenomeRecord, 0, len(res.Genomes))
	for _, sum := range res.Summaries() {
		genomes = append(genomes, newGenomeRecord(res.RunID, sum))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		if len(genomes) == 0 {
			return nil
		}
		return tx.Create(&genomes).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save run %s: %w", res.RunID, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	var runs []RunRecord
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run with id.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	var run RunRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}

// ListGenomes returns a run's genome summaries sorted by name.
func (s *Store) ListGenomes(ctx context.Context, runID string) ([]GenomeRecord, error) {
	var genomes []GenomeRecord
	if err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("genome").Find(&genomes).Error; err != nil {
		return nil, fmt.Errorf("failed to list genomes of run %s: %w", runID, err)
	}
	return genomes, nil
}
