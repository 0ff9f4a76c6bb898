package repodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"genedb/core/build"
	"genedb/core/errs"
	"genedb/core/extract"
	"genedb/core/fasta"
	"genedb/core/gff"
	"genedb/core/logger"
	"genedb/core/metrics"
	"genedb/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service builds the per-genome record sets of a repository.
type Service struct {
	cfg     build.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates a build service. m may be nil.
func NewService(cfg build.Config, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{cfg: cfg, logger: logger, metrics: m}
}

// Config returns the build settings.
func (s *Service) Config() build.Config {
	return s.cfg
}

// Build processes every genome, at most Workers at a time. A manifest with
// missing, duplicate or reserved names is rejected before any genome runs.
// The first genome-fatal error cancels the rest and is returned as a
// *GenomeError.
func (s *Service) Build(ctx context.Context, genomes []build.Genome) (*Result, error) {
	start := time.Now()
	if err := build.ValidateManifest(genomes); err != nil {
		s.observeBuild("invalid", start)
		return nil, err
	}
	outputs := make([]*GenomeOutput, len(genomes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, genome := range genomes {
		i, genome := i, genome
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := s.BuildGenome(gctx, genome)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.observeBuild("failed", start)
		return nil, err
	}

	sort.Slice(outputs, func(i, j int) bool { return outputs[i].Genome < outputs[j].Genome })
	res := &Result{
		RunID:         uuid.NewString(),
		AlignmentType: s.cfg.AlignmentType,
		Threshold:     s.cfg.MatchThreshold,
		GeneticCode:   s.cfg.GeneticCode,
		Genomes:       outputs,
	}
	s.observeBuild("success", start)
	s.logger.Info("Build finished",
		zap.String("run_id", res.RunID),
		zap.Int("genomes", len(outputs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// BuildGenome runs one genome through reconciliation, falling back to
// assembly extraction when its sequences cannot be linked to its features.
func (s *Service) BuildGenome(ctx context.Context, genome build.Genome) (*GenomeOutput, error) {
	log := logger.WithGenome(s.logger, genome.Name)

	if genome.Annotation == "" {
		return nil, genomeError(genome.Name, "", errs.WrapFatal(errs.ErrNoAnnotation, "repodb", "BuildGenome", "annotation lookup"))
	}
	store, err := gff.Load(genome.Name, genome.Annotation, log)
	if err != nil {
		return nil, genomeError(genome.Name, genome.Annotation, errs.WrapFatal(err, "repodb", "BuildGenome", "annotation load"))
	}
	store.LogCounts(log)

	var out *GenomeOutput
	switch {
	case genome.HasSequences():
		out, err = s.reconcile(genome, store, log)
		if err != nil {
			return nil, genomeError(genome.Name, genome.Sequences, err)
		}
	case genome.Sequences != "":
		log.Warn("Sequence file not found, using genome extraction", zap.String("file", genome.Sequences))
	default:
		log.Info("No sequence file, using genome extraction")
	}

	if out == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err = s.fallback(genome, store, log)
		if err != nil {
			return nil, genomeError(genome.Name, genome.Assembly, err)
		}
	}
	out.Skipped = store.Skipped

	if s.metrics != nil {
		s.metrics.ObserveGenome(out.Genome, string(out.Path), out.Rate, len(out.Records), out.Skipped)
	}
	log.Info("Genome done",
		zap.String("path", string(out.Path)),
		zap.Int("records", len(out.Records)),
		zap.Float64("rate", out.Rate),
	)
	return out, nil
}

// reconcile returns nil without error when the genome must fall back.
func (s *Service) reconcile(genome build.Genome, store *gff.Store, log *zap.Logger) (*GenomeOutput, error) {
	records, err := fasta.ReadFile(genome.Sequences)
	if err != nil {
		return nil, errs.WrapFatal(err, "repodb", "reconcile", "sequence load")
	}
	if len(records) == 0 {
		log.Warn("Sequence file has no records, using genome extraction")
		return nil, nil
	}

	opts := reconcile.DefaultOptions()
	opts.SampleSize = s.cfg.SampleSize
	idx := fasta.NewFieldIndex(records)

	prop := reconcile.Propose(genome.Name, store, idx, opts, log)
	if !prop.Parent.Matched() {
		log.Warn("No feature attribute found in sequence headers, using genome extraction")
		return nil, nil
	}

	threshold := s.cfg.MatchThreshold
	ext, err := reconcile.Extract(genome.Name, store, records, idx, prop.Parent, threshold, opts, log)
	if err != nil {
		return nil, errs.WrapFatal(err, "repodb", "reconcile", "criteria application")
	}
	if ext.Below() {
		return nil, nil
	}

	rec := reconcile.Recover(genome.Name, store, records, ext.Claimed, log)
	rate := reconcile.CombinedRate(ext.Matched, len(rec.Records), ext.Total)
	if !reconcile.MeetsThreshold(ext.Matched+len(rec.Records), ext.Total, threshold) {
		log.Warn("Combined match rate below threshold, using genome extraction", zap.Float64("rate", rate))
		return nil, nil
	}

	criteria := ext.Criteria
	return &GenomeOutput{
		Genome:      genome.Name,
		Path:        PathMatched,
		Records:     append(ext.Records, rec.Records...),
		Lines:       append(ext.Lines, rec.Lines...),
		Criteria:    &criteria,
		FeatureType: ext.FeatureType,
		Total:       ext.Total,
		Matched:     ext.Matched,
		Recovered:   len(rec.Records),
		Rate:        rate,
	}, nil
}

func (s *Service) fallback(genome build.Genome, store *gff.Store, log *zap.Logger) (*GenomeOutput, error) {
	if genome.Assembly == "" {
		return nil, errs.WrapFatal(errs.ErrNoAssembly, "repodb", "fallback", "assembly lookup")
	}
	contigs, err := fasta.ReadContigs(genome.Assembly)
	if err != nil {
		return nil, errs.WrapFatal(fmt.Errorf("%w: %w", errs.ErrNoAssembly, err), "repodb", "fallback", "assembly load")
	}

	res, err := extract.Extract(genome.Name, store, contigs, extract.Options{
		AlignmentType: s.cfg.AlignmentType,
		GeneticCode:   s.cfg.GeneticCode,
	}, log)
	if err != nil {
		return nil, err
	}
	return &GenomeOutput{
		Genome:      genome.Name,
		Path:        PathFallback,
		Records:     res.Records,
		Lines:       res.Lines,
		FeatureType: res.ParentType,
		Total:       len(res.Records),
	}, nil
}

func (s *Service) observeBuild(status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveBuild(status, time.Since(start))
	}
}
