package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"genedb/core/build"
	"genedb/core/database"
	"genedb/core/storage"
	"genedb/feature/repodb"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildAlignmentType  string
	buildMatchThreshold int
	buildGeneticCode    int
	buildOutputDir      string
	buildPublish        bool
	buildPersist        bool
	buildReport         string
)

// buildCmd builds the repository files for every genome of the manifest.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build per-genome and combined sequence and feature files",
	Long: `Reads the genome manifest from genedb.yaml and, for each genome, links the
sequence file to the annotation or extracts genes from the assembly when the
match rate is under the threshold.

Examples:
  # Peptide repository with the default threshold
  genedb build

  # Nucleotide repository, bacterial code, stricter threshold
  genedb build --alignment-type cds --genetic-code 11 --match-threshold 95

  # Store the run and upload the outputs
  genedb build --persist --publish --report run.json`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildAlignmentType, "alignment-type", "", "Output alphabet: pep or cds")
	buildCmd.Flags().IntVar(&buildMatchThreshold, "match-threshold", 0, "Minimum match rate in percent (0-100)")
	buildCmd.Flags().IntVar(&buildGeneticCode, "genetic-code", 0, "NCBI genetic code used for fallback translation")
	buildCmd.Flags().StringVar(&buildOutputDir, "output-dir", "", "Directory the outputs are written to")
	buildCmd.Flags().BoolVar(&buildPublish, "publish", false, "Upload the outputs to object storage")
	buildCmd.Flags().BoolVar(&buildPersist, "persist", false, "Record the run in the database")
	buildCmd.Flags().StringVar(&buildReport, "report", "", "Write a JSON run report to this file")

	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	// flags win over config only when given
	flags := cmd.Flags()
	if flags.Changed("alignment-type") {
		cfg.Build.AlignmentType = buildAlignmentType
	}
	if flags.Changed("match-threshold") {
		cfg.Build.MatchThreshold = buildMatchThreshold
	}
	if flags.Changed("genetic-code") {
		cfg.Build.GeneticCode = buildGeneticCode
	}
	if flags.Changed("output-dir") {
		cfg.Build.OutputDir = buildOutputDir
	}

	if err := cfg.Build.Validate(logg); err != nil {
		return err
	}
	if err := build.ValidateManifest(cfg.Genomes); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logg.Info("Starting build",
		zap.Int("genomes", len(cfg.Genomes)),
		zap.String("alignment_type", cfg.Build.AlignmentType),
		zap.Int("match_threshold", cfg.Build.MatchThreshold),
		zap.Int("genetic_code", cfg.Build.GeneticCode),
	)

	svc := repodb.NewService(cfg.Build, logg, nil)
	res, err := svc.Build(ctx, cfg.Genomes)
	if err != nil {
		return err
	}

	files, err := repodb.WriteOutputs(cfg.Build.OutputDir, cfg.Build.Prefix, res, cfg.Build.AlignmentType)
	if err != nil {
		return err
	}
	for _, g := range res.Genomes {
		logg.Info("Genome summary",
			zap.String("genome", g.Genome),
			zap.String("path", string(g.Path)),
			zap.Int("records", len(g.Records)),
			zap.Float64("rate", g.Rate),
		)
	}

	if buildReport != "" {
		if err := repodb.WriteReport(buildReport, repodb.NewReport(res, files)); err != nil {
			return err
		}
		logg.Info("Report written", zap.String("file", buildReport))
	}

	if buildPersist {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		store := repodb.NewStore(db)
		if err := store.Migrate(); err != nil {
			return err
		}
		if _, err := store.SaveRun(ctx, res, cfg.Build.OutputDir); err != nil {
			return err
		}
		logg.Info("Run recorded", zap.String("run_id", res.RunID))
	}

	if buildPublish {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}
		keys, err := repodb.NewPublisher(client, cfg.Storage, logg).Publish(ctx, res.RunID, cfg.Build.OutputDir, files)
		if err != nil {
			return fmt.Errorf("outputs written but not published: %w", err)
		}
		logg.Info("Run published", zap.Int("objects", len(keys)))
	}

	logg.Info("Build complete",
		zap.String("run_id", res.RunID),
		zap.String("output_dir", cfg.Build.OutputDir),
		zap.Int("files", len(files)),
	)
	return nil
}
