package cmd

import (
	"fmt"
	"os"

	"genedb/core/build"
	"genedb/core/fasta"
	"genedb/core/gff"
	"genedb/core/logger"
	"genedb/core/reconcile"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var inspectJSON bool

// inspectCmd shows how one genome's annotation would be linked to its sequences.
var inspectCmd = &cobra.Command{
	Use:   "inspect <genome>",
	Short: "Show the ranked attribute/header pairings for a genome",
	Long: `Samples the genome's annotation against its sequence headers and lists every
candidate pairing per feature type, best first. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the ranked results as JSON on stdout")
	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	genome, err := build.Find(cfg.Genomes, args[0])
	if err != nil {
		return err
	}
	if !genome.HasSequences() {
		return fmt.Errorf("genome %s has no sequence file to inspect", genome.Name)
	}

	log := logger.WithGenome(logg, genome.Name)
	store, err := gff.Load(genome.Name, genome.Annotation, log)
	if err != nil {
		return err
	}
	store.LogCounts(log)

	records, err := fasta.ReadFile(genome.Sequences)
	if err != nil {
		return err
	}

	opts := reconcile.DefaultOptions()
	opts.SampleSize = cfg.Build.SampleSize
	prop := reconcile.Propose(genome.Name, store, fasta.NewFieldIndex(records), opts, log)

	for _, r := range prop.Results {
		for rank, c := range r.Candidates {
			log.Info("Candidate",
				zap.String("type", r.FeatureType),
				zap.Int("rank", rank+1),
				zap.String("feature_key", c.FeatureKey),
				zap.Int("feature_index", c.FeatureIndex),
				zap.String("source", string(c.Source)),
				zap.Int("field_index", c.FieldIndex),
				zap.String("field_key", c.FieldKey),
				zap.Int("count", c.Count),
			)
		}
	}
	if !prop.Parent.Matched() {
		log.Warn("No parent type matched, build would use genome extraction")
	}

	if inspectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(prop.Results)
	}
	return nil
}
