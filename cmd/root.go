package cmd

import (
	"fmt"
	"os"

	"genedb/core/config"
	"genedb/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where .env and genedb.yaml are looked up.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "genedb",
	Short: "Gene repository builder",
	Long: `genedb links each genome's annotation to its sequence records and writes
one peptide or nucleotide file plus one feature file per genome, with
repository-wide concatenations for clustering and search.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is the only place the process exits with
// a failure status.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// console format at debug level gives ISO8601 timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding .env and genedb.yaml")
}
