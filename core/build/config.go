package build

import (
	"fmt"
	"strings"

	"genedb/core/errs"
	"genedb/core/extract"
	"genedb/core/geneticcode"

	"go.uber.org/zap"
)

// Config holds the settings of a repository build.
type Config struct {
	// AlignmentType selects the output alphabet (pep or cds).
	AlignmentType string `mapstructure:"alignment_type" default:"pep"`
	// MatchThreshold is the minimum match rate, in percent, for a genome to
	// use its own sequence file.
	MatchThreshold int `mapstructure:"match_threshold" default:"90"`
	// GeneticCode is the NCBI translation table id used by fallback extraction.
	GeneticCode int `mapstructure:"genetic_code" default:"1"`
	// OutputDir is where per-genome and combined files are written.
	OutputDir string `mapstructure:"output_dir" default:"genedb_output"`
	// Prefix names the combined files (<prefix>.all.<type>).
	Prefix string `mapstructure:"prefix" default:"repo"`
	// Workers bounds how many genomes are processed at once.
	Workers int `mapstructure:"workers" default:"4"`
	// SampleSize is how many leading features of each type are sampled.
	SampleSize int `mapstructure:"sample_size" default:"20"`
}

// Validate rejects unusable settings. An unknown genetic code is not an error:
// it is logged and replaced by the standard code.
func (c *Config) Validate(log *zap.Logger) error {
	switch c.AlignmentType {
	case extract.Peptide, extract.Nucleotide:
	default:
		return invalid("alignment_type must be %q or %q, got %q", extract.Peptide, extract.Nucleotide, c.AlignmentType)
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 100 {
		return invalid("match_threshold must be within 0..100, got %d", c.MatchThreshold)
	}
	if c.Workers < 1 {
		return invalid("workers must be at least 1, got %d", c.Workers)
	}
	if c.SampleSize < 1 {
		return invalid("sample_size must be at least 1, got %d", c.SampleSize)
	}
	if strings.TrimSpace(c.Prefix) == "" {
		return invalid("prefix must not be empty")
	}
	if !geneticcode.Known(c.GeneticCode) {
		log.Warn("Unknown genetic code, using standard table",
			zap.Int("genetic_code", c.GeneticCode),
			zap.Ints("known", geneticcode.IDs()),
		)
		c.GeneticCode = geneticcode.Standard
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errs.WrapInvalid(fmt.Errorf("%w: "+format, append([]any{errs.ErrInvalidConfig}, args...)...), "build", "Validate", "configuration check")
}
