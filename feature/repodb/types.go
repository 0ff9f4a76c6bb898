package repodb

import (
	"fmt"

	"genedb/core/errs"
	"genedb/core/fasta"
	"genedb/core/reconcile"
)

// Path is the route a genome took through the build.
type Path string

const (
	// PathMatched means the genome's own sequence file was reconciled.
	PathMatched Path = "matched"
	// PathFallback means sequences were extracted from the assembly.
	PathFallback Path = "fallback"
)

// GenomeOutput is the final record set of one genome. Every record id and
// every feature line attribute is <genome>|<id>.
type GenomeOutput struct {
	Genome string `json:"genome"`
	Path   Path   `json:"path"`

	Records []fasta.Record `json:"-"`
	Lines   []string       `json:"-"`

	// Criteria is set on the matched path only.
	Criteria    *reconcile.Criteria `json:"criteria,omitempty"`
	FeatureType string              `json:"feature_type"`

	Total     int     `json:"total"`
	Matched   int     `json:"matched"`
	Recovered int     `json:"recovered"`
	Rate      float64 `json:"rate"`
	Skipped   int     `json:"skipped_lines"`
}

// Summary is the persisted and reported view of a genome output.
type Summary struct {
	Genome      string              `json:"genome"`
	Path        Path                `json:"path"`
	FeatureType string              `json:"feature_type"`
	Criteria    *reconcile.Criteria `json:"criteria,omitempty"`
	Total       int                 `json:"total"`
	Matched     int                 `json:"matched"`
	Recovered   int                 `json:"recovered"`
	Rate        float64             `json:"rate"`
	Records     int                 `json:"records"`
	Skipped     int                 `json:"skipped_lines"`
}

// Summary drops the record payload.
func (o *GenomeOutput) Summary() Summary {
	return Summary{
		Genome:      o.Genome,
		Path:        o.Path,
		FeatureType: o.FeatureType,
		Criteria:    o.Criteria,
		Total:       o.Total,
		Matched:     o.Matched,
		Recovered:   o.Recovered,
		Rate:        o.Rate,
		Records:     len(o.Records),
		Skipped:     o.Skipped,
	}
}

// Result is a finished build, genomes sorted by name.
type Result struct {
	RunID         string          `json:"run_id"`
	AlignmentType string          `json:"alignment_type"`
	Threshold     int             `json:"match_threshold"`
	GeneticCode   int             `json:"genetic_code"`
	Genomes       []*GenomeOutput `json:"-"`
}

// AllRecords concatenates every genome's records in genome order.
func (r *Result) AllRecords() []fasta.Record {
	var out []fasta.Record
	for _, g := range r.Genomes {
		out = append(out, g.Records...)
	}
	return out
}

// AllLines concatenates every genome's feature lines in genome order.
func (r *Result) AllLines() []string {
	var out []string
	for _, g := range r.Genomes {
		out = append(out, g.Lines...)
	}
	return out
}

// Summaries returns one summary per genome.
func (r *Result) Summaries() []Summary {
	out := make([]Summary, 0, len(r.Genomes))
	for _, g := range r.Genomes {
		out = append(out, g.Summary())
	}
	return out
}

// GenomeError identifies the genome and file a build failed on.
type GenomeError struct {
	Genome string
	File   string
	Class  errs.Class
	Err    error
}

func (e *GenomeError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("genome %s: %v", e.Genome, e.Err)
	}
	return fmt.Sprintf("genome %s (%s): %v", e.Genome, e.File, e.Err)
}

func (e *GenomeError) Unwrap() error {
	return e.Err
}

func genomeError(genome, file string, err error) *GenomeError {
	return &GenomeError{Genome: genome, File: file, Class: errs.Classify(err), Err: err}
}
