package repodb

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"genedb/core/build"
	"genedb/core/fasta"
	"genedb/core/gff"

	"github.com/goccy/go-json"
)

// GenomeFiles returns the per-genome sequence and feature file paths.
func GenomeFiles(dir, genome, alignmentType string) (seq, features string) {
	base := filepath.Join(dir, genome, genome+".genedb")
	return base + "." + alignmentType, base + ".gff"
}

// CombinedFiles returns the repository-wide sequence and feature file paths.
func CombinedFiles(dir, prefix, alignmentType string) (seq, features string) {
	base := filepath.Join(dir, prefix+"."+build.ReservedName)
	return base + "." + alignmentType, base + ".gff"
}

// WriteOutputs writes every genome's files and the combined files, returning
// the written paths. Per-genome sequences are single-line; combined sequences
// wrap at fasta.WrapWidth.
func WriteOutputs(dir, prefix string, res *Result, alignmentType string) ([]string, error) {
	var written []string
	for _, g := range res.Genomes {
		seqPath, gffPath := GenomeFiles(dir, g.Genome, alignmentType)
		if err := os.MkdirAll(filepath.Dir(seqPath), 0o755); err != nil {
			return written, fmt.Errorf("failed to create output directory for %s: %w", g.Genome, err)
		}
		if err := writeFasta(seqPath, g.Records, 0); err != nil {
			return written, err
		}
		if err := writeLines(gffPath, g.Lines); err != nil {
			return written, err
		}
		written = append(written, seqPath, gffPath)
	}

	seqPath, gffPath := CombinedFiles(dir, prefix, alignmentType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return written, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeFasta(seqPath, res.AllRecords(), fasta.WrapWidth); err != nil {
		return written, err
	}
	if err := writeLines(gffPath, res.AllLines()); err != nil {
		return written, err
	}
	return append(written, seqPath, gffPath), nil
}

// Report is the JSON run report.
type Report struct {
	RunID         string    `json:"run_id"`
	AlignmentType string    `json:"alignment_type"`
	Threshold     int       `json:"match_threshold"`
	GeneticCode   int       `json:"genetic_code"`
	Files         []string  `json:"files,omitempty"`
	Genomes       []Summary `json:"genomes"`
}

// NewReport summarizes res.
func NewReport(res *Result, files []string) Report {
	return Report{
		RunID:         res.RunID,
		AlignmentType: res.AlignmentType,
		Threshold:     res.Threshold,
		GeneticCode:   res.GeneticCode,
		Files:         files,
		Genomes:       res.Summaries(),
	}
}

// WriteReport writes the run report as indented JSON.
func WriteReport(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

func writeFasta(path string, records []fasta.Record, width int) error {
	return create(path, func(w io.Writer) error {
		return fasta.Write(w, records, width)
	})
}

func writeLines(path string, lines []string) error {
	return create(path, func(w io.Writer) error {
		return gff.WriteLines(w, lines)
	})
}

func create(path string, fill func(io.Writer) error) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fill(fh); err != nil {
		fh.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return fh.Close()
}
