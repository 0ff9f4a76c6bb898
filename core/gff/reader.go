package gff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"genedb/core/errs"

	"go.uber.org/zap"
)

// reported feature types in the per-genome summary
var summaryTypes = map[string]bool{"gene": true, "mRNA": true, "CDS": true, "exon": true}

// Load opens path and parses it as the annotation of genome.
func Load(genome, path string, log *zap.Logger) (*Store, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation %s: %w", path, err)
	}
	defer fh.Close()

	store, err := Parse(genome, fh, log.With(zap.String("file", path)))
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation %s: %w", path, err)
	}
	return store, nil
}

// Parse reads annotation lines from r. Lines with fewer than nine columns or
// unusable coordinates are logged and skipped. Reading stops at a ##FASTA
// directive.
func Parse(genome string, r io.Reader, log *zap.Logger) (*Store, error) {
	var (
		features []Feature
		skipped  int
		lineNo   int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "##FASTA") {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		f, err := parseLine(line)
		if err != nil {
			skipped++
			log.Warn("Skipping annotation line",
				zap.Int("line", lineNo),
				zap.String("class", errs.Classify(err).String()),
				zap.Error(err),
			)
			continue
		}
		f.Line = lineNo
		features = append(features, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return newStore(genome, features, skipped), nil
}

func parseLine(line string) (Feature, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < numFields {
		return Feature{}, fmt.Errorf("%w: expected %d tab-separated columns, found %d", errs.ErrParsingFailed, numFields, len(cols))
	}

	start, err := strconv.Atoi(strings.TrimSpace(cols[FieldStart]))
	if err != nil {
		return Feature{}, fmt.Errorf("%w: invalid start coordinate %q", errs.ErrParsingFailed, cols[FieldStart])
	}
	end, err := strconv.Atoi(strings.TrimSpace(cols[FieldEnd]))
	if err != nil {
		return Feature{}, fmt.Errorf("%w: invalid end coordinate %q", errs.ErrParsingFailed, cols[FieldEnd])
	}
	if start < 1 || end < start {
		return Feature{}, fmt.Errorf("%w: invalid span %d..%d", errs.ErrParsingFailed, start, end)
	}

	strand := byte('.')
	if s := strings.TrimSpace(cols[FieldStrand]); s != "" {
		strand = s[0]
	}

	return Feature{
		Contig:     cols[FieldSeqid],
		Source:     cols[FieldSource],
		Type:       cols[FieldType],
		Start:      start,
		End:        end,
		Strand:     strand,
		Attributes: ParseAttributes(cols[FieldAttributes]),
		Raw:        line,
	}, nil
}

// LogCounts logs the gene, mRNA, CDS and exon counts of the store.
func (s *Store) LogCounts(log *zap.Logger) {
	for _, tc := range s.TypeCounts() {
		if summaryTypes[tc.Type] {
			log.Info("Annotation loaded",
				zap.String("genome", s.Genome),
				zap.String("type", tc.Type),
				zap.Int("count", tc.Count),
			)
		}
	}
	if s.Skipped > 0 {
		log.Warn("Annotation lines skipped", zap.String("genome", s.Genome), zap.Int("count", s.Skipped))
	}
}
