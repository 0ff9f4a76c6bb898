package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"genedb/core/fasta"
	"genedb/core/gff"

	"go.uber.org/zap"
)

// Apply runs the committed criteria over every given feature and returns the
// attribute values found at the criteria's header field.
func Apply(features []*gff.Feature, idx *fasta.FieldIndex, c Criteria, opts Options) map[string]struct{} {
	// values at the committed field of every record
	committed := make(map[string]struct{}, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		f, ok := idx.Fields(i).At(c.FieldIndex)
		if ok && f.Source == c.Source && f.Key == c.FieldKey {
			committed[f.Value] = struct{}{}
		}
	}

	keep := opts.filter()
	matched := make(map[string]struct{})
	for _, f := range features {
		v, ok := f.Attributes.Get(c.FeatureKey)
		if !ok || !keep(v) {
			continue
		}
		if _, hit := committed[v]; hit {
			matched[v] = struct{}{}
		}
	}
	return matched
}

// Extract applies the result's criteria to the full feature and sequence sets.
// Each kept record is renamed to <genome>|<id> and paired with one canonical
// feature line. When the match rate is under threshold the returned
// extraction is empty and Below reports true.
func Extract(genome string, store *gff.Store, records []fasta.Record, idx *fasta.FieldIndex, result *MatchResult, threshold int, opts Options, log *zap.Logger) (*Extraction, error) {
	if !result.Matched() {
		return nil, fmt.Errorf("no criteria committed for genome %s", genome)
	}
	c := *result.Criteria
	features := store.ByType(result.FeatureType)

	matched := Apply(features, idx, c, opts)
	log.Info("Criteria applied",
		zap.String("type", result.FeatureType),
		zap.String("feature_key", c.FeatureKey),
		zap.Int("field_index", c.FieldIndex),
		zap.String("source", string(c.Source)),
		zap.String("field_key", c.FieldKey),
		zap.Int("features", len(features)),
		zap.Int("values", len(matched)),
	)

	// first feature carrying each matched value
	byValue := make(map[string]*gff.Feature, len(matched))
	for _, f := range features {
		v, ok := f.Attributes.Get(c.FeatureKey)
		if !ok {
			continue
		}
		if _, hit := matched[v]; !hit {
			continue
		}
		if _, seen := byValue[v]; !seen {
			byValue[v] = f
		}
	}

	sorted := make([]string, 0, len(matched))
	for v := range matched {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)

	ext := &Extraction{
		FeatureType: result.FeatureType,
		Criteria:    c,
		Claimed:     make(map[string]bool),
		Total:       len(records),
	}

	for i, r := range records {
		value, ok := claim(r, idx.Fields(i), matched, sorted)
		if !ok {
			continue
		}
		if ext.Claimed[r.ID] {
			log.Warn("Duplicate sequence id, keeping first", zap.String("id", r.ID))
			continue
		}
		ext.Claimed[r.ID] = true

		id := genome + "|" + r.ID
		ext.Records = append(ext.Records, r.Rename(id))
		ext.Lines = append(ext.Lines, byValue[value].Rewrite(id))
	}

	ext.Matched = len(ext.Records)
	if ext.Total > 0 {
		ext.Rate = float64(ext.Matched) / float64(ext.Total) * 100
	}

	if !MeetsThreshold(ext.Matched, ext.Total, threshold) {
		log.Warn("Match rate below threshold, falling back to genome extraction",
			zap.Float64("rate", ext.Rate),
			zap.Int("threshold", threshold),
		)
		ext.Records, ext.Lines = nil, nil
		ext.below = true
	}
	return ext, nil
}

// claim picks the matched value a record is kept under: its id, else its
// lowest-index field, else the first matched value inside its description.
func claim(r fasta.Record, fields fasta.Fields, matched map[string]struct{}, sorted []string) (string, bool) {
	if _, ok := matched[r.ID]; ok {
		return r.ID, true
	}
	for _, f := range fields {
		if _, ok := matched[f.Value]; ok {
			return f.Value, true
		}
	}
	if r.Desc == "" {
		return "", false
	}
	for _, v := range sorted {
		if strings.Contains(r.Desc, v) {
			return v, true
		}
	}
	return "", false
}
