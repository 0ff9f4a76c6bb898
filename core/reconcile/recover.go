package reconcile

import (
	"strings"

	"genedb/core/fasta"
	"genedb/core/gff"

	"go.uber.org/zap"
)

// Recover claims records the criteria missed by looking their bare id up
// among gene and mRNA features. Each record id is recovered at most once.
func Recover(genome string, store *gff.Store, records []fasta.Record, claimed map[string]bool, log *zap.Logger) *Recovery {
	table := make(map[string]*gff.Feature)
	var parents []*gff.Feature
	for _, typ := range parentTypes {
		parents = append(parents, store.ByTypeFold(typ)...)
	}
	for _, f := range parents {
		raw, ok := parentKey(f)
		if !ok {
			continue
		}
		for _, k := range []string{raw, normalizeKey(raw)} {
			if _, seen := table[k]; !seen {
				table[k] = f
			}
		}
	}

	rec := &Recovery{}
	done := make(map[string]bool)
	present := make(map[string]bool, len(records))
	for _, r := range records {
		present[r.ID] = true
		if claimed[r.ID] || done[r.ID] {
			continue
		}
		f, ok := table[r.ID]
		if !ok {
			continue
		}
		done[r.ID] = true

		id := genome + "|" + r.ID
		rec.Records = append(rec.Records, r.Rename(id))
		rec.Lines = append(rec.Lines, f.Rewrite(id))
		log.Debug("Recovered unmatched record", zap.String("id", r.ID), zap.String("type", f.Type))
	}

	for _, f := range parents {
		raw, ok := parentKey(f)
		if !ok {
			continue
		}
		if !present[raw] && !present[normalizeKey(raw)] {
			rec.Orphans++
		}
	}

	log.Info("Unmatched records checked",
		zap.Int("recovered", len(rec.Records)),
		zap.Int("features_without_sequence", rec.Orphans),
	)
	return rec
}

// parentKey is the ID attribute, else the first attribute value.
func parentKey(f *gff.Feature) (string, bool) {
	if v, ok := f.Attributes.Get("ID"); ok {
		return v, true
	}
	if f.Attributes.Len() == 0 {
		return "", false
	}
	return f.Attributes.At(0).Value, true
}

// normalizeKey strips a leading key= and keeps the second '|' segment when
// the value is pipe-qualified.
func normalizeKey(v string) string {
	if _, after, ok := strings.Cut(v, "="); ok {
		v = after
	}
	if parts := strings.Split(v, "|"); len(parts) > 1 {
		v = parts[1]
	}
	return v
}
