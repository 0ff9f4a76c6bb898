package reconcile

import (
	"sort"
	"strings"

	"genedb/core/fasta"
	"genedb/core/gff"

	"go.uber.org/zap"
)

var (
	parentTypes     = []string{"gene", "mRNA"}
	subfeatureTypes = []string{"CDS", "exon", "UTR"}
)

func isOneOf(typ string, set []string) bool {
	for _, t := range set {
		if strings.EqualFold(t, typ) {
			return true
		}
	}
	return false
}

// IsParentType reports whether typ is a gene or mRNA type.
func IsParentType(typ string) bool {
	return isOneOf(typ, parentTypes)
}

// Propose samples every parent and subfeature type in the store against the
// sequence headers and ranks the resulting candidates. No criteria are fixed
// at this stage; each type is evaluated independently.
func Propose(genome string, store *gff.Store, idx *fasta.FieldIndex, opts Options, log *zap.Logger) Proposal {
	var parents, subs []*MatchResult

	for _, typ := range store.Types() {
		switch {
		case isOneOf(typ, parentTypes):
			parents = append(parents, Sample(genome, typ, store.ByType(typ), idx, opts))
		case isOneOf(typ, subfeatureTypes):
			subs = append(subs, Sample(genome, typ, store.ByType(typ), idx, opts))
		}
	}

	rankResults(parents)
	rankResults(subs)

	var p Proposal
	p.Results = append(append(p.Results, parents...), subs...)
	if len(parents) > 0 && parents[0].Matched() {
		p.Parent = parents[0]
	}
	if len(subs) > 0 && subs[0].Matched() {
		p.Subfeature = subs[0]
	}

	logBest(log, "parent", p.Parent)
	logBest(log, "subfeature", p.Subfeature)
	return p
}

func logBest(log *zap.Logger, group string, r *MatchResult) {
	if r == nil {
		log.Warn("No feature type matched", zap.String("group", group))
		return
	}
	best := r.best()
	log.Info("Best feature type",
		zap.String("group", group),
		zap.String("type", r.FeatureType),
		zap.String("feature_key", best.FeatureKey),
		zap.Int("field_index", best.FieldIndex),
		zap.String("source", string(best.Source)),
		zap.String("field_key", best.FieldKey),
		zap.Int("count", best.Count),
	)
}

// Sample runs the sampling phase for one feature type.
func Sample(genome, typ string, features []*gff.Feature, idx *fasta.FieldIndex, opts Options) *MatchResult {
	if n := opts.SampleSize; n > 0 && len(features) > n {
		features = features[:n]
	}

	keep := opts.filter()
	values := make(map[Criteria]map[string]struct{})
	for _, f := range features {
		for _, d := range matchFeature(typ, f, idx, keep) {
			c := d.criteria()
			if values[c] == nil {
				values[c] = make(map[string]struct{})
			}
			values[c][d.Value] = struct{}{}
		}
	}

	result := &MatchResult{Genome: genome, FeatureType: typ}
	if len(values) == 0 {
		return result
	}

	result.Candidates = make([]Candidate, 0, len(values))
	for c, vs := range values {
		result.Candidates = append(result.Candidates, Candidate{Criteria: c, Count: len(vs)})
	}
	sortCandidates(result.Candidates)

	best := result.Candidates[0].Criteria
	result.Criteria = &best
	result.Values = values[best]
	return result
}

// matchFeature finds every header field holding one of the feature's
// attribute values.
func matchFeature(typ string, f *gff.Feature, idx *fasta.FieldIndex, keep func(string) bool) []MatchDetail {
	var details []MatchDetail
	for i := 0; i < f.Attributes.Len(); i++ {
		attr := f.Attributes.At(i)
		if !keep(attr.Value) {
			continue
		}
		for _, hit := range idx.Lookup(attr.Value) {
			details = append(details, MatchDetail{
				FeatureType:  typ,
				FeatureKey:   attr.Key,
				FeatureIndex: i,
				Field:        hit.Field,
				Value:        attr.Value,
			})
		}
	}
	return details
}

func sortCandidates(cs []Candidate) {
	sort.Slice(cs, func(i, j int) bool {
		return candidateLess(cs[i], cs[j])
	})
}

// candidateLess is a total order: priority, then support, then positions
// and keys so the ranking never depends on map iteration.
func candidateLess(a, b Candidate) bool {
	if pa, pb := a.Priority(), b.Priority(); pa != pb {
		return pa < pb
	}
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	if a.FeatureIndex != b.FeatureIndex {
		return a.FeatureIndex < b.FeatureIndex
	}
	if a.FieldIndex != b.FieldIndex {
		return a.FieldIndex < b.FieldIndex
	}
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	if a.FeatureKey != b.FeatureKey {
		return a.FeatureKey < b.FeatureKey
	}
	return a.FieldKey < b.FieldKey
}

// rankResults orders one group of type results. Types without a candidate
// sort last.
func rankResults(rs []*MatchResult) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.Matched() != b.Matched() {
			return a.Matched()
		}
		if !a.Matched() {
			return a.FeatureType < b.FeatureType
		}
		ca, cb := a.best(), b.best()
		if pa, pb := ca.Priority(), cb.Priority(); pa != pb {
			return pa < pb
		}
		if ca.Count != cb.Count {
			return ca.Count > cb.Count
		}
		return a.FeatureType < b.FeatureType
	})
}
