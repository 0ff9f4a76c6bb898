package reconcile

import (
	"genedb/core/fasta"
)

// Feature attribute priorities, lowest wins.
const (
	PriorityLeadingID = iota
	PriorityID
	PriorityParent
	PriorityOther
)

// Criteria is the committed pairing between a feature attribute and a
// sequence header field. Once chosen for a feature type it is applied to
// every feature of that type.
type Criteria struct {
	// FeatureKey is the attribute key read from each feature.
	FeatureKey string `json:"feature_key"`

	// FeatureIndex is the attribute position the key was seen at in the sample.
	FeatureIndex int `json:"feature_index"`

	// FieldIndex is the header field position to compare against.
	FieldIndex int `json:"field_index"`

	// Source is the header part the field comes from.
	Source fasta.Source `json:"source"`

	// FieldKey is the header field key, e.g. "field_0" or "gene".
	FieldKey string `json:"field_key"`
}

// Priority ranks the attribute side of the criteria.
func (c Criteria) Priority() int {
	switch c.FeatureKey {
	case "ID":
		if c.FeatureIndex == 0 {
			return PriorityLeadingID
		}
		return PriorityID
	case "Parent":
		return PriorityParent
	default:
		return PriorityOther
	}
}

// MatchDetail is a single attribute value found in a header field.
type MatchDetail struct {
	FeatureType  string
	FeatureKey   string
	FeatureIndex int
	Field        fasta.Field
	Value        string
}

func (d MatchDetail) criteria() Criteria {
	return Criteria{
		FeatureKey:   d.FeatureKey,
		FeatureIndex: d.FeatureIndex,
		FieldIndex:   d.Field.Index,
		Source:       d.Field.Source,
		FieldKey:     d.Field.Key,
	}
}

// Candidate is a criteria tuple supported by sample matches.
type Candidate struct {
	Criteria

	// Count is the number of distinct values supporting the tuple.
	Count int `json:"count"`
}

// MatchResult is the outcome of sampling one feature type of a genome.
type MatchResult struct {
	Genome      string `json:"genome"`
	FeatureType string `json:"feature_type"`

	// Criteria is the best candidate, nil when nothing matched.
	Criteria *Criteria `json:"criteria,omitempty"`

	// Values holds the sample values supporting Criteria.
	Values map[string]struct{} `json:"-"`

	// Candidates are ranked best first.
	Candidates []Candidate `json:"candidates"`
}

// Matched reports whether any candidate survived.
func (r *MatchResult) Matched() bool {
	return r != nil && r.Criteria != nil
}

func (r *MatchResult) best() Candidate {
	return r.Candidates[0]
}

// Proposal holds the winning parent-type and subfeature-type results.
// Only Parent drives extraction.
type Proposal struct {
	Parent     *MatchResult
	Subfeature *MatchResult

	// Results is every evaluated type, ranked within its group.
	Results []*MatchResult
}

// Options tunes the sampling phase.
type Options struct {
	// SampleSize is how many leading features of each type are sampled.
	SampleSize int

	// Stopwords are attribute values never considered as keys.
	Stopwords []string
}

// DefaultStopwords are generic tokens that appear in both files without
// identifying anything.
var DefaultStopwords = []string{"mRNA", "tRNA", "rRNA", "region", "gene", "transcript"}

// DefaultOptions returns the standard sampling options.
func DefaultOptions() Options {
	return Options{
		SampleSize: 20,
		Stopwords:  DefaultStopwords,
	}
}

func (o Options) filter() func(string) bool {
	stop := make(map[string]struct{}, len(o.Stopwords))
	for _, w := range o.Stopwords {
		stop[w] = struct{}{}
	}
	return func(v string) bool {
		if v == "" {
			return false
		}
		_, skip := stop[v]
		return !skip
	}
}

// Extraction is the result of applying committed criteria to a genome.
type Extraction struct {
	FeatureType string
	Criteria    Criteria

	// Records are the kept sequences renamed to <genome>|<id>.
	Records []fasta.Record

	// Lines are canonical feature lines, one per kept record.
	Lines []string

	// Claimed holds the original ids of kept records.
	Claimed map[string]bool

	Total   int
	Matched int
	Rate    float64

	below bool
}

// Below reports whether the match rate missed the threshold, in which case
// Records and Lines are empty.
func (e *Extraction) Below() bool {
	return e.below
}

// Recovery holds records claimed by direct id lookup.
type Recovery struct {
	Records []fasta.Record
	Lines   []string

	// Orphans counts gene and mRNA features with no sequence record.
	Orphans int
}

// MeetsThreshold reports whether hits/total reaches threshold percent. The
// comparison is done on integers so exact percentages are never lost to
// rounding.
func MeetsThreshold(hits, total, threshold int) bool {
	return hits*100 >= threshold*total
}

// CombinedRate is (matched + recovered) / total as a percentage, capped at 100.
func CombinedRate(matched, recovered, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(matched+recovered) / float64(total) * 100
	if rate > 100 {
		return 100
	}
	return rate
}
