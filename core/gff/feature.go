package gff

import (
	"sort"
	"strings"
)

// Column positions of a GFF3 line.
const (
	FieldSeqid = iota
	FieldSource
	FieldType
	FieldStart
	FieldEnd
	FieldScore
	FieldStrand
	FieldPhase
	FieldAttributes

	numFields
)

// Attribute is a single key=value pair from the attribute column.
type Attribute struct {
	Key   string
	Value string
}

// Attributes is the attribute column in file order with a key lookup.
// Position matters: reconciliation ranks a key found at index 0 higher
// than the same key found later in the column.
type Attributes struct {
	list  []Attribute
	index map[string]int
}

// Get returns the value stored under key.
func (a Attributes) Get(key string) (string, bool) {
	i, ok := a.index[key]
	if !ok {
		return "", false
	}
	return a.list[i].Value, true
}

// Index returns the position of key in the column, or -1.
func (a Attributes) Index(key string) int {
	if i, ok := a.index[key]; ok {
		return i
	}
	return -1
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a.list)
}

// At returns the attribute at position i.
func (a Attributes) At(i int) Attribute {
	return a.list[i]
}

// ParseAttributes splits an attribute column on ';' and then on the first '='.
// Tokens without '=' are ignored and duplicate keys keep their first value.
func ParseAttributes(col string) Attributes {
	attrs := Attributes{index: make(map[string]int)}
	for _, pair := range strings.Split(col, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if _, dup := attrs.index[k]; dup {
			continue
		}
		attrs.index[k] = len(attrs.list)
		attrs.list = append(attrs.list, Attribute{Key: k, Value: strings.TrimSpace(v)})
	}
	return attrs
}

// Feature is one parsed annotation line.
type Feature struct {
	Contig     string
	Source     string
	Type       string
	Start      int // 1-based, inclusive
	End        int // 1-based, inclusive
	Strand     byte
	Attributes Attributes
	// Raw is the original line, kept for lossless re-emission.
	Raw string
	// Line is the 1-based line number in the source file.
	Line int
}

// Len returns the span length in bases.
func (f *Feature) Len() int {
	return f.End - f.Start + 1
}

// Store holds every feature of one genome.
type Store struct {
	Genome   string
	Features []Feature
	// Skipped counts malformed lines dropped during parsing.
	Skipped int

	byType map[string][]*Feature
	types  []string
}

func newStore(genome string, features []Feature, skipped int) *Store {
	s := &Store{
		Genome:   genome,
		Features: features,
		Skipped:  skipped,
		byType:   make(map[string][]*Feature),
	}
	for i := range s.Features {
		f := &s.Features[i]
		if _, seen := s.byType[f.Type]; !seen {
			s.types = append(s.types, f.Type)
		}
		s.byType[f.Type] = append(s.byType[f.Type], f)
	}
	return s
}

// ByType returns the features of the given type in file order.
func (s *Store) ByType(typ string) []*Feature {
	return s.byType[typ]
}

// ByTypeFold is ByType with a case-insensitive type match.
func (s *Store) ByTypeFold(typ string) []*Feature {
	var out []*Feature
	for _, t := range s.types {
		if strings.EqualFold(t, typ) {
			out = append(out, s.byType[t]...)
		}
	}
	return out
}

// Types returns the feature types in order of first appearance.
func (s *Store) Types() []string {
	return s.types
}

// TypeCount is a per-type feature count.
type TypeCount struct {
	Type  string
	Count int
}

// TypeCounts returns feature counts, largest first, ties by name.
func (s *Store) TypeCounts() []TypeCount {
	counts := make([]TypeCount, 0, len(s.types))
	for _, t := range s.types {
		counts = append(counts, TypeCount{Type: t, Count: len(s.byType[t])})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Type < counts[j].Type
	})
	return counts
}
