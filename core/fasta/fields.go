package fasta

import (
	"strconv"
	"strings"
	"unicode"
)

// Source names the header part a field came from.
type Source string

const (
	SourceID   Source = "id"
	SourceDesc Source = "desc"
)

// Field is a candidate key/value token from a record header.
type Field struct {
	Source Source `json:"source"`
	Index  int    `json:"index"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// Fields is the ordered field table of one header; Fields[i].Index == i.
type Fields []Field

// At returns the field at index i.
func (f Fields) At(i int) (Field, bool) {
	if i < 0 || i >= len(f) {
		return Field{}, false
	}
	return f[i], true
}

var headerNoise = strings.NewReplacer(`"`, "", "[", "", "]", "")

// SplitFields decomposes a header into indexed fields. Quotes and brackets are
// stripped, both parts are split on '|' and whitespace, and description
// indices continue after the last id index. Tokens of the form key=value keep
// their key; others are keyed field_<index>.
func SplitFields(id, desc string) Fields {
	var out Fields
	out = appendTokens(out, SourceID, id)
	out = appendTokens(out, SourceDesc, desc)
	return out
}

func appendTokens(out Fields, src Source, s string) Fields {
	tokens := strings.FieldsFunc(headerNoise.Replace(s), func(r rune) bool {
		return r == '|' || unicode.IsSpace(r)
	})
	for _, tok := range tokens {
		i := len(out)
		field := Field{Source: src, Index: i}
		if k, v, ok := strings.Cut(tok, "="); ok {
			field.Key, field.Value = strings.TrimSpace(k), strings.TrimSpace(v)
		} else {
			field.Key, field.Value = "field_"+strconv.Itoa(i), tok
		}
		out = append(out, field)
	}
	return out
}

// Hit locates a field value in a record set.
type Hit struct {
	Record int
	Field  Field
}

// FieldIndex holds the split fields of every record and an inverted
// value→hits index over them.
type FieldIndex struct {
	fields  []Fields
	byValue map[string][]Hit
}

// NewFieldIndex splits every record header and indexes the values.
func NewFieldIndex(records []Record) *FieldIndex {
	idx := &FieldIndex{
		fields:  make([]Fields, len(records)),
		byValue: make(map[string][]Hit),
	}
	for i, r := range records {
		fs := SplitFields(r.ID, r.Desc)
		idx.fields[i] = fs
		for _, f := range fs {
			idx.byValue[f.Value] = append(idx.byValue[f.Value], Hit{Record: i, Field: f})
		}
	}
	return idx
}

// Lookup returns every field holding value, in record then index order.
func (x *FieldIndex) Lookup(value string) []Hit {
	return x.byValue[value]
}

// Fields returns the split fields of record i.
func (x *FieldIndex) Fields(i int) Fields {
	return x.fields[i]
}

// Len returns the number of indexed records.
func (x *FieldIndex) Len() int {
	return len(x.fields)
}
