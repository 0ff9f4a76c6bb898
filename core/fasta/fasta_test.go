package fasta

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	in := ">seq1 some description here\nACGT\n  acgt  \n\n>seq2\r\nMKV\n>seq3 \n"
	records, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "seq1", records[0].ID)
	assert.Equal(t, "some description here", records[0].Desc)
	assert.Equal(t, []byte("ACGTacgt"), records[0].Seq)

	assert.Equal(t, "seq2", records[1].ID)
	assert.Empty(t, records[1].Desc)
	assert.Equal(t, []byte("MKV"), records[1].Seq)

	assert.Equal(t, "seq3", records[2].ID)
	assert.Empty(t, records[2].Seq)
}

func TestReadOrphanSequence(t *testing.T) {
	_, err := Read(strings.NewReader("ACGT\n>seq1\nAC\n"))
	assert.ErrorIs(t, err, ErrOrphanSequence)

	_, err = Read(strings.NewReader("\n\nACGT\n"))
	assert.ErrorIs(t, err, ErrOrphanSequence)
	assert.ErrorContains(t, err, "line 3")

	records, err := Read(strings.NewReader("\n  \n>seq1\nAC\n"))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestReadFileGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fa.gz")

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(">c1\nAAAA\n>c2\nCCCC\n>c1\nGGGG\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	records, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	contigs, err := ReadContigs(path)
	require.NoError(t, err)
	assert.Len(t, contigs, 2)
	assert.Equal(t, []byte("AAAA"), contigs["c1"])

	_, err = ReadFile(filepath.Join(dir, "missing.fa"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	records := []Record{
		{ID: "g|a", Desc: "desc", Seq: []byte("ABCDEFG")},
		{ID: "g|b", Seq: []byte("XY")},
	}

	t.Run("unwrapped", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, records, 0))
		assert.Equal(t, ">g|a desc\nABCDEFG\n>g|b\nXY\n", buf.String())
	})

	t.Run("wrapped", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, records, 3))
		assert.Equal(t, ">g|a desc\nABC\nDEF\nG\n>g|b\nXY\n", buf.String())
	})
}

func TestRename(t *testing.T) {
	r := Record{ID: "a", Desc: "d", Seq: []byte("M")}
	renamed := r.Rename("g|a")
	assert.Equal(t, "g|a", renamed.ID)
	assert.Equal(t, "a", r.ID)
	assert.Equal(t, "d", renamed.Desc)
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		id   string
		desc string
		want Fields
	}{
		{
			name: "plain id",
			id:   "AT1G01010.1",
			want: Fields{{Source: SourceID, Index: 0, Key: "field_0", Value: "AT1G01010.1"}},
		},
		{
			name: "pipe id with labelled description",
			id:   `"sp|P12345|NAME"`,
			desc: "gene=abc [locus_tag=XY_01] protein",
			want: Fields{
				{Source: SourceID, Index: 0, Key: "field_0", Value: "sp"},
				{Source: SourceID, Index: 1, Key: "field_1", Value: "P12345"},
				{Source: SourceID, Index: 2, Key: "field_2", Value: "NAME"},
				{Source: SourceDesc, Index: 3, Key: "gene", Value: "abc"},
				{Source: SourceDesc, Index: 4, Key: "locus_tag", Value: "XY_01"},
				{Source: SourceDesc, Index: 5, Key: "field_5", Value: "protein"},
			},
		},
		{
			name: "empty tokens dropped",
			id:   "a||b",
			desc: "  ",
			want: Fields{
				{Source: SourceID, Index: 0, Key: "field_0", Value: "a"},
				{Source: SourceID, Index: 1, Key: "field_1", Value: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitFields(tt.id, tt.desc)
			assert.Equal(t, tt.want, got)
			for i, f := range got {
				assert.Equal(t, i, f.Index)
			}
		})
	}
}

func TestFieldIndex(t *testing.T) {
	records := []Record{
		{ID: "m1", Desc: "gene=g1"},
		{ID: "m2", Desc: "gene=g1 extra"},
	}
	idx := NewFieldIndex(records)

	assert.Equal(t, 2, idx.Len())
	hits := idx.Lookup("g1")
	require.Len(t, hits, 2)
	assert.Equal(t, 0, hits[0].Record)
	assert.Equal(t, 1, hits[1].Record)
	assert.Equal(t, "gene", hits[0].Field.Key)
	assert.Equal(t, 1, hits[0].Field.Index)
	assert.Empty(t, idx.Lookup("nope"))

	f, ok := idx.Fields(1).At(2)
	require.True(t, ok)
	assert.Equal(t, "extra", f.Value)
	_, ok = idx.Fields(1).At(9)
	assert.False(t, ok)
}
