package extract

import (
	"fmt"
	"strings"
	"testing"

	"genedb/core/errs"
	"genedb/core/gff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// 50 bp: segment [10,20] is CCCCCGGGGGT and [31,40] is TTTTTGGGGG.
var contig = []byte(strings.Repeat("A", 9) + "CCCCCGGGGGT" + strings.Repeat("A", 10) + "TTTTTGGGGG" + strings.Repeat("A", 10))

func store(t *testing.T, lines ...string) *gff.Store {
	t.Helper()
	s, err := gff.Parse("g1", strings.NewReader(strings.Join(lines, "\n")+"\n"), zap.NewNop())
	require.NoError(t, err)
	return s
}

func row(contig, typ string, start, end int, strand, attrs string) string {
	return fmt.Sprintf("%s\tsrc\t%s\t%d\t%d\t.\t%s\t.\t%s", contig, typ, start, end, strand, attrs)
}

func TestExtractMinusStrand(t *testing.T) {
	require.Len(t, contig, 50)
	s := store(t,
		row("ctg", "mRNA", 10, 40, "-", "ID=m1"),
		row("ctg", "CDS", 31, 40, "-", "Parent=m1"),
		row("ctg", "CDS", 10, 20, "-", "Parent=m1"),
	)
	contigs := map[string][]byte{"ctg": contig}

	t.Run("nucleotide", func(t *testing.T) {
		res, err := Extract("g1", s, contigs, Options{AlignmentType: Nucleotide, GeneticCode: 1}, zap.NewNop())
		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Equal(t, "g1|m1", res.Records[0].ID)
		assert.Equal(t, "CCCCCAAAAAACCCCCGGGGG", string(res.Records[0].Seq))
		assert.Equal(t, []string{"ctg\t.\tmRNA\t10\t40\t.\t-\t.\tg1|m1"}, res.Lines)
		assert.Equal(t, "CDS", res.SubfeatureType)
		assert.Equal(t, "mRNA", res.ParentType)
		assert.Equal(t, "ID", res.ParentKey)
	})

	t.Run("peptide", func(t *testing.T) {
		res, err := Extract("g1", s, contigs, Options{AlignmentType: Peptide, GeneticCode: 1}, zap.NewNop())
		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Equal(t, "PPKNPRG", string(res.Records[0].Seq))
	})
}

func TestExtractPlusStrandPartialCodon(t *testing.T) {
	s := store(t,
		row("ctg", "gene", 1, 8, "+", "ID=g1"),
		row("ctg", "CDS", 1, 8, "+", "Parent=g1"),
	)
	core, logs := observer.New(zapcore.WarnLevel)

	res, err := Extract("gA", s, map[string][]byte{"ctg": []byte("atgtgaCC")}, Options{AlignmentType: Peptide, GeneticCode: 2}, zap.New(core))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "MW", string(res.Records[0].Seq))
	assert.Equal(t, 1, logs.FilterMessageSnippet("multiple of three").Len())
}

func TestExtractFallsBackToExon(t *testing.T) {
	s := store(t,
		row("ctg", "exon", 1, 3, "+", "Parent=t1"),
		row("ctg", "exon", 7, 9, "+", "Parent=t1"),
	)
	core, logs := observer.New(zapcore.WarnLevel)

	res, err := Extract("g1", s, map[string][]byte{"ctg": []byte("ATGNNNTAA")}, Options{AlignmentType: Nucleotide}, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, "exon", res.SubfeatureType)
	assert.Equal(t, "gene", res.ParentType)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "ATGTAA", string(res.Records[0].Seq))
	// no parent feature: span of the segments under the default type
	assert.Equal(t, []string{"ctg\t.\tgene\t1\t9\t.\t+\t.\tg1|t1"}, res.Lines)
	assert.Equal(t, 1, logs.FilterMessageSnippet("falling back to exon").Len())
}

func TestExtractNoGeneModel(t *testing.T) {
	s := store(t, row("ctg", "gene", 1, 9, "+", "ID=g1"), row("ctg", "CDS", 1, 9, "+", "ID=c1"))

	_, err := Extract("g1", s, map[string][]byte{"ctg": contig}, Options{}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNoGeneModel)
	assert.True(t, errs.IsFatal(err))
}

func TestExtractMissingContig(t *testing.T) {
	s := store(t, row("other", "CDS", 1, 9, "+", "Parent=m1"))

	_, err := Extract("g1", s, map[string][]byte{"ctg": contig}, Options{}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingContig)
	assert.True(t, errs.IsFatal(err))
}

func TestExtractSkipsBadSegments(t *testing.T) {
	s := store(t,
		row("ctg", "CDS", 1, 3, "+", "Parent=m1"),
		row("ctg", "CDS", 45, 60, "+", "Parent=m1"),
		row("ctg", "CDS", 45, 60, "+", "Parent=m2"),
	)
	core, logs := observer.New(zapcore.WarnLevel)

	res, err := Extract("g1", s, map[string][]byte{"ctg": contig}, Options{AlignmentType: Nucleotide}, zap.New(core))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "g1|m1", res.Records[0].ID)
	assert.Equal(t, "AAA", string(res.Records[0].Seq))
	assert.Equal(t, 2, logs.FilterMessageSnippet("bounds").Len())
	assert.Equal(t, 1, logs.FilterMessageSnippet("no sequence").Len())
}

func TestGroup(t *testing.T) {
	s := store(t,
		row("ctg", "CDS", 20, 30, "+", "Parent=b"),
		row("ctg", "CDS", 1, 10, "+", "Parent=a,b"),
		row("ctg", "cds", 40, 50, "+", "Parent=c"),
		row("ctg", "CDS", 60, 70, "+", "ID=x"),
	)

	genes, typ, err := Group(s, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "CDS", typ)
	require.Len(t, genes, 3)
	assert.Equal(t, "b", genes[0].ParentID)
	assert.Len(t, genes[0].Segments, 2)
	assert.Equal(t, "a", genes[1].ParentID)
	assert.Equal(t, "c", genes[2].ParentID)
}

func TestInferParent(t *testing.T) {
	s := store(t,
		row("ctg", "transcript", 1, 10, "+", "Name=foo;transcript_id=t1"),
		row("ctg", "CDS", 1, 10, "+", "Parent=t1"),
	)
	genes, _, err := Group(s, zap.NewNop())
	require.NoError(t, err)

	typ, key := InferParent(s, genes)
	assert.Equal(t, "gene", typ)
	assert.Equal(t, "ID", key)

	s = store(t,
		row("ctg", "transcript", 1, 10, "+", "ID=t1;alias=t1"),
		row("ctg", "CDS", 1, 10, "+", "Parent=t1"),
	)
	genes, _, err = Group(s, zap.NewNop())
	require.NoError(t, err)

	typ, key = InferParent(s, genes)
	assert.Equal(t, "transcript", typ)
	assert.Equal(t, "ID", key)
}
