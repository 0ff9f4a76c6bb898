package repodb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"genedb/core/build"

	"github.com/stretchr/testify/require"
)

// codon-clean gene body: ATG AAA CCC TAA
const geneBody = "ATGAAACCCTAA"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func row(contig, typ string, start, end int, strand, attrs string) string {
	return fmt.Sprintf("%s\tsrc\t%s\t%d\t%d\t.\t%s\t.\t%s", contig, typ, start, end, strand, attrs)
}

func testConfig() build.Config {
	return build.Config{
		AlignmentType:  "pep",
		MatchThreshold: 90,
		GeneticCode:    1,
		Prefix:         "repo",
		Workers:        2,
		SampleSize:     20,
	}
}

// alphaGenome reconciles fully: mRNA IDs are the sequence ids.
func alphaGenome(t *testing.T, dir string) build.Genome {
	gff := strings.Join([]string{
		"##gff-version 3",
		row("chr1", "gene", 1, 30, "+", "ID=gA"),
		row("chr1", "mRNA", 1, 30, "+", "ID=tA;Parent=gA"),
		row("chr1", "CDS", 1, 30, "+", "Parent=tA"),
		row("chr1", "gene", 40, 60, "-", "ID=gB"),
		row("chr1", "mRNA", 40, 60, "-", "ID=tB;Parent=gB"),
		row("chr1", "CDS", 40, 60, "-", "Parent=tB"),
	}, "\n") + "\n"
	return build.Genome{
		Name:       "alpha",
		Annotation: writeFile(t, dir, "alpha.gff3", gff),
		Sequences:  writeFile(t, dir, "alpha.faa", ">tA protein A\nMKV\n>tB protein B\nMK\nL\n"),
	}
}

// betaGenome has no sequence file and is extracted from its assembly.
func betaGenome(t *testing.T, dir string) build.Genome {
	gff := strings.Join([]string{
		row("chr1", "gene", 1, 12, "+", "ID=gX"),
		row("chr1", "mRNA", 1, 12, "+", "ID=tX;Parent=gX"),
		row("chr1", "CDS", 1, 6, "+", "Parent=tX"),
		row("chr1", "CDS", 7, 12, "+", "Parent=tX"),
	}, "\n") + "\n"
	return build.Genome{
		Name:       "beta",
		Annotation: writeFile(t, dir, "beta.gff3", gff),
		Assembly:   writeFile(t, dir, "beta.fna", ">chr1 assembled\n"+geneBody+"GGGG\n"),
	}
}

// gammaGenome has the given number of genes and sequences for matched of
// them. The remaining records are strays.
func gammaGenome(t *testing.T, dir string, genes, matched int) build.Genome {
	var lines []string
	var contig strings.Builder
	for i := 0; i < genes; i++ {
		start := i*len(geneBody) + 1
		end := start + len(geneBody) - 1
		lines = append(lines,
			row("ctg", "mRNA", start, end, "+", fmt.Sprintf("ID=t%d", i)),
			row("ctg", "CDS", start, end, "+", fmt.Sprintf("Parent=t%d", i)),
		)
		contig.WriteString(geneBody)
	}

	var seqs strings.Builder
	for i := 0; i < matched; i++ {
		fmt.Fprintf(&seqs, ">t%d\nMKP\n", i)
	}
	for i := matched; i < genes; i++ {
		fmt.Fprintf(&seqs, ">stray%d\nMKP\n", i)
	}

	return build.Genome{
		Name:       "gamma",
		Annotation: writeFile(t, dir, "gamma.gff3", strings.Join(lines, "\n")+"\n"),
		Sequences:  writeFile(t, dir, "gamma.faa", seqs.String()),
		Assembly:   writeFile(t, dir, "gamma.fna", ">ctg\n"+contig.String()+"\n"),
	}
}
