package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"genedb/core/errs"
	"genedb/core/fasta"
	"genedb/core/geneticcode"
	"genedb/core/gff"

	"go.uber.org/zap"
)

// Alignment types.
const (
	Peptide    = "pep"
	Nucleotide = "cds"
)

// Options selects the output alphabet.
type Options struct {
	AlignmentType string
	GeneticCode   int
}

// Gene is a parent id with the coding segments that reference it.
type Gene struct {
	ParentID string
	Segments []*gff.Feature
}

// Result is the extracted sequence set of one genome.
type Result struct {
	Records []fasta.Record
	Lines   []string

	// SubfeatureType is CDS, or exon when no CDS carried a Parent.
	SubfeatureType string
	ParentType     string
	ParentKey      string
}

// Group collects CDS features by Parent, falling back to exons when no CDS has
// a parent. A comma-separated Parent attaches the segment to each parent.
// Genes keep the order their first segment appears in.
func Group(store *gff.Store, log *zap.Logger) ([]Gene, string, error) {
	if genes := groupByParent(store, "CDS"); len(genes) > 0 {
		return genes, "CDS", nil
	}
	log.Warn("No CDS with a Parent attribute, falling back to exon")
	if genes := groupByParent(store, "exon"); len(genes) > 0 {
		return genes, "exon", nil
	}
	return nil, "", errs.WrapFatal(errs.ErrNoGeneModel, "extract", "Group", "gene model grouping")
}

func groupByParent(store *gff.Store, typ string) []Gene {
	var genes []Gene
	pos := make(map[string]int)
	for _, f := range store.ByTypeFold(typ) {
		parents, ok := f.Attributes.Get("Parent")
		if !ok {
			continue
		}
		for _, p := range strings.Split(parents, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			i, seen := pos[p]
			if !seen {
				i = len(genes)
				pos[p] = i
				genes = append(genes, Gene{ParentID: p})
			}
			genes[i].Segments = append(genes[i].Segments, f)
		}
	}
	return genes
}

// InferParent finds the feature type whose ID is a parent id, defaulting to
// gene, and the attribute key of that type holding a parent id, defaulting to
// ID.
func InferParent(store *gff.Store, genes []Gene) (typ, key string) {
	ids := make(map[string]bool, len(genes))
	for _, g := range genes {
		ids[g.ParentID] = true
	}

	typ = "gene"
	for i := range store.Features {
		f := &store.Features[i]
		if id, ok := f.Attributes.Get("ID"); ok && ids[id] {
			typ = f.Type
			break
		}
	}

	key = "ID"
	for _, f := range store.ByType(typ) {
		for i := 0; i < f.Attributes.Len(); i++ {
			if a := f.Attributes.At(i); ids[a.Value] {
				return typ, a.Key
			}
		}
	}
	return typ, key
}

// Extract builds one sequence per gene from the assembly contigs. Segments are
// joined in coordinate order, reverse-complemented on the minus strand, and
// translated when the alignment type is peptide.
func Extract(genome string, store *gff.Store, contigs map[string][]byte, opts Options, log *zap.Logger) (*Result, error) {
	genes, subType, err := Group(store, log)
	if err != nil {
		return nil, err
	}
	parentType, parentKey := InferParent(store, genes)
	log.Info("Extracting genes from assembly",
		zap.Int("genes", len(genes)),
		zap.String("subfeature_type", subType),
		zap.String("parent_type", parentType),
		zap.String("parent_key", parentKey),
	)

	parents := make(map[string]*gff.Feature)
	for _, f := range store.ByType(parentType) {
		if v, ok := f.Attributes.Get(parentKey); ok {
			if _, seen := parents[v]; !seen {
				parents[v] = f
			}
		}
	}

	table := geneticcode.Lookup(opts.GeneticCode)
	res := &Result{SubfeatureType: subType, ParentType: parentType, ParentKey: parentKey}

	for _, g := range genes {
		nt, err := assemble(g, contigs, log)
		if err != nil {
			return nil, err
		}
		if len(nt) == 0 {
			log.Warn("Gene produced no sequence, skipping", zap.String("parent", g.ParentID))
			continue
		}

		seq := nt
		if opts.AlignmentType == Peptide {
			pep, partial := table.Translate(nt)
			if partial {
				log.Warn("Coding length not a multiple of three, trailing bases dropped",
					zap.String("parent", g.ParentID),
					zap.Int("length", len(nt)),
				)
			}
			seq = pep
		}

		id := genome + "|" + g.ParentID
		res.Records = append(res.Records, fasta.Record{ID: id, Seq: seq})
		if pf, ok := parents[g.ParentID]; ok {
			res.Lines = append(res.Lines, pf.Rewrite(id))
		} else {
			res.Lines = append(res.Lines, span(g, parentType).Rewrite(id))
		}
	}
	return res, nil
}

// assemble concatenates a gene's segments. Out-of-range segments are skipped;
// a segment on an unknown contig fails the genome.
func assemble(g Gene, contigs map[string][]byte, log *zap.Logger) ([]byte, error) {
	segs := append([]*gff.Feature(nil), g.Segments...)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })

	size := 0
	for _, s := range segs {
		size += s.Len()
	}
	nt := make([]byte, 0, size)
	for _, s := range segs {
		contig, ok := contigs[s.Contig]
		if !ok {
			return nil, errs.WrapFatal(
				fmt.Errorf("%w: contig %s for %s", errs.ErrMissingContig, s.Contig, g.ParentID),
				"extract", "Extract", "segment lookup")
		}
		if s.Start == 0 || s.Start > s.End || s.End > len(contig) {
			log.Warn("Segment outside contig bounds, skipping",
				zap.String("parent", g.ParentID),
				zap.String("contig", s.Contig),
				zap.Int("start", s.Start),
				zap.Int("end", s.End),
				zap.Int("contig_length", len(contig)),
			)
			continue
		}
		nt = append(nt, contig[s.Start-1:s.End]...)
	}

	if len(segs) > 0 && segs[0].Strand == '-' {
		return geneticcode.ReverseComplement(nt), nil
	}
	return bytes.ToUpper(nt), nil
}

// span synthesizes a parent feature covering every segment.
func span(g Gene, typ string) *gff.Feature {
	first := g.Segments[0]
	f := &gff.Feature{Contig: first.Contig, Type: typ, Start: first.Start, End: first.End, Strand: first.Strand}
	for _, s := range g.Segments[1:] {
		if s.Start < f.Start {
			f.Start = s.Start
		}
		if s.End > f.End {
			f.End = s.End
		}
	}
	return f
}
