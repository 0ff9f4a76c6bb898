// Package gff parses tab-separated genome annotation files into per-genome
// feature stores and renders the canonical nine-column lines genedb emits.
//
// Parsing is tolerant: annotation exporters disagree on almost everything, so
// a line with too few columns or an unusable coordinate is logged and skipped
// instead of failing the genome.
//
// Attributes keep their column order because reconciliation ranks an ID
// attribute in first position above the same key anywhere else.
package gff
