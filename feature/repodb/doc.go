// Package repodb builds the per-genome sequence and feature files of a
// comparative genomics repository.
//
// For each genome of the manifest the Service parses the annotation and, when
// a sequence file is present, reconciles it against the features: a sampled
// proposal picks the attribute/header-field pairing, the pairing is applied to
// every record, and records the pairing missed are recovered by direct id
// lookup. A genome whose combined match rate stays under the threshold, or
// that has no sequence file, falls back to extracting its genes from the
// assembly.
//
// Genomes are processed concurrently and merged sorted by name, so the same
// inputs always produce the same files.
//
// # Outputs
//
//	<dir>/<genome>/<genome>.genedb.<pep|cds>
//	<dir>/<genome>/<genome>.genedb.gff
//	<dir>/<prefix>.all.<pep|cds>
//	<dir>/<prefix>.all.gff
//
// Runs can be persisted with Store, published to object storage with
// Publisher, and browsed over HTTP through the runs Feature.
package repodb
