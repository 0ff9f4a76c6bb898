// Package fasta reads and writes sequence files and splits record headers
// into candidate fields for reconciliation.
//
// # Headers
//
// A header is split at its first space into an id and a description. Both
// parts are further tokenised by SplitFields into an index-addressed table,
// and NewFieldIndex builds a value lookup over a whole file.
//
// # Compression
//
// ReadFile and ReadContigs decompress transparently when the path ends in
// ".gz".
package fasta
