// Package reconcile discovers which feature attribute corresponds to which
// sequence header field and uses that pairing to link an annotation file to
// its sequence file.
//
// Annotation exporters disagree on where the shared identifier lives: the
// same id can sit in the header id for one source and deep in the free-text
// description for another. The pairing is therefore discovered per genome
// instead of assumed.
//
// # Phases
//
// Reconciliation runs in two explicit phases:
//
// 1. Propose samples the first features of every gene, mRNA, CDS, exon and
//    UTR type, intersects their attribute values with every split header
//    field, and ranks the resulting Criteria tuples. An ID attribute in first
//    position beats any ID attribute, which beats Parent, which beats the rest.
//    Ties go to the tuple supported by more distinct values.
//
// 2. Extract commits the winning parent-type criteria and applies them to the
//    full feature and sequence sets, keeping every record whose id, header
//    field, or description carries a matched value.
//
// Recover then claims stray records by direct id lookup among gene and mRNA
// features.
//
// # Match rate
//
// Extract reports the kept fraction of records as a percentage. Below the
// configured threshold it returns an empty extraction; callers treat that as
// a signal to fall back to extracting genes from the assembly.
//
// # Usage Example
//
//	idx := fasta.NewFieldIndex(records)
//	proposal := reconcile.Propose(genome, store, idx, reconcile.DefaultOptions(), log)
//	if proposal.Parent == nil {
//	    // no pairing found
//	}
//	ext, err := reconcile.Extract(genome, store, records, idx, proposal.Parent, 90, opts, log)
//	if err == nil && !ext.Below() {
//	    rec := reconcile.Recover(genome, store, records, ext.Claimed, log)
//	    _ = rec
//	}
package reconcile
