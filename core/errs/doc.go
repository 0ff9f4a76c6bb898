// Package errs provides error classification for the genedb pipeline.
//
// Every failure falls in one of three classes:
//   - skip: a malformed line or coordinate; logged and dropped.
//   - invalid: configuration or manifest problems detected before work starts.
//   - fatal: a genome cannot produce a gene model; the whole run aborts so that
//     downstream clustering never sees a partial genome set.
//
// Sub-threshold match rates are not errors at all; they are routing decisions
// made by the orchestrator.
package errs
