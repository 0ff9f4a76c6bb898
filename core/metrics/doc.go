// Package metrics exposes Prometheus metrics for repository builds: run
// outcomes and durations, per-genome match rates, emitted records and skipped
// annotation lines.
package metrics
