// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithGenome tags every entry of a per-genome pipeline with the genome name so
// parallel builds stay readable. WithRayID extracts the RayID (request id)
// from a Fiber context so all logs of one HTTP request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Build started")
//
//	gl := logger.WithGenome(log, "ecoli")
//	gl.Warn("Skipping annotation line", zap.Int("line", 12))
package logger
