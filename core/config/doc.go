// Package config provides configuration management for genedb.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file, and the genedb.yaml manifest.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Build: alignment type, match threshold, genetic code, output location
//   - Server: HTTP server settings (port, API key)
//   - Database: run history connection details (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket for published outputs
//   - Log: Logging level and format
//   - Genomes: the genome manifest
//
// Relative paths in the manifest are resolved against the manifest's directory.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Build.MatchThreshold)
package config
