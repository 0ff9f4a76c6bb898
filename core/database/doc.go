// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// from the application's configuration. genedb uses it to keep a history of
// build runs.
//
// # Connect
//
// Connect opens the configured driver and pings it. SQLite is the default so
// a local build needs no server; MySQL suits a shared deployment.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let callers verify that the run history
// tables carry the columns they expect after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run history disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "runs", []string{"id", "status"})
package database
