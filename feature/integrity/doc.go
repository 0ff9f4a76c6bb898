// Package integrity provides health checks for the build environment.
//
// Unlike the 'repodb' package which builds and stores runs, this package only
// inspects what a build depends on.
//
// # Checks Provided
//
//   - Manifest: validates genome names and reports missing annotation, sequence and assembly files, and the route each genome would start on.
//   - Server: validates that the run tables carry every column of the gorm models.
//   - Storage: checks the publish bucket exists and lists published runs.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/manifest : Runs the manifest check.
//   - GET /integrity/server : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
