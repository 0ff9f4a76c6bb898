// Package server holds the HTTP server configuration.
//
// The serve command exposes build run history over HTTP. This package defines
// the port, the optional API key protecting the API, and whether Prometheus
// metrics are exposed.
package server
