// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings: the listen port and
// the month view cache lifetime.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command when wiring the Fiber application.
package server
