// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the supported sync schema profiles.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the schema profile
// (modern, legacy) the Drive-synced records table follows.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the documents feature to select the records table layout.
package server
