// Package server holds the HTTP server configuration.
//
// The start command owns the fiber app lifecycle; this package only defines the
// listen port, API key, request body limit and shutdown budget it reads.
package server
