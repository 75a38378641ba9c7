// Package integrity provides deployment health checks.
//
// Unlike the media reconciler, which repairs drift between individual index rows
// and their blobs, this package validates the infrastructure the service needs.
//
// # Checks Provided
//
//   - Structure: the storage bucket exists and holds the photo path prefix.
//   - Schema: the index tables exist and carry every column the models map.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs the structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check.
package integrity
