// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: assigns every request a RayID, stored in locals and echoed in the X-Ray-ID header.
//
// RayID is registered first so auth failures are traceable too.
package middleware
