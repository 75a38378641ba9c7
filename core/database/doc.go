// Package database handles relational index connections and schema inspection.
//
// It wraps GORM to open the index with the configured driver. MySQL is the production
// default; PostgreSQL is supported for hosted deployments and SQLite backs local runs
// and tests.
//
// # Connect
//
// Connect builds the driver DSN (with read/write timeouts where the driver supports them),
// tunes the connection pool and pings the server before returning.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table in a driver-neutral shape. The integrity
// feature uses it to confirm the media index, summary and counter tables are deployed.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "media_assets")
package database
