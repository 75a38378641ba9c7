// Package config provides configuration management for the listing media service.
//
// A .env file (if present) is loaded with godotenv, then Viper maps environment
// variables onto nested keys. Defaults are taken from the `default` struct tags of
// each section, so every key can be overridden without a config file.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials, bucket and public URL
//   - Log: level and format
//   - Allocator: counter name, start value, partition threshold
//   - Media: upload limits, resize edge, transcode quality, worker count
//   - Reconcile: probe concurrency and timeout, schedule
//   - Cache: Redis summary mirror
//   - Messaging: NATS deletion events
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Allocator.PartitionThreshold)
package config
