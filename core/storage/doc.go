// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the blob layer can be
// exercised against the testify mock in core/storage/mocks. Both AWS S3 and self-hosted
// MinIO are supported.
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket provisioning and integrity checks.
//   - PutObject / GetObject / RemoveObject: object lifecycle.
//   - StatObject: cheap existence probe used by the reconciler.
//   - ListObjects: prefix listing for structure checks.
//   - ListenBucketNotification: event stream used to detect out-of-band deletions.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "listing-media")
package storage
