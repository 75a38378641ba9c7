// Package events receives out-of-band blob deletion notices.
//
// Notices arrive as {"url": "..."} over an HTTP webhook or a NATS subject and are
// handed to the blob store's deletion subscribers. Bucket notifications from the
// object store itself are consumed by the blob store directly.
package events
