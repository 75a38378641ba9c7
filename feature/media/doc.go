// Package media implements the listing media store.
//
// A photo upload is validated, normalized through the image pipeline, written
// to the blob store and indexed in one transaction per listing. The listing's
// summary row doubles as the lock that serializes writers across replicas, so
// every mutation sees a stable photo count and order sequence and recomputes
// the summary before it commits. Failures after the blob write delete the blob
// again and roll the index back.
//
// Reconciler removes index rows whose blobs were deleted out of band. It runs
// on demand, on a schedule and synchronously for the owning listing when a
// deletion event arrives.
package media
