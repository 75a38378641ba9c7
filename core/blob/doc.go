// Package blob turns the raw storage client into the blob collaborator used by
// the media store: objects are addressed by public URL rather than bucket and key.
//
// # Operations
//
//   - Put(path, bytes) returns the public URL of the stored object.
//   - Exists(url) answers found, not found, or an error when the store could not
//     be asked. Callers must treat an error as "unknown".
//   - Delete(url) removes the object.
//
// # Deletion Events
//
// Components interested in objects disappearing outside this service register a
// DeletionHandler with Subscribe. NotifyDeleted dispatches synchronously to every
// handler; it is fed by the bucket notification listener (Listen), the NATS
// subscriber and the webhook in feature/events.
package blob
