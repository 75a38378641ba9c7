// Package apperror defines the error taxonomy shared by the listing media features.
//
// Every failure that crosses a feature boundary is an *Error carrying a Kind. Callers
// branch on the kind with errors.Is against the sentinel values rather than on messages:
//
//	if errors.Is(err, apperror.ErrCapacity) {
//	    // caller must delete before adding more
//	}
//
// # Kinds
//
//   - Validation: bad input (size, type, missing field). Never retried.
//   - Capacity: the per-listing asset cap is reached.
//   - TransientStorage: blob write or transcode failure; the operation was rolled back
//     and is safe to retry in full.
//   - ConsistencyDrift: the index references an unreachable blob. Resolved by the reconciler.
//   - AllocationFailure: the durable identifier counter is unavailable or exhausted.
//   - NotFound: the referenced listing or asset does not exist.
package apperror
