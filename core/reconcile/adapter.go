package reconcile

import "context"

// Adapter defines the interface for model-specific reconciliation logic.
// Each adapter implements how to list index entries, probe their backing objects
// and remove entries that point at nothing.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "media").
	Name() string

	// LoadIndex returns every index entry in scope.
	LoadIndex(ctx context.Context, scope Scope) ([]Item, error)

	// Probe reports whether the item's backing object exists. Implementations
	// should return PresenceUnknown together with the cause on any ambiguous outcome.
	Probe(ctx context.Context, item Item) (Presence, error)

	// Clean removes the entry after re-verifying, under the entry's own lock,
	// that it still exists and its object is still missing. It returns false
	// when nothing was removed because the state changed since the probe.
	Clean(ctx context.Context, item Item) (bool, error)
}
