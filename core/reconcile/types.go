package reconcile

import "time"

// Presence is the outcome of probing an item's backing object.
type Presence int

const (
	// PresenceUnknown means the probe timed out or failed. Unknown never leads to cleanup.
	PresenceUnknown Presence = iota
	// PresencePresent means the object is retrievable.
	PresencePresent
	// PresenceMissing means the store confirmed the object does not exist.
	PresenceMissing
)

// String returns the lower-case name of the presence value.
func (p Presence) String() string {
	switch p {
	case PresencePresent:
		return "present"
	case PresenceMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Scope restricts a pass to one group of items. ScopeAll covers every item.
type Scope string

// ScopeAll selects every item the adapter knows about.
const ScopeAll Scope = ""

// Item is one index entry whose backing object is probed.
type Item struct {
	// Key uniquely identifies the entry (e.g. an asset id).
	Key string `json:"key"`
	// Scope is the group the entry belongs to (e.g. a listing id).
	Scope Scope `json:"scope"`
	// Locator addresses the backing object (e.g. a blob URL).
	Locator string `json:"locator"`
}

// Spec defines the configuration for a reconciliation engine.
type Spec struct {
	// Adapter provides model-specific loading, probing and cleaning.
	Adapter Adapter

	// Concurrency bounds the number of probes in flight. Values below 1 mean 1.
	Concurrency int

	// ProbeTimeout bounds a single probe. A probe exceeding it is reported as unknown.
	ProbeTimeout time.Duration
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionClean removes an index entry whose backing object is confirmed missing.
	ActionClean ActionType = "clean"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Item is the entry the action applies to.
	Item Item `json:"item"`
}

// ProbeError records an item that could not be resolved or cleaned.
type ProbeError struct {
	Key     string `json:"key"`
	Locator string `json:"locator"`
	Reason  string `json:"reason"`
}

// ReconcilePlan contains probe outcomes and planned actions.
type ReconcilePlan struct {
	// Scope is the scope the plan was built for.
	Scope Scope `json:"scope"`

	// Actions contains planned cleanup operations.
	Actions []Action `json:"actions"`

	// Errors lists items whose presence could not be determined.
	Errors []ProbeError `json:"errors"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// Checked is the number of items probed.
	Checked int `json:"checked"`

	// Present counts items whose object was found.
	Present int `json:"present"`

	// Orphaned counts items whose object is confirmed missing.
	Orphaned int `json:"orphaned"`

	// Unknown counts items whose probe timed out or failed.
	Unknown int `json:"unknown"`
}

// ReconcileOptions controls whether planned actions are executed.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the caller has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}

// Report is the outcome of a reconcile pass.
type Report struct {
	Checked  int          `json:"checked"`
	Orphaned int          `json:"orphaned"`
	Cleaned  int          `json:"cleaned"`
	Errors   []ProbeError `json:"errors"`
	// DryRun is set when no mutations were executed by request.
	DryRun bool `json:"dry_run"`
}
