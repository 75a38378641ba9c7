// Package reconcile provides a generic engine for detecting and repairing drift
// between an index and the object store it points into.
//
// # Architecture
//
//  1. Adapter: model-specific loading of index entries, existence probing and
//     per-entry cleanup. See feature/media/reconcile for the photo adapter.
//
//  2. Plan: every entry in scope is probed with bounded concurrency and a
//     per-probe timeout. Entries confirmed missing become clean actions; timeouts
//     and probe errors become ProbeErrors and are never cleaned.
//
//  3. Apply: actions run only when the options are confirmed and not a dry run.
//     Each clean is atomic for its entry, so an interrupted pass loses progress only.
//
// No lock is held across a pass. Concurrent passes over the same scope are
// collapsed with singleflight.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(reconcile.Spec{
//	    Adapter:      adapter,
//	    Concurrency:  8,
//	    ProbeTimeout: 5 * time.Second,
//	}, logger)
//
//	report, err := engine.Reconcile(ctx, reconcile.ScopeAll, reconcile.ReconcileOptions{Confirmed: true})
package reconcile
