// Package reconcile adapts the media index to the generic reconcile engine.
//
// Each indexed asset becomes one item keyed by asset id, scoped by listing id and
// located by its blob URL. Probing asks the blob store whether the URL still
// resolves; cleaning removes the index row through the media store so the order
// sequence and listing summary stay consistent.
package reconcile
