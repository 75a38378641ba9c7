// Package listing issues identifiers for exclusive listings and reads listing records.
//
// # Identifier Partition
//
// The identifier space is shared with an external feed that owns a high range.
// Identifiers issued here are confined below a configurable partition threshold,
// so the two sources never collide without any coordination between them.
//
// Allocation increments a dedicated counter row (listing_id_counters) with a single
// conditional UPDATE inside a transaction, then reads the new value back. It never
// derives identifiers from max(id)+1. When the counter cannot be written or the
// partition is exhausted, Allocate fails with an AllocationFailure and callers must
// not substitute a guessed value.
//
// PeekNext is an advisory preview and is not safe for correctness decisions.
//
// # Records
//
// Provider gives read-only access to the listings table; media naming uses the
// listing key and address fields it returns.
package listing
