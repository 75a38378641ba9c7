// Package cache connects to Redis, which holds a read mirror of listing summaries.
//
// The relational index stays the source of truth. The mirror is written after
// each committed mutation and is safe to lose.
package cache
