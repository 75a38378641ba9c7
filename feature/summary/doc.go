// Package summary maintains the denormalized per-listing photo summary.
//
// photo_count is the number of Photo assets of a listing and primary_photo_url is
// the URL of the asset at the lowest order index, or null when there is none.
// Recompute runs inside every transaction that changes a listing's assets, so the
// stored row is never stale and reads never derive it.
//
// After commit the value is copied to an optional Redis mirror. Reads try the
// mirror first and fall back to the listing_summaries table.
package summary
