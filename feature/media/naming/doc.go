// Package naming derives deterministic, search-friendly object names and alt text
// for listing photos from the listing address and the photo's sequence number.
//
//	listing 42, 12 Main St, Springfield, IL 62701, photo 3
//	  -> listings/2026/10/42/12-main-st-springfield-il-62701-photo-3.webp
//	  -> "Photo 3 of 12 Main St, Springfield, IL 62701"
package naming
