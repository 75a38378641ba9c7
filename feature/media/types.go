package media

import (
	"context"

	"listing-media/feature/listing"
	"listing-media/feature/media/models"
)

// UploadRequest is one file to attach to a listing.
type UploadRequest struct {
	Filename  string
	MimeType  string
	SizeBytes int64
	Bytes     []byte
	// ExplicitOrder, when set, inserts the photo at that 1-based position.
	ExplicitOrder *int
}

// Result is the outcome of one file of a batch upload.
type Result struct {
	Filename string        `json:"filename"`
	Asset    *models.Asset `json:"asset,omitempty"`
	Error    string        `json:"error,omitempty"`
	Kind     string        `json:"kind,omitempty"`
}

// BlobStore is the blob collaborator used by the media store.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// ListingLookup resolves the listing record photos are named after.
type ListingLookup interface {
	Lookup(ctx context.Context, id int64) (*listing.Record, error)
}
