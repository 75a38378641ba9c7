package models

import "time"

// CategoryPhoto marks assets that take part in the photo sequence.
const CategoryPhoto = "Photo"

// Asset is one row of the media index. URL points at the backing blob.
// OrderIndex is dense and 1-based among a listing's Photo assets.
type Asset struct {
	ID         string    `gorm:"primaryKey;size:36" json:"asset_id"`
	ListingID  int64     `gorm:"not null;index:idx_media_assets_listing_order,priority:1" json:"listing_id"`
	ListingKey string    `gorm:"size:64" json:"listing_key"`
	URL        string    `gorm:"size:512;not null;uniqueIndex" json:"url"`
	Category   string    `gorm:"size:16;not null;default:Photo" json:"category"`
	OrderIndex int       `gorm:"not null;index:idx_media_assets_listing_order,priority:2" json:"order_index"`
	Filename   string    `gorm:"size:255" json:"filename"`
	AltText    string    `gorm:"size:255" json:"alt_text"`
	MimeType   string    `gorm:"size:32" json:"mime_type"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name used by Asset.
func (Asset) TableName() string {
	return "media_assets"
}
