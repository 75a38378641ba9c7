package summary

import "time"

// Summary is the derived per-listing photo summary. It is only ever written by Recompute.
// Version grows by one on every recompute and orders copies held by the mirror.
type Summary struct {
	ListingID       int64     `gorm:"primaryKey;autoIncrement:false" json:"listing_id"`
	PhotoCount      int       `gorm:"not null;default:0" json:"photo_count"`
	PrimaryPhotoURL *string   `gorm:"size:512" json:"primary_photo_url"`
	Version         int64     `gorm:"not null;default:0" json:"version"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name used by Summary.
func (Summary) TableName() string {
	return "listing_summaries"
}
