package listing

import "time"

// Counter is the durable allocation counter. Value holds the last issued identifier.
type Counter struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     int64  `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides the table name used by Counter.
func (Counter) TableName() string {
	return "listing_id_counters"
}

// Record is the read-only listing row owned by the listing-management subsystem.
// Only the fields used to name photos are mapped.
type Record struct {
	ListingID    int64  `gorm:"column:listing_id;primaryKey" json:"listing_id"`
	ListingKey   string `gorm:"column:listing_key;size:64" json:"listing_key"`
	StreetNumber string `gorm:"column:street_number;size:32" json:"street_number"`
	StreetName   string `gorm:"column:street_name;size:128" json:"street_name"`
	Unit         string `gorm:"column:unit;size:32" json:"unit"`
	City         string `gorm:"column:city;size:64" json:"city"`
	State        string `gorm:"column:state;size:32" json:"state"`
	PostalCode   string `gorm:"column:postal_code;size:16" json:"postal_code"`
}

// TableName overrides the table name used by Record.
func (Record) TableName() string {
	return "listings"
}
