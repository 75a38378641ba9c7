package listing

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Provider reads listing records from the shared listings table.
type Provider struct {
	db *gorm.DB
}

// NewProvider creates a Provider.
func NewProvider(db *gorm.DB) *Provider {
	return &Provider{db: db}
}

// Lookup returns the record for id, or nil when the listing has no record.
func (p *Provider) Lookup(ctx context.Context, id int64) (*Record, error) {
	if p.db == nil {
		return nil, nil
	}
	var rec Record
	err := p.db.WithContext(ctx).Where("listing_id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
