package summary

import (
	"errors"
	"time"

	"listing-media/feature/media/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockListing takes the per-listing write lock inside tx. The summary row doubles
// as the lock row: it is created on first use and then locked FOR UPDATE, so
// every mutation of a listing's assets is serialized without touching other listings.
// Databases without row locks (SQLite) serialize whole write transactions instead.
func LockListing(tx *gorm.DB, listingID int64) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Summary{ListingID: listingID, UpdatedAt: time.Now().UTC()}).Error
	if err != nil {
		return err
	}
	var row Summary
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("listing_id = ?", listingID).
		Take(&row).Error
}

// Recompute derives the summary from the live Photo rows and stores it, inside tx,
// with the next version. Callers hold LockListing so versions never repeat.
func Recompute(tx *gorm.DB, listingID int64) (*Summary, error) {
	var count int64
	if err := tx.Model(&models.Asset{}).
		Where("listing_id = ? AND category = ?", listingID, models.CategoryPhoto).
		Count(&count).Error; err != nil {
		return nil, err
	}

	var current Summary
	err := tx.Select("version").Where("listing_id = ?", listingID).Take(&current).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s := &Summary{ListingID: listingID, PhotoCount: int(count), Version: current.Version + 1, UpdatedAt: time.Now().UTC()}
	if count > 0 {
		var first models.Asset
		err := tx.Where("listing_id = ? AND category = ?", listingID, models.CategoryPhoto).
			Order("order_index ASC").
			Take(&first).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			url := first.URL
			s.PrimaryPhotoURL = &url
		}
	}

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "listing_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"photo_count", "primary_photo_url", "version", "updated_at"}),
	}).Create(s).Error
	if err != nil {
		return nil, err
	}
	return s, nil
}
