package summary

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service reads summaries and publishes committed ones to the mirror.
type Service struct {
	db     *gorm.DB
	mirror Mirror
	logger *zap.Logger
}

// NewService creates a Service. mirror may be nil.
func NewService(db *gorm.DB, mirror Mirror, logger *zap.Logger) *Service {
	return &Service{db: db, mirror: mirror, logger: logger}
}

// Get returns the stored summary for a listing. A listing without assets yields
// a zero summary with a null primary photo. A mirror miss is filled from the
// database row, which the mirror drops if a newer version was published meanwhile.
func (s *Service) Get(ctx context.Context, listingID int64) (*Summary, error) {
	if s.mirror != nil {
		cached, err := s.mirror.Get(ctx, listingID)
		if err != nil {
			s.logger.Warn("Summary mirror read failed", zap.Int64("listing_id", listingID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	var row Summary
	err := s.db.WithContext(ctx).Where("listing_id = ?", listingID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Summary{ListingID: listingID}, nil
	}
	if err != nil {
		return nil, err
	}

	s.Publish(ctx, &row)
	return &row, nil
}

// Publish copies a committed summary to the mirror. Mirror failures are logged only;
// the relational row stays authoritative. Out-of-order publishes are resolved by
// version in the mirror.
func (s *Service) Publish(ctx context.Context, sum *Summary) {
	if s.mirror == nil || sum == nil {
		return
	}
	if err := s.mirror.Set(ctx, sum); err != nil {
		s.logger.Warn("Summary mirror write failed", zap.Int64("listing_id", sum.ListingID), zap.Error(err))
	}
}
