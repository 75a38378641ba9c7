package listing

import (
	"context"
	"errors"
	"fmt"

	"listing-media/core/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllocatorConfig holds the identifier partition settings.
type AllocatorConfig struct {
	// CounterName selects the counter row.
	CounterName string `mapstructure:"counter_name" default:"listing_id"`
	// StartValue seeds a new counter; the first identifier issued is StartValue+1.
	StartValue int64 `mapstructure:"start_value" default:"0"`
	// PartitionThreshold is the exclusive upper bound of self-issued identifiers.
	// The external feed owns identifiers at or above it.
	PartitionThreshold int64 `mapstructure:"partition_threshold" default:"1000000000"`
}

// Allocator issues listing identifiers from a durable counter row.
type Allocator struct {
	db     *gorm.DB
	cfg    AllocatorConfig
	logger *zap.Logger
}

// NewAllocator creates an Allocator.
func NewAllocator(db *gorm.DB, cfg AllocatorConfig, logger *zap.Logger) *Allocator {
	return &Allocator{db: db, cfg: cfg, logger: logger}
}

// Threshold returns the exclusive upper bound of issued identifiers.
func (a *Allocator) Threshold() int64 {
	return a.cfg.PartitionThreshold
}

// Seed creates the counter row if it does not exist. Existing rows are left untouched.
func (a *Allocator) Seed(ctx context.Context) error {
	if a.cfg.StartValue < 0 || a.cfg.StartValue+1 >= a.cfg.PartitionThreshold {
		return apperror.New(apperror.KindAllocationFailure, "listing.seed",
			"start value %d outside partition below %d", a.cfg.StartValue, a.cfg.PartitionThreshold)
	}
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Counter{Name: a.cfg.CounterName, Value: a.cfg.StartValue}).Error
	return apperror.Wrap(apperror.KindAllocationFailure, "listing.seed", err)
}

// Allocate consumes and returns the next identifier. The increment is a single
// conditional UPDATE, so concurrent callers serialize on the counter row and
// never observe the same value. It never returns a guessed value on failure.
func (a *Allocator) Allocate(ctx context.Context) (int64, error) {
	const op = "listing.allocate"
	if a.db == nil {
		return 0, apperror.New(apperror.KindAllocationFailure, op, "database unavailable")
	}

	var id int64
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Counter{}).
			Where("name = ? AND value + 1 < ?", a.cfg.CounterName, a.cfg.PartitionThreshold).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return a.whyNotIncremented(tx)
		}

		var values []int64
		if err := tx.Model(&Counter{}).Where("name = ?", a.cfg.CounterName).Pluck("value", &values).Error; err != nil {
			return err
		}
		if len(values) != 1 {
			return fmt.Errorf("counter %q vanished during allocation", a.cfg.CounterName)
		}
		id = values[0]
		return nil
	})
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return 0, err
		}
		a.logger.Error("Identifier allocation failed", zap.Error(err))
		return 0, apperror.Wrap(apperror.KindAllocationFailure, op, err)
	}

	a.logger.Debug("Identifier allocated", zap.Int64("listing_id", id))
	return id, nil
}

func (a *Allocator) whyNotIncremented(tx *gorm.DB) error {
	const op = "listing.allocate"
	var count int64
	if err := tx.Model(&Counter{}).Where("name = ?", a.cfg.CounterName).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.New(apperror.KindAllocationFailure, op, "counter %q is not initialised", a.cfg.CounterName)
	}
	return apperror.New(apperror.KindAllocationFailure, op, "partition below %d is exhausted", a.cfg.PartitionThreshold)
}

// PeekNext returns the identifier the next Allocate would issue without consuming it.
// The value is advisory only: a concurrent Allocate may take it at any moment.
func (a *Allocator) PeekNext(ctx context.Context) (int64, error) {
	const op = "listing.peek_next"
	if a.db == nil {
		return 0, apperror.New(apperror.KindAllocationFailure, op, "database unavailable")
	}

	var values []int64
	if err := a.db.WithContext(ctx).Model(&Counter{}).Where("name = ?", a.cfg.CounterName).Pluck("value", &values).Error; err != nil {
		return 0, apperror.Wrap(apperror.KindAllocationFailure, op, err)
	}
	if len(values) == 0 {
		return 0, apperror.New(apperror.KindAllocationFailure, op, "counter %q is not initialised", a.cfg.CounterName)
	}
	next := values[0] + 1
	if next >= a.cfg.PartitionThreshold {
		return 0, apperror.New(apperror.KindAllocationFailure, op, "partition below %d is exhausted", a.cfg.PartitionThreshold)
	}
	return next, nil
}
