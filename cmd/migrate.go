package cmd

import (
	"context"
	"fmt"

	"listing-media/feature/listing"
	"listing-media/feature/media/models"
	"listing-media/feature/summary"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates the index tables and seeds the identifier counter.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the index tables and seed the identifier counter",
	Long: `Auto-migrates media_assets, listing_summaries and listing_id_counters, then
creates the identifier counter row at allocator.start_value if it does not exist.
An existing counter is never reset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(false)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		if err := e.db.AutoMigrate(&models.Asset{}, &summary.Summary{}, &listing.Counter{}); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		e.logger.Info("Tables migrated")

		alloc := listing.NewAllocator(e.db, e.cfg.Allocator, e.logger)
		if err := alloc.Seed(context.Background()); err != nil {
			return err
		}
		e.logger.Info("Identifier counter ready",
			zap.String("counter", e.cfg.Allocator.CounterName),
			zap.Int64("threshold", alloc.Threshold()),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
