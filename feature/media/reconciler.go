package media

import (
	"context"

	"listing-media/core/reconcile"
	mediareconcile "listing-media/feature/media/reconcile"

	"go.uber.org/zap"
)

// Reconciler runs consistency passes over the media index.
type Reconciler struct {
	service *Service
	engine  *reconcile.Engine
	logger  *zap.Logger
}

// NewReconciler creates a Reconciler running engine over service's index.
func NewReconciler(service *Service, engine *reconcile.Engine, logger *zap.Logger) *Reconciler {
	return &Reconciler{service: service, engine: engine, logger: logger}
}

// Reconcile checks every photo of listingID, or of all listings when it is 0,
// and removes index rows whose blobs are confirmed missing.
func (r *Reconciler) Reconcile(ctx context.Context, listingID int64, opts reconcile.ReconcileOptions) (*reconcile.Report, error) {
	return r.engine.Reconcile(ctx, mediareconcile.ScopeOf(listingID), opts)
}

// Plan reports what a pass over listingID would clean without cleaning it.
func (r *Reconciler) Plan(ctx context.Context, listingID int64) (*reconcile.ReconcilePlan, error) {
	return r.engine.Plan(ctx, mediareconcile.ScopeOf(listingID))
}

// Apply cleans the orphans of a plan built by Plan.
func (r *Reconciler) Apply(ctx context.Context, plan *reconcile.ReconcilePlan, opts reconcile.ReconcileOptions) *reconcile.Report {
	return r.engine.Apply(ctx, plan, opts)
}

// OnBlobDeleted runs a synchronous pass over the listing owning url. URLs that
// are not indexed are ignored. The pass never joins one already in flight, since
// that pass may have probed the blob before it was deleted.
func (r *Reconciler) OnBlobDeleted(ctx context.Context, url string) error {
	asset, err := r.service.FindByURL(ctx, url)
	if err != nil {
		return err
	}
	if asset == nil {
		r.logger.Debug("Ignoring deletion of unindexed blob", zap.String("url", url))
		return nil
	}

	plan, err := r.engine.Plan(ctx, mediareconcile.ScopeOf(asset.ListingID))
	if err != nil {
		return err
	}
	report := r.engine.Apply(ctx, plan, reconcile.ReconcileOptions{Confirmed: true})
	r.logger.Info("Reconciled listing after blob deletion",
		zap.Int64("listing_id", asset.ListingID),
		zap.String("url", url),
		zap.Int("cleaned", report.Cleaned),
		zap.Int("errors", len(report.Errors)),
	)
	return nil
}
