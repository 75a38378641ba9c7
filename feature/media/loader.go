package media

import (
	"listing-media/core/blob"
	"listing-media/core/reconcile"
	mediareconcile "listing-media/feature/media/reconcile"
	"listing-media/feature/summary"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ObjectStore is the blob store the feature is wired to.
type ObjectStore interface {
	BlobStore
	mediareconcile.Prober
	Subscribe(h blob.DeletionHandler)
}

// Feature implements the loader.Feature interface.
type Feature struct {
	service    *Service
	reconciler *Reconciler
	handler    *Handler
}

// NewFeature creates a new media feature and subscribes its reconciler to
// out-of-band deletions reported by store.
func NewFeature(db *gorm.DB, store ObjectStore, listings ListingLookup, summaries *summary.Service, cfg Config, rcfg reconcile.Config, prefix string, logger *zap.Logger) *Feature {
	svc := NewService(db, store, listings, summaries, cfg, prefix, logger)

	adapter := mediareconcile.NewAdapter(svc, store, rcfg.ProbeTimeout())
	engine := reconcile.NewEngine(reconcile.Spec{
		Adapter:      adapter,
		Concurrency:  rcfg.Concurrency,
		ProbeTimeout: rcfg.ProbeTimeout(),
	}, logger)
	rec := NewReconciler(svc, engine, logger)
	store.Subscribe(rec.OnBlobDeleted)

	return &Feature{
		service:    svc,
		reconciler: rec,
		handler:    NewHandler(svc, rec, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "media"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the media store.
func (f *Feature) Service() *Service {
	return f.service
}

// Reconciler returns the media reconciler.
func (f *Feature) Reconciler() *Reconciler {
	return f.reconciler
}
