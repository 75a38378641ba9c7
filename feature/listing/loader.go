package listing

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	allocator *Allocator
	provider  *Provider
	handler   *Handler
}

// NewFeature creates a new listing feature.
func NewFeature(db *gorm.DB, cfg AllocatorConfig, logger *zap.Logger) *Feature {
	alloc := NewAllocator(db, cfg, logger)
	return &Feature{
		allocator: alloc,
		provider:  NewProvider(db),
		handler:   NewHandler(alloc, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "listing"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.allocator.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Allocator returns the identifier allocator.
func (f *Feature) Allocator() *Allocator {
	return f.allocator
}

// Provider returns the listing record provider.
func (f *Feature) Provider() *Provider {
	return f.provider
}
