package cmd

import (
	"fmt"

	"listing-media/core/blob"
	"listing-media/core/config"
	"listing-media/core/database"
	"listing-media/core/logger"
	"listing-media/core/storage"
	"listing-media/feature/listing"
	"listing-media/feature/media"
	"listing-media/feature/summary"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env holds the connections shared by the commands.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	client storage.Client
	store  *blob.Store
}

// newEnv loads configuration and connects to the database and, when
// withStorage is set, to the object store.
func newEnv(withStorage bool) (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	e := &env{cfg: cfg, logger: l, db: db}
	if withStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		e.client = client
		e.store = blob.NewStore(client, cfg.Storage, l)
	}
	return e, nil
}

// features builds the listing, summary and media features over the env.
// mirror may be nil.
func (e *env) features(mirror summary.Mirror) (*listing.Feature, *summary.Feature, *media.Feature) {
	listings := listing.NewFeature(e.db, e.cfg.Allocator, e.logger)
	summaries := summary.NewFeature(e.db, mirror, e.logger)
	photos := media.NewFeature(
		e.db,
		e.store,
		listings.Provider(),
		summaries.Service(),
		e.cfg.Media,
		e.cfg.Reconcile,
		e.cfg.Storage.PathPrefix,
		e.logger,
	)
	return listings, summaries, photos
}
