package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listing-media/core/cache"
	"listing-media/core/loader"
	"listing-media/core/logger"
	"listing-media/core/messaging"
	"listing-media/core/middleware/auth"
	"listing-media/core/middleware/rayid"
	"listing-media/core/reconcile"
	"listing-media/core/scheduler"
	"listing-media/feature/events"
	"listing-media/feature/integrity"
	"listing-media/feature/summary"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "listing-media/docs/swagger"
)

// @title Listing Media API
// @version 1.0
// @description Photo storage, ordering and identifier allocation for exclusive listings.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the listing media server",
	Long: `Starts the HTTP server, the deletion event listeners and the scheduled
reconcile pass, and initializes all enabled features.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	e, err := newEnv(true)
	if err != nil {
		return err
	}
	cfg, logg := e.cfg, e.logger
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Summary mirror (optional)
	var mirror summary.Mirror
	if cfg.Cache.Enabled {
		rdb, err := cache.NewClient(ctx, cfg.Cache)
		if err != nil {
			logg.Warn("Summary mirror disabled, redis unavailable", zap.Error(err))
		} else {
			defer rdb.Close()
			mirror = summary.NewRedisMirror(rdb, cfg.Cache.KeyPrefix, cfg.Cache.TTL())
			logg.Info("Summary mirror enabled", zap.String("addr", cfg.Cache.Addr))
		}
	}

	listings, summaries, photos := e.features(mirror)
	eventsFeature := events.NewFeature(e.store, logg)

	mgr := loader.NewManager()
	mgr.Register(listings)
	mgr.Register(summaries)
	mgr.Register(photos)
	mgr.Register(eventsFeature)
	mgr.Register(integrity.NewFeature(e.client, cfg.Storage.Bucket, []string{cfg.Storage.PathPrefix}, e.db, logg))

	// Deletion events from NATS (optional)
	if cfg.Messaging.Enabled {
		nc, err := messaging.NewConnection(cfg.Messaging, logg)
		if err != nil {
			return err
		}
		defer drain(nc, logg)

		sub := messaging.NewSubscriber(nc, cfg.Messaging, logg)
		if _, err := eventsFeature.Service().Subscribe(sub, cfg.Messaging); err != nil {
			return err
		}
	}

	// Deletion events from the bucket itself (optional)
	if cfg.Reconcile.ListenBucketEvents {
		go e.store.Listen(ctx, cfg.Storage.PathPrefix)
		logg.Info("Listening for bucket deletions", zap.String("prefix", cfg.Storage.PathPrefix))
	}

	// Scheduled full reconcile
	sched := scheduler.New(logg, 0)
	if cfg.Reconcile.Schedule != "" {
		err := sched.Add("reconcile", cfg.Reconcile.Schedule, func(ctx context.Context) error {
			report, err := photos.Reconciler().Reconcile(ctx, 0, reconcile.ReconcileOptions{Confirmed: true})
			if err != nil {
				return err
			}
			logg.Info("Scheduled reconcile finished",
				zap.Int("checked", report.Checked),
				zap.Int("orphaned", report.Orphaned),
				zap.Int("cleaned", report.Cleaned),
				zap.Int("errors", len(report.Errors)),
			)
			return nil
		})
		if err != nil {
			return err
		}
	}
	sched.Start()
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit(),
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Swagger documentation is public
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	logg.Info("Shutting down server...")
	cancel()
	return app.ShutdownWithTimeout(time.Duration(cfg.Server.ShutdownSeconds) * time.Second)
}

func drain(nc *nats.Conn, l *zap.Logger) {
	if err := nc.Drain(); err != nil {
		l.Warn("NATS drain failed", zap.Error(err))
	}
}
