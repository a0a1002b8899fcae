package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"catalog-editor/app/controller"
	"catalog-editor/app/router"
	"catalog-editor/config"
	"catalog-editor/db"
	"catalog-editor/editor"
	"catalog-editor/repository"
	"catalog-editor/service"
)

// Initialize wires services, repositories and controllers and returns the route table.
// The database, redis cache and Google Drive are optional and skipped when not configured.
func Initialize(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*http.ServeMux, error) {
	// Submission journal
	var (
		journal     editor.Journal
		submissions controller.SubmissionLister
	)
	if settings := cfg.DBSettings(); settings.Configured() {
		if err := db.InitDB(ctx, settings); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		submissionRepo := repository.NewSubmissionRepository()
		journal = submissionRepo
		submissions = submissionRepo
		logger.Info("submission journal enabled")
	} else {
		logger.Info("database not configured, submission journal disabled")
	}

	// Lookup cache
	var cache service.LookupCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not reachable, lookups will hit the backend until it is", zap.Error(err))
		}
		cache = service.NewRedisLookupCache(client, cfg.Redis.TTL, logger)
	}

	// Google Drive image source
	var drive service.ImageDownloader
	if cfg.Drive.CredentialsPath != "" || cfg.Drive.CredentialsJSON != "" {
		driveService, err := service.NewDriveService(ctx, cfg.Drive.CredentialsPath, cfg.Drive.CredentialsJSON)
		if err != nil {
			return nil, err
		}
		drive = driveService
	}

	catalogClient := service.NewCatalogClient(cfg.CatalogClientConfig(), logger)
	lookupService := service.NewLookupService(catalogClient, cache, logger)
	imageService := service.NewImageService(cfg.Image.MaxDimension, cfg.Image.Quality, drive, logger)

	store := editor.NewStore()
	go sweepSessions(ctx, store, cfg.SessionIdleTimeout, logger)

	controllers := &router.Controllers{
		Lookup:     controller.NewLookupController(lookupService, logger),
		Editor:     controller.NewEditorController(store, lookupService, imageService, catalogClient, journal, cfg.Image.MaxUpload, logger),
		Submission: controller.NewSubmissionController(submissions, logger),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	return mux, nil
}

// sweepSessions drops abandoned editor sessions until ctx is done
func sweepSessions(ctx context.Context, store *editor.Store, maxIdle time.Duration, logger *zap.Logger) {
	if maxIdle <= 0 {
		return
	}

	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.Sweep(maxIdle); removed > 0 {
				logger.Info("expired idle editor sessions", zap.Int("removed", removed))
			}
		}
	}
}
