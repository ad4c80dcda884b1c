package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bought-tab/internal/cache"
	"bought-tab/internal/config"
	"bought-tab/internal/content"
	"bought-tab/internal/database"
	"bought-tab/internal/handler"
	"bought-tab/internal/identity"
	"bought-tab/internal/metrics"
	"bought-tab/internal/platform"
	"bought-tab/internal/purchase"
	"bought-tab/internal/repository"
	"bought-tab/internal/router"
	"bought-tab/internal/seed"
	"bought-tab/internal/service"
	"bought-tab/internal/tab"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Missing .env.local is fine; the environment wins either way.
	_ = godotenv.Load(".env.local")

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting bought-tab API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	status, err := platform.Check(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to check commerce platform: %w", err)
	}
	if !status.Active {
		logger.Warn().
			Strs("missing_tables", status.Missing).
			Msg(status.Notice)
	} else if cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	metrics.MustRegister()

	// Repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	metaRepo := repository.NewMetaRepository(pool, logger)

	// Tab content and purchase verification
	lru := cache.NewLRU(cfg.Cache.Capacity, cfg.Cache.TTL)
	store := content.NewStore(metaRepo, productRepo, lru, cfg.Tab.MaxContentBytes, logger)
	verifier := purchase.NewVerifier(orderRepo, logger)

	if status.Active && cfg.Seed.File != "" {
		if err := importSeed(ctx, cfg, store, logger); err != nil {
			return err
		}
	}

	registry := tab.NewRegistry(logger)
	registry.Register(tab.DescriptionTab{})
	registry.Register(tab.AdditionalInfoTab{})
	registry.Register(tab.NewBoughtTab(store, verifier, cfg.Tab, logger))

	// Services
	productService := service.NewProductService(productRepo, logger)
	tabService := service.NewTabService(productService, registry, logger)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService, tabService, logger)
	adminHandler := handler.NewAdminHandler(store, status, cfg.Tab.MaxContentBytes, logger)

	resolver := identity.NewResolver(cfg.Auth.ViewerTokenSecret)
	if !resolver.Enabled() {
		logger.Warn().Msg("viewer token secret not set, every viewer is anonymous")
	}

	mux := router.New(router.Deps{
		Products: productHandler,
		Admin:    adminHandler,
		Resolver: resolver,
		Platform: status,
		APIKey:   cfg.Auth.APIKey,
		Ping:     pingFunc(pool),
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Bool("platform_active", status.Active).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// importSeed loads the configured seed file, from S3 when enabled with the
// local file system as fallback.
func importSeed(ctx context.Context, cfg *config.Config, store content.Store, logger zerolog.Logger) error {
	fileLoader := seed.NewFileLoader(logger)

	var s3Loader seed.Loader
	if cfg.S3.Enabled {
		l, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
	}

	loader := seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	res, err := seed.NewImporter(loader, store, logger).Import(ctx, cfg.Seed.File)
	if err != nil {
		return fmt.Errorf("failed to import tab content seed: %w", err)
	}

	logger.Info().
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Str("file", cfg.Seed.File).
		Msg("tab content seed imported")

	return nil
}

func pingFunc(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}
