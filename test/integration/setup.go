package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"bought-tab/internal/cache"
	"bought-tab/internal/config"
	"bought-tab/internal/content"
	"bought-tab/internal/handler"
	"bought-tab/internal/identity"
	"bought-tab/internal/platform"
	"bought-tab/internal/purchase"
	"bought-tab/internal/repository"
	"bought-tab/internal/router"
	"bought-tab/internal/service"
	"bought-tab/internal/tab"
	"bought-tab/internal/testutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey      = "test-api-key"
	testTokenSecret = "integration-secret"
)

// App is the fully wired service on top of a test database.
type App struct {
	DB       *testutil.TestDB
	Handler  http.Handler
	Resolver *identity.Resolver
	Store    content.Store
}

// SetupApp starts PostgreSQL with the commerce schema and wires the service
// the same way cmd/api does.
func SetupApp(t *testing.T) *App {
	t.Helper()

	db := testutil.SetupTestDB(t)
	return wireApp(t, db.Pool, db)
}

func wireApp(t *testing.T, pool *pgxpool.Pool, db *testutil.TestDB) *App {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()

	status, err := platform.Check(ctx, pool)
	require.NoError(t, err)

	tabCfg := config.TabConfig{
		Title:           config.DefaultTabTitle,
		Priority:        config.DefaultTabPriority,
		Placeholder:     config.DefaultTabPlaceholder,
		MaxContentBytes: 4096,
	}

	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	metaRepo := repository.NewMetaRepository(pool, logger)

	store := content.NewStore(metaRepo, productRepo, cache.NewLRU(100, time.Minute), tabCfg.MaxContentBytes, logger)
	verifier := purchase.NewVerifier(orderRepo, logger)

	registry := tab.NewRegistry(logger)
	registry.Register(tab.DescriptionTab{})
	registry.Register(tab.AdditionalInfoTab{})
	registry.Register(tab.NewBoughtTab(store, verifier, tabCfg, logger))

	productService := service.NewProductService(productRepo, logger)
	tabService := service.NewTabService(productService, registry, logger)

	resolver := identity.NewResolver(testTokenSecret)

	h := router.New(router.Deps{
		Products: handler.NewProductHandler(productService, tabService, logger),
		Admin:    handler.NewAdminHandler(store, status, tabCfg.MaxContentBytes, logger),
		Resolver: resolver,
		Platform: status,
		APIKey:   testAPIKey,
		Ping:     func(ctx context.Context) error { return pool.Ping(ctx) },
		Metrics:  promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
	}, logger)

	return &App{
		DB:       db,
		Handler:  h,
		Resolver: resolver,
		Store:    store,
	}
}

// Token issues a viewer token for customerID.
func (a *App) Token(t *testing.T, customerID string) string {
	t.Helper()

	token, err := a.Resolver.Issue(customerID, time.Hour)
	require.NoError(t, err)
	return token
}
