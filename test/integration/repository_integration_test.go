package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"bought-tab/internal/content"
	"bought-tab/internal/model"
	"bought-tab/internal/purchase"
	"bought-tab/internal/repository"
	"bought-tab/internal/seed"
	"bought-tab/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := testutil.SetupTestDB(t)
	logger := zerolog.Nop()
	verifier := purchase.NewVerifier(repository.NewOrderRepository(testDB.Pool, logger), logger)

	ctx := context.Background()
	viewer := model.Viewer{CustomerID: "viewer-v"}

	t.Run("no completed orders", func(t *testing.T) {
		testutil.CleanupDB(t, testDB.Pool)

		assert.False(t, verifier.HasPurchased(ctx, viewer, []string{"5"}))
	})

	t.Run("completed order matches any listed product", func(t *testing.T) {
		testutil.CleanupDB(t, testDB.Pool)
		testutil.SeedOrder(t, testDB.Pool, viewer.CustomerID, string(model.OrderStatusCompleted), testutil.Ptr("5"), testutil.Ptr("9"))

		assert.True(t, verifier.HasPurchased(ctx, viewer, []string{"9"}))
		assert.True(t, verifier.HasPurchased(ctx, viewer, []string{"1", "5"}))
		assert.False(t, verifier.HasPurchased(ctx, viewer, []string{"1"}))
		assert.False(t, verifier.HasPurchased(ctx, viewer, nil))
	})

	t.Run("other statuses never count", func(t *testing.T) {
		testutil.CleanupDB(t, testDB.Pool)
		for _, status := range []model.OrderStatus{
			model.OrderStatusPending,
			model.OrderStatusProcessing,
			model.OrderStatusOnHold,
			model.OrderStatusCancelled,
			model.OrderStatusRefunded,
			model.OrderStatusFailed,
		} {
			testutil.SeedOrder(t, testDB.Pool, viewer.CustomerID, string(status), testutil.Ptr("5"))
		}

		assert.False(t, verifier.HasPurchased(ctx, viewer, []string{"5"}))
	})

	t.Run("orders of other customers never count", func(t *testing.T) {
		testutil.CleanupDB(t, testDB.Pool)
		testutil.SeedOrder(t, testDB.Pool, "someone-else", string(model.OrderStatusCompleted), testutil.Ptr("5"))

		assert.False(t, verifier.HasPurchased(ctx, viewer, []string{"5"}))
		assert.False(t, verifier.HasPurchased(ctx, model.Viewer{}, []string{"5"}))
	})
}

func TestSeedImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := SetupApp(t)
	pool := app.DB.Pool
	ctx := context.Background()

	testutil.CleanupDB(t, pool)
	testutil.SeedProduct(t, pool, "5", "Product 5")
	testutil.SeedProduct(t, pool, "42", "Bonus guide")

	var buf bytes.Buffer
	require.NoError(t, seed.Encode(&buf, []model.TabContentRecord{
		{ProductID: "5", Content: "download link"},
		{ProductID: "42", Content: "bonus chapters"},
		{ProductID: "404", Content: "orphan"},
	}))

	path := filepath.Join(t.TempDir(), "seed.jsonl.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	importer := seed.NewImporter(seed.NewFileLoader(zerolog.Nop()), app.Store, zerolog.Nop())
	res, err := importer.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)

	got, err := app.Store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "bonus chapters", got)

	meta := repository.NewMetaRepository(pool, zerolog.Nop())
	value, found, err := meta.Get(ctx, "5", content.MetaKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "download link", value)
}
