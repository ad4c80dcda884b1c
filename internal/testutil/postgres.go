// Package testutil starts disposable PostgreSQL instances with the host
// commerce schema for repository and API tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bought-tab/internal/config"
	"bought-tab/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// CommerceSchema is the subset of the host platform schema this service reads.
const CommerceSchema = `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
		category TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		customer_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT,
		quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0)
	);

	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// StartPostgres starts a PostgreSQL container and returns a connected pool.
// The schema is left empty; see WithCommerceSchema and Migrate.
func StartPostgres(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, config.DatabaseConfig{MaxConnections: 10, MinConnections: 1}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: pgContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SetupTestDB starts PostgreSQL with the commerce schema and this service's migrations applied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db := StartPostgres(t)
	CreateCommerceSchema(t, db.Pool)

	if err := database.Migrate(context.Background(), db.Pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// CreateCommerceSchema creates the host tables.
func CreateCommerceSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), CommerceSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProduct inserts a catalogue product.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, id, name string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"INSERT INTO products (id, name, price, category) VALUES ($1, $2, $3, $4)",
		id, name, 10.00, "General",
	)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", id, err)
	}
}

// SeedOrder inserts an order with one line item per product id.
// A nil entry in productIDs stores a line item without a product reference.
func SeedOrder(t *testing.T, pool *pgxpool.Pool, customerID, status string, productIDs ...*string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	orderID := uuid.New()

	if _, err := pool.Exec(ctx,
		"INSERT INTO orders (id, customer_id, status) VALUES ($1, $2, $3)",
		orderID, customerID, status,
	); err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	for _, productID := range productIDs {
		if _, err := pool.Exec(ctx,
			"INSERT INTO order_items (id, order_id, product_id, quantity) VALUES ($1, $2, $3, 1)",
			uuid.New(), orderID, productID,
		); err != nil {
			t.Fatalf("failed to seed order item: %v", err)
		}
	}

	return orderID
}

// CleanupDB removes all rows from the test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	tables := []string{"product_meta", "order_items", "orders", "products"}
	for _, table := range tables {
		if _, err := pool.Exec(context.Background(), fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
