package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bought-tab/internal/config"
	"bought-tab/internal/platform"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// Connects with the DB_* settings and reports whether the commerce schema
// the extension depends on is present. Exits 2 when it is not.
func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.DatabaseConfig{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     5432,
		User:     envOr("DB_USER", "postgres"),
		Password: envOr("DB_PASSWORD", "postgres"),
		Database: envOr("DB_NAME", "shop"),
	}
	if _, err := fmt.Sscanf(envOr("DB_PORT", "5432"), "%d", &cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid DB_PORT: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, cfg.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Connected to database: %s\n", dbName)

	status, err := platform.Check(ctx, conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Platform check failed: %v\n", err)
		os.Exit(1)
	}

	if !status.Active {
		fmt.Println(status.Notice)
		fmt.Printf("Missing tables: %v\n", status.Missing)
		os.Exit(2)
	}

	fmt.Println("Commerce platform present, bought tab can be activated")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
