package integration

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/config"
	"orderdesk/internal/database"
	"orderdesk/internal/model"
	"orderdesk/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance holding the collections table.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Store     *store.PostgresStore
}

// SetupTestDB creates a PostgreSQL test container, a pool built from the
// application's database config and a bootstrapped collection store.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
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
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	s := store.NewPostgresStore(pool, logger)
	if err := s.Bootstrap(ctx, store.Products, store.Orders); err != nil {
		t.Fatalf("failed to bootstrap collections: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Store:     s,
	}
}

// CleanupDB resets both collections to empty arrays.
func CleanupDB(t *testing.T, db *TestDB) {
	t.Helper()

	ctx := context.Background()
	for _, collection := range []string{store.Products, store.Orders} {
		if err := db.Store.Save(ctx, collection, []byte("[]")); err != nil {
			t.Fatalf("failed to reset collection %s: %v", collection, err)
		}
	}
}

// LoadCollection returns the stored document for collection.
func LoadCollection(t *testing.T, db *TestDB, collection string) []byte {
	t.Helper()

	data, err := db.Store.Load(context.Background(), collection)
	if err != nil {
		t.Fatalf("failed to load collection %s: %v", collection, err)
	}
	return data
}

// SeedProducts replaces the catalogue with a fixed set of test products.
func SeedProducts(t *testing.T, db *TestDB) []model.Product {
	t.Helper()

	products := []model.Product{
		{ID: 1, Name: "Widget", Price: 10.00, Stock: 5, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Gadget", Price: 19.99, Stock: 2, CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "Bidule", Price: 0.10, Stock: 100, CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
	}

	data, err := store.Encode(products)
	if err != nil {
		t.Fatalf("failed to encode products: %v", err)
	}
	if err := db.Store.Save(context.Background(), store.Products, data); err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}

	return products
}
