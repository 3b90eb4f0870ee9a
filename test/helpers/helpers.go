// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockflow-be/internal/adapters/db"
	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestAdmin is the actor used by tests that do not care who acts.
var TestAdmin = domain.Actor{UserID: 1, RoleID: domain.RoleAdmin}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB starts PostgreSQL in a container and applies the embedded migrations
func SetupTestDB(t testing.TB) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_stockflow",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := db.DefaultConfig()
	dbConfig.Port = resource.GetPort("5432/tcp")
	dbConfig.User = "test"
	dbConfig.Password = "test"
	dbConfig.Database = "test_stockflow"
	dbConfig.MaxConnections = 10
	dbConfig.MinConnections = 1
	dbConfig.EnableQueryLogging = testing.Verbose()

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
	}
	err = db.RunMigrationsWithRetry(context.Background(), migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates an in-memory Redis instance
func SetupTestRedis(t testing.TB) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a mock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		conn.Close()
	})

	return mock, conn
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "stockflow-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_stockflow",
			SSLMode:        "disable",
			MaxConnections: 10,
			MinConnections: 2,
			TxIsolation:    "read committed",
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-that-is-long-enough-for-hs256",
			JWTExpiration: time.Hour,
			Issuer:        "stockflow-test",
		},
		Reports: config.ReportsConfig{
			CacheTTL:          time.Minute,
			LowStockThreshold: domain.DefaultLowStockThreshold,
			TopLimit:          5,
			RefreshInterval:   10 * time.Minute,
		},
		Export: config.ExportConfig{
			KeyPrefix:       "exports",
			URLExpiry:       time.Hour,
			Retention:       24 * time.Hour,
			ImportMaxSizeMB: 5,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
			RequestTimeout:    5 * time.Second,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestProduct creates a valid product
func CreateTestProduct(overrides ...func(*domain.Product)) *domain.Product {
	p := &domain.Product{
		CategoryID:  1,
		Size:        "195/65R15",
		Description: "All-season tyre",
		NetWeight:   "8.5 kg",
		Kg:          decimal.NewFromFloat(8.5),
		MadeIn:      "Germany",
		Price:       decimal.NewFromInt(95),
		Stock:       10,
	}
	for _, override := range overrides {
		override(p)
	}
	return p
}

// CreateTestInvoiceInput creates an invoice payload from product/quantity pairs
func CreateTestInvoiceInput(partyID int64, lines ...domain.LineItem) domain.InvoiceInput {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return domain.InvoiceInput{
		PartyID: partyID,
		Date:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Total:   total,
		Items:   lines,
	}
}

// Line builds a line item priced at 10
func Line(productID int64, quantity int) domain.LineItem {
	return domain.LineItem{ProductID: productID, Quantity: quantity, Price: decimal.NewFromInt(10)}
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables empties every application table and resets identities
func TruncateAllTables(t testing.TB, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `TRUNCATE TABLE
		stock_movements, sales_invoice_items, sales_invoices,
		purchase_invoice_items, purchase_invoices, products,
		categories, customers, suppliers
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Failed to truncate tables")
}

// SeedCatalog inserts a category, a customer and a supplier and returns their ids
func SeedCatalog(t testing.TB, pool *pgxpool.Pool) (categoryID, customerID, supplierID int64) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ('Tyres') RETURNING id`).Scan(&categoryID))
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO customers (name, phone_no, address) VALUES ('Acme', '555-0100', '1 Main St') RETURNING id`).Scan(&customerID))
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO suppliers (name, phone_no, address) VALUES ('Supply Co', '555-0200', '2 Side St') RETURNING id`).Scan(&supplierID))
	return categoryID, customerID, supplierID
}

// StockOf reads the stored stock counter of a product
func StockOf(t testing.TB, pool *pgxpool.Pool, productID int64) int {
	t.Helper()

	var stock int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock))
	return stock
}

// CountRows counts the rows in table
func CountRows(t testing.TB, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	require.NoError(t, pool.QueryRow(context.Background(),
		fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n))
	return n
}
