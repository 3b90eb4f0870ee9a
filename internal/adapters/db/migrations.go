// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationConfig holds migration configuration. When SourcePath is empty the
// migrations compiled into the binary are used.
type MigrationConfig struct {
	DatabaseURL      string
	SourcePath       string
	TableName        string
	SchemaName       string
	ForceDirty       bool
	StatementTimeout time.Duration
}

func (c *MigrationConfig) withDefaults() *MigrationConfig {
	out := *c
	if out.TableName == "" {
		out.TableName = "schema_migrations"
	}
	if out.SchemaName == "" {
		out.SchemaName = "public"
	}
	if out.StatementTimeout == 0 {
		out.StatementTimeout = 10 * time.Minute
	}
	return &out
}

func (c *MigrationConfig) source() (source.Driver, error) {
	if c.SourcePath == "" {
		return iofs.New(embeddedMigrations, "migrations")
	}
	return (&file.File{}).Open("file://" + c.SourcePath)
}

// Migrator applies the schema under migrations/ to the stock database.
type Migrator struct {
	migrate *migrate.Migrate
	config  *MigrationConfig
	logger  *slog.Logger
	db      *sql.DB
}

// NewMigrator opens a dedicated two-connection pool for schema changes.
func NewMigrator(ctx context.Context, config *MigrationConfig, logger *slog.Logger) (*Migrator, error) {
	if config == nil {
		return nil, errors.New("migration config is required")
	}
	config = config.withDefaults()

	conn, err := sql.Open("pgx", config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(2)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)

	m, err := func() (*migrate.Migrate, error) {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := conn.PingContext(pingCtx); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		driver, err := postgres.WithInstance(conn, &postgres.Config{
			MigrationsTable:  config.TableName,
			SchemaName:       config.SchemaName,
			StatementTimeout: config.StatementTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres driver: %w", err)
		}

		src, err := config.source()
		if err != nil {
			return nil, fmt.Errorf("failed to open migration source: %w", err)
		}
		return migrate.NewWithInstance("migrations", src, "postgres", driver)
	}()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Migrator{
		migrate: m,
		config:  config,
		logger:  logger.With(slog.String("component", "migrator")),
		db:      conn,
	}, nil
}

// version treats an empty migrations table as version 0.
func (m *Migrator) version() (uint, bool, error) {
	v, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get current version: %w", err)
	}
	return v, dirty, nil
}

// Up applies every pending migration. A dirty schema is forced back to its
// recorded version first when ForceDirty is set.
func (m *Migrator) Up(ctx context.Context) error {
	from, dirty, err := m.version()
	if err != nil {
		return err
	}
	if dirty {
		if !m.config.ForceDirty {
			return fmt.Errorf("database is in dirty state at version %d", from)
		}
		m.logger.WarnContext(ctx, "forcing dirty migration", slog.Uint64("version", uint64(from)))
		if err := m.migrate.Force(int(from)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.InfoContext(ctx, "schema up to date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, _, _ := m.version()
	m.logger.InfoContext(ctx, "migrations applied",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)))
	return nil
}

// Down rolls back the most recent migration
func (m *Migrator) Down(ctx context.Context) error {
	from, dirty, err := m.version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", from)
	}

	if err := m.migrate.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	to, _, _ := m.version()
	m.logger.InfoContext(ctx, "migration rolled back",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)))
	return nil
}

// Force records version as applied and clean without running anything.
func (m *Migrator) Force(ctx context.Context, version int) error {
	m.logger.WarnContext(ctx, "forcing migration version", slog.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}
	return nil
}

// MigrationStatus is the content of the migrations table.
type MigrationStatus struct {
	CurrentVersion uint               `json:"current_version"`
	IsDirty        bool               `json:"is_dirty"`
	Applied        []AppliedMigration `json:"applied"`
}

// AppliedMigration is one row of the migrations table.
type AppliedMigration struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// Status reads the applied versions straight from the migrations table
func (m *Migrator) Status(ctx context.Context) (*MigrationStatus, error) {
	query := fmt.Sprintf(`
		SELECT version, dirty
		FROM %s.%s
		ORDER BY version ASC`, m.config.SchemaName, m.config.TableName)

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	status := &MigrationStatus{Applied: []AppliedMigration{}}
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Dirty); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		status.Applied = append(status.Applied, a)
		status.CurrentVersion, status.IsDirty = a.Version, a.Dirty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate migrations: %w", err)
	}
	return status, nil
}

// Close releases the source, the driver and the pool.
func (m *Migrator) Close() error {
	var errs []error
	if m.migrate != nil {
		srcErr, dbErr := m.migrate.Close()
		errs = append(errs, srcErr, dbErr)
	}
	if m.db != nil {
		errs = append(errs, m.db.Close())
	}
	return errors.Join(errs...)
}

// RunMigrationsWithRetry applies pending migrations, retrying with a linear
// backoff while the database comes up.
func RunMigrationsWithRetry(ctx context.Context, config *MigrationConfig, logger *slog.Logger, maxRetries int) error {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * 2 * time.Second
			logger.InfoContext(ctx, "retrying migration",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		lastErr = runOnce(ctx, config, logger)
		if lastErr == nil {
			return nil
		}
		logger.ErrorContext(ctx, "migration attempt failed",
			slog.String("error", lastErr.Error()),
			slog.Int("attempt", attempt))
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", maxRetries, lastErr)
}

func runOnce(ctx context.Context, config *MigrationConfig, logger *slog.Logger) error {
	m, err := NewMigrator(ctx, config, logger)
	if err != nil {
		return err
	}
	return errors.Join(m.Up(ctx), m.Close())
}
