// internal/adapters/db/errors_test.go
package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		entity   string
		id       int64
		validate func(*testing.T, error)
	}{
		{
			name:   "duplicate_phone",
			err:    &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "customers_phone_no_key"},
			entity: domain.EntityCustomer,
			validate: func(t *testing.T, err error) {
				var dup *domain.DuplicateError
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, "phone_no", dup.Field)
				assert.Equal(t, "Customer phone no has already exists", err.Error())
			},
		},
		{
			name:   "duplicate_category_name",
			err:    &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "categories_name_key"},
			entity: domain.EntityCategory,
			validate: func(t *testing.T, err error) {
				assert.Equal(t, "Category name has already exists", err.Error())
			},
		},
		{
			name:   "unknown_customer_reference",
			err:    fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "sales_invoices_customer_id_fkey"}),
			entity: domain.EntitySalesInvoice,
			id:     42,
			validate: func(t *testing.T, err error) {
				var nf *domain.NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, domain.EntityCustomer, nf.Entity)
				assert.Equal(t, int64(42), nf.ID)
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name:   "serialization_failure",
			err:    &pgconn.PgError{Code: pgSerializationFailure},
			entity: domain.EntityProduct,
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrTransactionAborted)
			},
		},
		{
			name:   "not_a_pg_error",
			err:    errors.New("conn closed"),
			entity: domain.EntityProduct,
			validate: func(t *testing.T, err error) {
				assert.EqualError(t, err, "conn closed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, translateError(tt.err, tt.entity, tt.id))
		})
	}
}

func TestIsAbortable(t *testing.T) {
	assert.True(t, isAbortable(&pgconn.PgError{Code: pgDeadlockDetected}))
	assert.True(t, isAbortable(fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgSerializationFailure})))
	assert.False(t, isAbortable(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isAbortable(errors.New("timeout")))
}

func TestIsolationLevel(t *testing.T) {
	assert.Equal(t, pgx.Serializable, IsolationLevel("SERIALIZABLE"))
	assert.Equal(t, pgx.RepeatableRead, IsolationLevel("repeatable_read"))
	assert.Equal(t, pgx.ReadCommitted, IsolationLevel(" read committed "))
	assert.Equal(t, pgx.ReadCommitted, IsolationLevel(""))
}

func TestMigrator_Status(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	m := &Migrator{
		db:     conn,
		config: &MigrationConfig{SchemaName: "public", TableName: "schema_migrations"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	mock.ExpectQuery(`SELECT version, dirty\s+FROM public\.schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}).
			AddRow(1, false).
			AddRow(2, true))

	status, err := m.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(2), status.CurrentVersion)
	assert.True(t, status.IsDirty)
	assert.Len(t, status.Applied, 2)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(`SELECT version, dirty`).WillReturnError(errors.New("relation does not exist"))
	_, err = m.Status(context.Background())
	assert.ErrorContains(t, err, "failed to query migrations")
}
