// internal/adapters/db/errors.go
package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// Postgres SQLSTATE codes handled explicitly.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// foreignKeyEntities maps FK constraint names to the entity they reference.
var foreignKeyEntities = map[string]string{
	"products_category_id_fkey":              domain.EntityCategory,
	"sales_invoices_customer_id_fkey":        domain.EntityCustomer,
	"purchase_invoices_supplier_id_fkey":     domain.EntitySupplier,
	"sales_invoice_items_product_id_fkey":    domain.EntityProduct,
	"purchase_invoice_items_product_id_fkey": domain.EntityProduct,
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// isUniqueViolation reports whether err is a unique constraint failure.
func isUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgUniqueViolation
}

// isAbortable reports whether the server rolled back the transaction on its own.
func isAbortable(err error) bool {
	pgErr, ok := pgError(err)
	return ok && (pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected)
}

// translateError maps constraint failures onto domain errors. entity names
// the table being written; id is used for foreign key failures when the
// referenced id is known by the caller.
func translateError(err error, entity string, id int64) error {
	pgErr, ok := pgError(err)
	if !ok {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &domain.DuplicateError{Entity: entity, Field: uniqueField(pgErr.ConstraintName)}
	case pgForeignKeyViolation:
		if ref, found := foreignKeyEntities[pgErr.ConstraintName]; found {
			return &domain.NotFoundError{Entity: ref, ID: id}
		}
		return &domain.NotFoundError{Entity: entity, ID: id}
	case pgSerializationFailure, pgDeadlockDetected:
		return &domain.TransactionAbortedError{Op: "write " + entity, Err: err}
	}
	return err
}

// uniqueField extracts the column from a "<table>_<column>_key" constraint name.
func uniqueField(constraint string) string {
	switch {
	case strings.HasSuffix(constraint, "_phone_no_key"):
		return "phone_no"
	case strings.HasSuffix(constraint, "_name_key"):
		return "name"
	}
	return ""
}
