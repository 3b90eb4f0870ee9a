// internal/adapters/db/unit_of_work.go
package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// txRepositories binds every store to one open transaction
type txRepositories struct {
	tx     pgx.Tx
	logger *slog.Logger
}

func (r *txRepositories) Ledger() ports.ProductLedger {
	return NewProductLedger(r.tx, r.logger)
}

func (r *txRepositories) Sales() ports.SalesInvoiceStore {
	return NewSalesInvoiceRepository(r.tx, r.logger)
}

func (r *txRepositories) Purchases() ports.PurchaseInvoiceStore {
	return NewPurchaseInvoiceRepository(r.tx, r.logger)
}

func (r *txRepositories) Products() ports.ProductRepository {
	return NewProductRepository(r.tx, r.logger)
}

// TransactionScope implements ports.UnitOfWork on top of Database
type TransactionScope struct {
	db     *Database
	opts   pgx.TxOptions
	logger *slog.Logger
}

var _ ports.UnitOfWork = (*TransactionScope)(nil)

// NewTransactionScope creates a unit of work running at the database's
// configured isolation level
func NewTransactionScope(db *Database, logger *slog.Logger) *TransactionScope {
	return &TransactionScope{
		db:     db,
		opts:   pgx.TxOptions{IsoLevel: IsolationLevel(db.config.TxIsolation)},
		logger: logger.With(slog.String("component", "unit_of_work")),
	}
}

// Execute runs fn in one transaction. Serialization failures and deadlocks,
// whether raised by a statement or by COMMIT, come back as TransactionAbortedError.
func (s *TransactionScope) Execute(ctx context.Context, op string, fn func(repos ports.TxRepositories) error) error {
	start := time.Now()

	err := s.db.TransactionWithOptions(ctx, s.opts, func(tx pgx.Tx) error {
		return fn(&txRepositories{tx: tx, logger: s.logger})
	})
	if err != nil {
		if isAbortable(err) && !errors.Is(err, domain.ErrTransactionAborted) {
			s.logger.WarnContext(ctx, "transaction aborted by server",
				slog.String("op", op),
				slog.String("error", err.Error()))
			return &domain.TransactionAbortedError{Op: op, Err: err}
		}
		return err
	}

	s.logger.DebugContext(ctx, "transaction committed",
		slog.String("op", op),
		slog.Duration("duration", time.Since(start)))

	return nil
}
