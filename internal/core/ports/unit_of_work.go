// internal/core/ports/unit_of_work.go
package ports

import "context"

// TxRepositories exposes the stores bound to one open transaction.
type TxRepositories interface {
	Ledger() ProductLedger
	Sales() SalesInvoiceStore
	Purchases() PurchaseInvoiceStore
	Products() ProductRepository
}

// UnitOfWork runs fn inside a single transaction. fn returning an error rolls
// everything back; a nil return commits. op names the operation in errors and logs.
type UnitOfWork interface {
	Execute(ctx context.Context, op string, fn func(repos TxRepositories) error) error
}
