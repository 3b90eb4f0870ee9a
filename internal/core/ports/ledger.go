// internal/core/ports/ledger.go
package ports

import (
	"context"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// ProductLedger owns product stock counters. Implementations are bound to a
// querier, so the same methods compose inside a unit of work.
type ProductLedger interface {
	// CheckAvailability returns current stock or a NotFoundError.
	CheckAvailability(ctx context.Context, productID int64) (int, error)
	// LockStock reads stock for all ids in one round trip and holds row locks
	// until the surrounding transaction ends. Unknown ids are absent from the map.
	LockStock(ctx context.Context, productIDs []int64) (map[int64]int, error)
	Decrement(ctx context.Context, productID int64, quantity int, ref domain.StockRef) error
	Increment(ctx context.Context, productID int64, quantity int, ref domain.StockRef) error
	Movements(ctx context.Context, productID int64, params ListParams) (*ListResult[domain.StockMovement], error)
}
