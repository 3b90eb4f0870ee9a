// internal/core/domain/ledger.go
package domain

import "time"

// Role ids known to the system.
const (
	RoleAdmin int64 = 1
	RoleStaff int64 = 2
)

// Actor identifies the caller of a core operation. It is passed explicitly
// into every mutation and recorded with the rows it writes.
type Actor struct {
	UserID int64
	RoleID int64
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool { return a.RoleID == RoleAdmin }

// MovementReason explains a stock change.
type MovementReason string

const (
	MovementSale     MovementReason = "sale"
	MovementPurchase MovementReason = "purchase"
	MovementOpening  MovementReason = "opening"
)

// Reference types recorded on movements.
const (
	RefSalesInvoice    = "sales_invoice"
	RefPurchaseInvoice = "purchase_invoice"
	RefProduct         = "product"
)

// StockRef ties a ledger change to the document that caused it.
type StockRef struct {
	Reason        MovementReason
	ReferenceType string
	ReferenceID   int64
	Actor         Actor
}

// StockMovement is one append-only ledger entry. Delta is negative for decrements.
type StockMovement struct {
	ID            int64          `json:"id"`
	ProductID     int64          `json:"product_id"`
	Delta         int            `json:"delta"`
	Reason        MovementReason `json:"reason"`
	ReferenceType string         `json:"reference_type"`
	ReferenceID   int64          `json:"reference_id"`
	CreatedBy     int64          `json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
}
