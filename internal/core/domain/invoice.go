// internal/core/domain/invoice.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus is the settlement state of a purchase invoice.
type PurchaseStatus string

// Purchase status constants
const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusPaid      PurchaseStatus = "paid"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// IsValid reports whether s is a known status.
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusPaid, PurchaseStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseStatusPaid || s == PurchaseStatusCancelled
}

// CanTransitionTo reports whether moving from s to next changes anything.
// Transitions out of a terminal status are no-ops.
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}
	return true
}

// SettlesStock reports whether moving from s to next must increment the ledger.
func (s PurchaseStatus) SettlesStock(next PurchaseStatus) bool {
	return next == PurchaseStatusPaid && s != PurchaseStatusPaid
}

// OrderStatuses are the statuses listed in the purchase order queue.
var OrderStatuses = []PurchaseStatus{PurchaseStatusPending, PurchaseStatusCancelled}

// LineItem is one product row of an invoice. It never changes after the invoice is written.
type LineItem struct {
	ID        int64           `json:"id"`
	InvoiceID int64           `json:"invoice_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// InvoiceInput is the validated payload for creating either kind of invoice.
type InvoiceInput struct {
	PartyID int64
	Date    time.Time
	Total   decimal.Decimal
	Items   []LineItem
}

// Validate checks the invoice payload shape.
func (in *InvoiceInput) Validate(partyField string) error {
	v := &ValidationError{}
	if in.PartyID <= 0 {
		v.Add(partyField, partyField+" must be a positive number")
	}
	if in.Date.IsZero() {
		v.Add("date", "date must be a Date instance")
	}
	if in.Total.IsNegative() {
		v.Add("total", "total cannot be negative")
	}
	if len(in.Items) == 0 {
		v.Add("items", "items should not be empty")
	}
	for i, item := range in.Items {
		if item.ProductID <= 0 {
			v.Add(fmt.Sprintf("items.%d.product_id", i), "product_id must be a positive number")
		}
		if item.Quantity <= 0 {
			v.Add(fmt.Sprintf("items.%d.quantity", i), "quantity must be greater than 0")
		}
		if item.Price.IsNegative() {
			v.Add(fmt.Sprintf("items.%d.price", i), "price cannot be negative")
		}
	}
	return v.OrNil()
}

// RequestedQuantities sums quantities per product and returns the product ids
// in first-seen order.
func RequestedQuantities(items []LineItem) (map[int64]int, []int64) {
	qty := make(map[int64]int, len(items))
	order := make([]int64, 0, len(items))
	for _, item := range items {
		if _, seen := qty[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		qty[item.ProductID] += item.Quantity
	}
	return qty, order
}

// SalesInvoice records products sold to a customer.
type SalesInvoice struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Customer   *Customer       `json:"customer,omitempty"`
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
	CreatedBy  int64           `json:"created_by"`
	Items      []LineItem      `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PurchaseInvoice records products ordered from a supplier.
type PurchaseInvoice struct {
	ID         int64           `json:"id"`
	SupplierID int64           `json:"supplier_id"`
	Supplier   *Supplier       `json:"supplier,omitempty"`
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
	Status     PurchaseStatus  `json:"status"`
	CreatedBy  int64           `json:"created_by"`
	SettledAt  *time.Time      `json:"settled_at,omitempty"`
	Items      []LineItem      `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewSalesInvoice builds an unsaved sales invoice from input.
func NewSalesInvoice(in InvoiceInput, actor Actor) *SalesInvoice {
	return &SalesInvoice{
		CustomerID: in.PartyID,
		Date:       in.Date,
		Total:      in.Total,
		CreatedBy:  actor.UserID,
		Items:      cloneItems(in.Items),
	}
}

// NewPurchaseInvoice builds an unsaved purchase invoice in pending status.
func NewPurchaseInvoice(in InvoiceInput, actor Actor) *PurchaseInvoice {
	return &PurchaseInvoice{
		SupplierID: in.PartyID,
		Date:       in.Date,
		Total:      in.Total,
		Status:     PurchaseStatusPending,
		CreatedBy:  actor.UserID,
		Items:      cloneItems(in.Items),
	}
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
