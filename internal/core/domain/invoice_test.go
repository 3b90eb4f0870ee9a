// internal/core/domain/invoice_test.go
package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

func TestPurchaseStatus_Transitions(t *testing.T) {
	tests := []struct {
		name          string
		from, to      domain.PurchaseStatus
		canTransition bool
		settles       bool
	}{
		{name: "pending_to_paid", from: domain.PurchaseStatusPending, to: domain.PurchaseStatusPaid, canTransition: true, settles: true},
		{name: "pending_to_cancelled", from: domain.PurchaseStatusPending, to: domain.PurchaseStatusCancelled, canTransition: true},
		{name: "pending_to_pending", from: domain.PurchaseStatusPending, to: domain.PurchaseStatusPending, canTransition: true},
		{name: "paid_to_paid", from: domain.PurchaseStatusPaid, to: domain.PurchaseStatusPaid},
		{name: "paid_to_pending", from: domain.PurchaseStatusPaid, to: domain.PurchaseStatusPending},
		{name: "cancelled_to_paid", from: domain.PurchaseStatusCancelled, to: domain.PurchaseStatusPaid, settles: true},
		{name: "pending_to_unknown", from: domain.PurchaseStatusPending, to: "refunded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canTransition, tt.from.CanTransitionTo(tt.to))
			assert.Equal(t, tt.settles, tt.from.SettlesStock(tt.to))
		})
	}
}

func TestPurchaseStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.PurchaseStatusPending.IsTerminal())
	assert.True(t, domain.PurchaseStatusPaid.IsTerminal())
	assert.True(t, domain.PurchaseStatusCancelled.IsTerminal())
	assert.False(t, domain.PurchaseStatus("").IsValid())
}

func TestInvoiceInput_Validate(t *testing.T) {
	valid := func() domain.InvoiceInput {
		return domain.InvoiceInput{
			PartyID: 1,
			Date:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Total:   decimal.NewFromInt(50),
			Items:   []domain.LineItem{{ProductID: 1, Quantity: 5, Price: decimal.NewFromInt(10)}},
		}
	}

	tests := []struct {
		name       string
		mutate     func(*domain.InvoiceInput)
		wantFields []string
	}{
		{name: "valid", mutate: func(*domain.InvoiceInput) {}},
		{
			name:       "missing_party_and_date",
			mutate:     func(in *domain.InvoiceInput) { in.PartyID = 0; in.Date = time.Time{} },
			wantFields: []string{"customer_id", "date"},
		},
		{
			name:       "no_items",
			mutate:     func(in *domain.InvoiceInput) { in.Items = nil },
			wantFields: []string{"items"},
		},
		{
			name: "bad_second_line",
			mutate: func(in *domain.InvoiceInput) {
				in.Items = append(in.Items, domain.LineItem{ProductID: 0, Quantity: 0, Price: decimal.NewFromInt(-1)})
			},
			wantFields: []string{"items.1.product_id", "items.1.quantity", "items.1.price"},
		},
		{
			name:       "negative_total",
			mutate:     func(in *domain.InvoiceInput) { in.Total = decimal.NewFromInt(-5) },
			wantFields: []string{"total"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)

			err := in.Validate("customer_id")
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var v *domain.ValidationError
			require.ErrorAs(t, err, &v)
			assert.ErrorIs(t, err, domain.ErrValidation)
			fields := make([]string, 0, len(v.Fields))
			for _, f := range v.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestRequestedQuantities(t *testing.T) {
	qty, order := domain.RequestedQuantities([]domain.LineItem{
		{ProductID: 7, Quantity: 2},
		{ProductID: 3, Quantity: 1},
		{ProductID: 7, Quantity: 4},
	})

	assert.Equal(t, map[int64]int{7: 6, 3: 1}, qty)
	assert.Equal(t, []int64{7, 3}, order)
}

func TestErrors(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		err := domain.ProductNotFound(9)
		assert.EqualError(t, err, "product 9 not found")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		keyed := &domain.NotFoundError{Entity: domain.EntityExport, Key: "abc"}
		assert.EqualError(t, keyed, "export abc not found")
	})

	t.Run("insufficient_stock", func(t *testing.T) {
		err := &domain.InsufficientStockError{ProductID: 1, Available: 15, Requested: 30}
		assert.EqualError(t, err, "insufficient stock for product 1: available 15, requested 30")
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("duplicate", func(t *testing.T) {
		assert.EqualError(t, &domain.DuplicateError{Entity: domain.EntitySupplier, Field: "phone_no"},
			"Supplier phone no has already exists")
		assert.EqualError(t, &domain.DuplicateError{Entity: domain.EntityCategory, Field: "name"},
			"Category name has already exists")
		assert.ErrorIs(t, &domain.DuplicateError{}, domain.ErrDuplicate)
	})

	t.Run("transaction_aborted_unwraps", func(t *testing.T) {
		cause := errors.New("could not serialize access")
		err := &domain.TransactionAbortedError{Op: "create sales invoice", Err: cause}
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	})

	t.Run("validation_or_nil", func(t *testing.T) {
		v := &domain.ValidationError{}
		assert.NoError(t, v.OrNil())
		v.Add("name", "name should not be empty")
		assert.EqualError(t, v.OrNil(), "validation failed: name: name should not be empty")
	})
}
