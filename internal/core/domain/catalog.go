// internal/core/domain/catalog.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entity names used in errors and logs.
const (
	EntityProduct         = "product"
	EntityCategory        = "category"
	EntityCustomer        = "customer"
	EntitySupplier        = "supplier"
	EntitySalesInvoice    = "sales invoice"
	EntityPurchaseInvoice = "purchase invoice"
	EntityExport          = "export"
)

// DefaultLowStockThreshold is the stock level under which a product counts as a stock alert.
const DefaultLowStockThreshold = 100

// Category groups products.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate performs domain validation on the category
func (c *Category) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return NewValidationError("name", "name should not be empty")
	}
	return nil
}

// Product is a stock-keeping unit. Stock is only changed through the product ledger.
type Product struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
	Size        string          `json:"size"`
	Description string          `json:"description"`
	NetWeight   string          `json:"net_weight"`
	Kg          decimal.Decimal `json:"kg"`
	MadeIn      string          `json:"made_in"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the product
func (p *Product) Validate() error {
	v := &ValidationError{}
	if p.CategoryID <= 0 {
		v.Add("category_id", "category_id must be a positive number")
	}
	if strings.TrimSpace(p.Size) == "" {
		v.Add("size", "size should not be empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		v.Add("description", "description should not be empty")
	}
	if strings.TrimSpace(p.NetWeight) == "" {
		v.Add("net_weight", "net_weight should not be empty")
	}
	if strings.TrimSpace(p.MadeIn) == "" {
		v.Add("made_in", "made_in should not be empty")
	}
	if p.Kg.IsNegative() {
		v.Add("kg", "kg cannot be negative")
	}
	if p.Price.IsNegative() {
		v.Add("price", "price cannot be negative")
	}
	if p.Stock < 0 {
		v.Add("stock", "stock cannot be negative")
	}
	return v.OrNil()
}

// Party is the shared shape of customers and suppliers.
type Party struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	PhoneNo   string    `json:"phone_no"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Customer buys products through sales invoices.
type Customer = Party

// Supplier sells products to us through purchase invoices.
type Supplier = Party

// Validate performs domain validation on the party
func (p *Party) Validate() error {
	v := &ValidationError{}
	p.Name = strings.TrimSpace(p.Name)
	p.PhoneNo = strings.TrimSpace(p.PhoneNo)
	p.Address = strings.TrimSpace(p.Address)
	if p.Name == "" {
		v.Add("name", "name should not be empty")
	}
	if p.PhoneNo == "" {
		v.Add("phone_no", "phone_no should not be empty")
	}
	if p.Address == "" {
		v.Add("address", "address should not be empty")
	}
	return v.OrNil()
}
