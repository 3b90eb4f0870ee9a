// internal/core/domain/catalog_test.go
package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

func TestProduct_Validate(t *testing.T) {
	valid := func() *domain.Product {
		return &domain.Product{
			CategoryID:  1,
			Size:        "195/65R15",
			Description: "All-season tyre",
			NetWeight:   "8.5 kg",
			Kg:          decimal.RequireFromString("8.5"),
			MadeIn:      "Germany",
			Price:       decimal.NewFromInt(95),
			Stock:       10,
		}
	}

	tests := []struct {
		name      string
		mutate    func(*domain.Product)
		wantField string
	}{
		{name: "valid", mutate: func(*domain.Product) {}},
		{name: "zero_stock_allowed", mutate: func(p *domain.Product) { p.Stock = 0 }},
		{name: "missing_category", mutate: func(p *domain.Product) { p.CategoryID = 0 }, wantField: "category_id"},
		{name: "blank_size", mutate: func(p *domain.Product) { p.Size = "   " }, wantField: "size"},
		{name: "negative_price", mutate: func(p *domain.Product) { p.Price = decimal.NewFromInt(-1) }, wantField: "price"},
		{name: "negative_stock", mutate: func(p *domain.Product) { p.Stock = -3 }, wantField: "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)

			err := p.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var v *domain.ValidationError
			require.ErrorAs(t, err, &v)
			require.Len(t, v.Fields, 1)
			assert.Equal(t, tt.wantField, v.Fields[0].Field)
		})
	}
}

func TestParty_ValidateTrims(t *testing.T) {
	p := &domain.Party{Name: "  Acme ", PhoneNo: " 555-0100", Address: "1 Main St "}
	require.NoError(t, p.Validate())
	assert.Equal(t, domain.Party{Name: "Acme", PhoneNo: "555-0100", Address: "1 Main St"}, *p)

	err := (&domain.Party{Name: "Acme"}).Validate()
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Fields, 2)
}

func TestCategory_Validate(t *testing.T) {
	c := &domain.Category{Name: " Rims "}
	require.NoError(t, c.Validate())
	assert.Equal(t, "Rims", c.Name)
	assert.Error(t, (&domain.Category{Name: " "}).Validate())
}

func TestActor_IsAdmin(t *testing.T) {
	assert.True(t, domain.Actor{UserID: 1, RoleID: domain.RoleAdmin}.IsAdmin())
	assert.False(t, domain.Actor{UserID: 2, RoleID: domain.RoleStaff}.IsAdmin())
}
