// internal/core/services/workbook_test.go
package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

func productWorkbook(t *testing.T, rows ...[]string) []byte {
	t.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, h := range ProductImportHeaders {
		header.AddCell().SetString(h)
	}
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func TestParseProductWorkbook(t *testing.T) {
	data := productWorkbook(t,
		[]string{"1", "195/65R15", "All-season", "8.5 kg", "8.5", "Germany", "$95.50", "40"},
		[]string{"", "", "", "", "", "", "", ""},
		[]string{"2", "205/55R16", "Winter", "9 kg", "9", "Japan", "120", ""},
	)

	products, err := ParseProductWorkbook(data)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].CategoryID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("95.50")))
	assert.Equal(t, 40, products[0].Stock)
	assert.Equal(t, "Japan", products[1].MadeIn)
	assert.Zero(t, products[1].Stock)
}

func TestParseProductWorkbook_Errors(t *testing.T) {
	t.Run("not_a_workbook", func(t *testing.T) {
		_, err := ParseProductWorkbook([]byte("name,price\n"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("bad_cells_reported_by_row", func(t *testing.T) {
		data := productWorkbook(t,
			[]string{"x", "195/65R15", "All-season", "8.5 kg", "8.5", "Germany", "95", "ten"},
		)

		_, err := ParseProductWorkbook(data)

		var v *domain.ValidationError
		require.True(t, errors.As(err, &v))
		require.Len(t, v.Fields, 2)
		assert.Equal(t, "rows.2.category_id", v.Fields[0].Field)
		assert.Equal(t, "rows.2.stock", v.Fields[1].Field)
	})
}

func TestBuildPurchaseWorkbook(t *testing.T) {
	settled := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	invoices := []domain.PurchaseInvoice{{
		ID:        9,
		Date:      time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		Status:    domain.PurchaseStatusPaid,
		Total:     decimal.NewFromInt(70),
		SettledAt: &settled,
		Items: []domain.LineItem{
			{ProductID: 1, Quantity: 3, Price: decimal.NewFromInt(10)},
			{ProductID: 2, Quantity: 4, Price: decimal.NewFromInt(10)},
		},
	}}

	file, rows, err := buildPurchaseWorkbook(invoices)

	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	sheet := file.Sheets[0]
	lineTotal, err := sheet.Cell(2, 10)
	require.NoError(t, err)
	assert.Equal(t, "40.00", lineTotal.Value)

	settledCell, err := sheet.Cell(1, 6)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01 09:30", settledCell.Value)
}

func TestCheckStock(t *testing.T) {
	items := []domain.LineItem{
		{ProductID: 5, Quantity: 1},
		{ProductID: 6, Quantity: 1},
	}
	requested, _ := domain.RequestedQuantities(items)

	err := checkStock(items, map[int64]int{5: 0}, requested)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, int64(6), nf.ID)

	err = checkStock(items, map[int64]int{5: 0, 6: 3}, requested)
	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, int64(5), short.ProductID)

	assert.NoError(t, checkStock(items, map[int64]int{5: 1, 6: 1}, requested))
}

func TestExportDate(t *testing.T) {
	day, ok := exportDate("exports", "exports/2024/03/09/abc.xlsx")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), day)

	_, ok = exportDate("exports", "other/2024/03/09/abc.xlsx")
	assert.False(t, ok)

	_, ok = exportDate("exports", "exports/latest.xlsx")
	assert.False(t, ok)
}
