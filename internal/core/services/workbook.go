// internal/core/services/workbook.go
package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// XLSXContentType is the media type of generated workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var purchaseHeaders = []string{
	"Invoice ID", "Date", "Supplier", "Phone No", "Status", "Total", "Settled At",
	"Product ID", "Quantity", "Price", "Line Total",
}

// ProductImportHeaders is the column order expected by ParseProductWorkbook
var ProductImportHeaders = []string{
	"category_id", "size", "description", "net_weight", "kg", "made_in", "price", "stock",
}

// buildPurchaseWorkbook lays out one row per line item, repeating the
// invoice columns on each row
func buildPurchaseWorkbook(invoices []domain.PurchaseInvoice) (*xlsx.File, int, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Purchase Invoices")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to add worksheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range purchaseHeaders {
		cell := header.AddCell()
		cell.Value = title
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	rows := 0
	for _, inv := range invoices {
		supplier, phone := "", ""
		if inv.Supplier != nil {
			supplier, phone = inv.Supplier.Name, inv.Supplier.PhoneNo
		}
		settled := ""
		if inv.SettledAt != nil {
			settled = inv.SettledAt.Format("2006-01-02 15:04")
		}

		for _, item := range inv.Items {
			row := sheet.AddRow()
			row.AddCell().SetInt64(inv.ID)
			row.AddCell().SetString(inv.Date.Format("2006-01-02"))
			row.AddCell().SetString(supplier)
			row.AddCell().SetString(phone)
			row.AddCell().SetString(string(inv.Status))
			row.AddCell().SetString(inv.Total.StringFixed(2))
			row.AddCell().SetString(settled)
			row.AddCell().SetInt64(item.ProductID)
			row.AddCell().SetInt(item.Quantity)
			row.AddCell().SetString(item.Price.StringFixed(2))
			row.AddCell().SetString(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
			rows++
		}
	}

	for i := range purchaseHeaders {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	return file, rows, nil
}

// ParseProductWorkbook reads products from the first sheet of an xlsx file.
// The first row is a header; blank rows are skipped.
func ParseProductWorkbook(data []byte) ([]domain.Product, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, domain.NewValidationError("file", "file is not a valid xlsx workbook")
	}
	if len(file.Sheets) == 0 {
		return nil, domain.NewValidationError("file", "workbook has no sheets")
	}

	var (
		products []domain.Product
		invalid  = &domain.ValidationError{}
		rowIdx   = 0
	)
	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		if rowIdx == 1 {
			return nil
		}

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			return strings.TrimSpace(c.String())
		}

		blank := true
		for i := range ProductImportHeaders {
			if get(i) != "" {
				blank = false
				break
			}
		}
		if blank {
			return nil
		}

		p := domain.Product{
			Size:        get(1),
			Description: get(2),
			NetWeight:   get(3),
			MadeIn:      get(5),
		}
		field := func(name string) string { return fmt.Sprintf("rows.%d.%s", rowIdx, name) }

		var convErr error
		if p.CategoryID, convErr = strconv.ParseInt(get(0), 10, 64); convErr != nil {
			invalid.Add(field("category_id"), "category_id must be a number")
		}
		if p.Kg, convErr = parseDecimal(get(4)); convErr != nil {
			invalid.Add(field("kg"), "kg must be a number")
		}
		if p.Price, convErr = parseDecimal(get(6)); convErr != nil {
			invalid.Add(field("price"), "price must be a number")
		}
		if s := get(7); s != "" {
			if p.Stock, convErr = strconv.Atoi(s); convErr != nil {
				invalid.Add(field("stock"), "stock must be an integer")
			}
		}

		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook rows: %w", err)
	}
	if err := invalid.OrNil(); err != nil {
		return nil, err
	}

	return products, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimPrefix(s, "$"))
}
