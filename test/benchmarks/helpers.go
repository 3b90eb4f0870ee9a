// test/benchmarks/helpers.go
package benchmarks

import (
	"bytes"
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockflow-be/internal/core/services"
)

// productWorkbook renders n product rows in the import layout.
func productWorkbook(n int) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, title := range services.ProductImportHeaders {
		header.AddCell().SetString(title)
	}
	for i := 0; i < n; i++ {
		row := sheet.AddRow()
		row.AddCell().SetInt(1 + i%4)
		row.AddCell().SetString(fmt.Sprintf("%d/65R15", 175+i%60))
		row.AddCell().SetString("Benchmark tyre")
		row.AddCell().SetString("8 kg")
		row.AddCell().SetString("8.25")
		row.AddCell().SetString("Germany")
		row.AddCell().SetString("99.90")
		row.AddCell().SetInt(i % 200)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
