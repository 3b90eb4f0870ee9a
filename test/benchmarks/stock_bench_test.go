//go:build integration

// test/benchmarks/stock_bench_test.go
package benchmarks

import (
	"context"
	"testing"

	"github.com/ammerola/stockflow-be/internal/adapters/db"
	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/test/helpers"
)

func BenchmarkStockOperations(b *testing.B) {
	testDB := helpers.SetupTestDB(b)
	logger := helpers.TestLogger()
	database := testDB.Database
	ctx := context.Background()

	helpers.TruncateAllTables(b, testDB.PgxPool)
	categoryID, customerID, supplierID := helpers.SeedCatalog(b, testDB.PgxPool)

	uow := db.NewTransactionScope(database, logger)
	products := services.NewProductService(
		db.NewProductRepository(database, logger),
		db.NewProductLedger(database, logger),
		uow, nil, logger,
	)
	sales := services.NewSalesService(uow, db.NewSalesInvoiceRepository(database, logger), nil, logger)
	purchases := services.NewPurchaseService(uow, db.NewPurchaseInvoiceRepository(database, logger), nil, logger)

	product := helpers.CreateTestProduct(func(p *domain.Product) {
		p.CategoryID = categoryID
		p.Stock = 1 << 30
	})
	if err := products.Create(ctx, helpers.TestAdmin, product); err != nil {
		b.Fatal(err)
	}

	b.Run("SalesInvoice", func(b *testing.B) {
		in := helpers.CreateTestInvoiceInput(customerID, helpers.Line(product.ID, 1))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := sales.Create(ctx, helpers.TestAdmin, in); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("SalesInvoiceParallel", func(b *testing.B) {
		in := helpers.CreateTestInvoiceInput(customerID, helpers.Line(product.ID, 1))
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_, _ = sales.Create(ctx, helpers.TestAdmin, in)
			}
		})
	})

	b.Run("PurchaseSettle", func(b *testing.B) {
		in := helpers.CreateTestInvoiceInput(supplierID, helpers.Line(product.ID, 1))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			inv, err := purchases.Create(ctx, helpers.TestAdmin, in)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := purchases.Transition(ctx, helpers.TestAdmin, inv.ID, domain.PurchaseStatusPaid); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Availability", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = products.CheckAvailability(ctx, product.ID)
		}
	})
}
