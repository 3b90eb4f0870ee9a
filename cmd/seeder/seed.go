// cmd/seeder/seed.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ammerola/stockflow-be/internal/adapters/db"
	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data through the application services",
	Long: `seed creates categories, customers, suppliers and products, then
records purchase and sales invoices against them. Every write goes through
the services, so stock movements are recorded exactly as the API would.

Run it against an empty database; duplicate names are rejected.`,
	Example: `  # Built-in sample catalog
  seeder seed

  # Products from a workbook instead of the built-in catalog
  seeder seed --products products.xlsx`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("products", "", "Product workbook to import instead of the sample products")
	seedCmd.Flags().Bool("skip-invoices", false, "Only seed catalog and parties")
}

type seeder struct {
	categories *services.CategoryService
	customers  *services.PartyService
	suppliers  *services.PartyService
	products   *services.ProductService
	sales      *services.SalesService
	purchases  *services.PurchaseService
	actor      domain.Actor
	logger     *slog.Logger
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	workbook, _ := cmd.Flags().GetString("products")
	skipInvoices, _ := cmd.Flags().GetBool("skip-invoices")

	database, err := db.NewDatabase(ctx, db.NewConfig(cfg.Database), slogger)
	if err != nil {
		return err
	}
	defer database.Close()

	uow := db.NewTransactionScope(database, slogger)
	s := &seeder{
		categories: services.NewCategoryService(db.NewCategoryRepository(database, slogger), slogger),
		customers:  services.NewCustomerService(db.NewCustomerRepository(database, slogger), slogger),
		suppliers:  services.NewSupplierService(db.NewSupplierRepository(database, slogger), slogger),
		products: services.NewProductService(
			db.NewProductRepository(database, slogger),
			db.NewProductLedger(database, slogger),
			uow, nil, slogger,
		),
		sales:     services.NewSalesService(uow, db.NewSalesInvoiceRepository(database, slogger), nil, slogger),
		purchases: services.NewPurchaseService(uow, db.NewPurchaseInvoiceRepository(database, slogger), nil, slogger),
		actor:     domain.Actor{UserID: 1, RoleID: domain.RoleAdmin},
		logger:    slogger,
	}

	categories, err := s.seedCategories(ctx)
	if err != nil {
		return err
	}
	customers, err := s.seedParties(ctx, s.customers, sampleCustomers)
	if err != nil {
		return err
	}
	suppliers, err := s.seedParties(ctx, s.suppliers, sampleSuppliers)
	if err != nil {
		return err
	}

	var products []domain.Product
	if workbook != "" {
		products, err = s.importProducts(ctx, workbook)
	} else {
		products, err = s.seedProducts(ctx, categories)
	}
	if err != nil {
		return err
	}

	if !skipInvoices {
		if err := s.seedInvoices(ctx, customers, suppliers, products); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "seed complete",
		slog.Int("categories", len(categories)),
		slog.Int("customers", len(customers)),
		slog.Int("suppliers", len(suppliers)),
		slog.Int("products", len(products)))
	return nil
}

var sampleCategories = []string{"Passenger Tyres", "Truck Tyres", "Alloy Rims", "Batteries"}

var sampleCustomers = []domain.Party{
	{Name: "Northside Auto", PhoneNo: "555-0101", Address: "12 Harbour Rd"},
	{Name: "Quick Fit Garage", PhoneNo: "555-0102", Address: "4 Mill Lane"},
	{Name: "Fleet Services Ltd", PhoneNo: "555-0103", Address: "88 Depot Way"},
}

var sampleSuppliers = []domain.Party{
	{Name: "Continental Wholesale", PhoneNo: "555-0201", Address: "1 Industrial Park"},
	{Name: "Eastern Imports", PhoneNo: "555-0202", Address: "30 Dock St"},
}

func (s *seeder) seedCategories(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(sampleCategories))
	for _, name := range sampleCategories {
		c := &domain.Category{Name: name}
		if err := s.categories.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *seeder) seedParties(ctx context.Context, svc *services.PartyService, parties []domain.Party) ([]domain.Party, error) {
	out := make([]domain.Party, 0, len(parties))
	for _, p := range parties {
		if err := svc.Create(ctx, &p); err != nil {
			return nil, fmt.Errorf("failed to seed %q: %w", p.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *seeder) seedProducts(ctx context.Context, categories []domain.Category) ([]domain.Product, error) {
	samples := []domain.Product{
		{CategoryID: categories[0].ID, Size: "195/65R15", Description: "All-season touring", NetWeight: "8.5 kg", Kg: decimal.RequireFromString("8.5"), MadeIn: "Germany", Price: decimal.RequireFromString("95.50"), Stock: 120},
		{CategoryID: categories[0].ID, Size: "205/55R16", Description: "Winter compound", NetWeight: "9 kg", Kg: decimal.NewFromInt(9), MadeIn: "Japan", Price: decimal.NewFromInt(120), Stock: 80},
		{CategoryID: categories[1].ID, Size: "315/80R22.5", Description: "Drive axle", NetWeight: "68 kg", Kg: decimal.NewFromInt(68), MadeIn: "France", Price: decimal.NewFromInt(410), Stock: 24},
		{CategoryID: categories[2].ID, Size: "17x7.5", Description: "Five spoke alloy", NetWeight: "10.2 kg", Kg: decimal.RequireFromString("10.2"), MadeIn: "Italy", Price: decimal.NewFromInt(180), Stock: 40},
		{CategoryID: categories[3].ID, Size: "H6", Description: "AGM 70Ah", NetWeight: "20 kg", Kg: decimal.NewFromInt(20), MadeIn: "Korea", Price: decimal.NewFromInt(165), Stock: 0},
	}

	out := make([]domain.Product, 0, len(samples))
	for _, p := range samples {
		if err := s.products.Create(ctx, s.actor, &p); err != nil {
			return nil, fmt.Errorf("failed to seed product %q: %w", p.Size, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *seeder) importProducts(ctx context.Context, path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	products, err := services.ParseProductWorkbook(data)
	if err != nil {
		return nil, err
	}
	n, err := s.products.Import(ctx, s.actor, products)
	if err != nil {
		var invalid *domain.ValidationError
		if errors.As(err, &invalid) {
			for _, f := range invalid.Fields {
				s.logger.ErrorContext(ctx, "invalid row", slog.String("field", f.Field), slog.String("message", f.Message))
			}
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "products imported", slog.Int("count", n), slog.String("file", path))
	return products, nil
}

// seedInvoices needs at least two products with ids. Imported products have
// none, so invoices are skipped for them.
func (s *seeder) seedInvoices(ctx context.Context, customers, suppliers []domain.Party, products []domain.Product) error {
	if len(products) < 2 || products[0].ID == 0 {
		s.logger.WarnContext(ctx, "skipping invoices, no product ids available")
		return nil
	}

	now := time.Now().UTC()
	line := func(p domain.Product, qty int) domain.LineItem {
		return domain.LineItem{ProductID: p.ID, Quantity: qty, Price: p.Price}
	}
	total := func(items ...domain.LineItem) decimal.Decimal {
		sum := decimal.Zero
		for _, it := range items {
			sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		return sum
	}

	// One settled order and one still pending.
	for i, status := range []domain.PurchaseStatus{domain.PurchaseStatusPaid, domain.PurchaseStatusPending} {
		items := []domain.LineItem{line(products[0], 30), line(products[1], 10)}
		invoice, err := s.purchases.Create(ctx, s.actor, domain.InvoiceInput{
			PartyID: suppliers[i%len(suppliers)].ID,
			Date:    now.AddDate(0, -i-1, 0),
			Total:   total(items...),
			Items:   items,
		})
		if err != nil {
			return fmt.Errorf("failed to seed purchase invoice: %w", err)
		}
		if status != domain.PurchaseStatusPending {
			if _, err := s.purchases.Transition(ctx, s.actor, invoice.ID, status); err != nil {
				return fmt.Errorf("failed to settle purchase invoice %d: %w", invoice.ID, err)
			}
		}
	}

	for i, customer := range customers {
		items := []domain.LineItem{line(products[i%2], 5+i)}
		if _, err := s.sales.Create(ctx, s.actor, domain.InvoiceInput{
			PartyID: customer.ID,
			Date:    now.AddDate(0, 0, -i),
			Total:   total(items...),
			Items:   items,
		}); err != nil {
			return fmt.Errorf("failed to seed sales invoice: %w", err)
		}
	}
	return nil
}
