//go:build e2e
// +build e2e

// test/e2e/stockflow_workflow_test.go
package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ammerola/stockflow-be/internal/adapters/db"
	redis_a "github.com/ammerola/stockflow-be/internal/adapters/redis_adapter"
	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/internal/handlers"
	"github.com/ammerola/stockflow-be/internal/handlers/middleware"
	"github.com/ammerola/stockflow-be/internal/pkg/auth"
	"github.com/ammerola/stockflow-be/test/helpers"
)

type StockflowE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	token     string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis

	categoryID int64
	customerID int64
	supplierID int64
}

// envelope mirrors the response body with Data left raw.
type envelope struct {
	Success    bool              `json:"success"`
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Errors     []json.RawMessage `json:"errors"`
}

func (s *StockflowE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + handlers.APIPrefix
}

func (s *StockflowE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *StockflowE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.categoryID, s.customerID, s.supplierID = helpers.SeedCatalog(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *StockflowE2ESuite) TestSalesAndPurchaseWorkflow() {
	productID := s.createProduct(20)

	// Sell 5, leaving 15.
	resp := s.makeRequest(http.MethodPost, "/sales-invoices", s.invoiceBody("customer_id", s.customerID, productID, 5))
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	s.Equal(15, s.availability(productID))

	// Overselling is rejected and changes nothing.
	resp = s.makeRequest(http.MethodPost, "/sales-invoices", s.invoiceBody("customer_id", s.customerID, productID, 30))
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	env := s.decodeEnvelope(resp)
	s.Contains(env.Message, "available 15, requested 30")
	s.Equal(15, s.availability(productID))
	s.Equal(1, helpers.CountRows(s.T(), s.testDB.PgxPool, "sales_invoices"))

	// A pending purchase leaves stock alone until it is paid.
	resp = s.makeRequest(http.MethodPost, "/purchase-invoices", s.invoiceBody("supplier_id", s.supplierID, productID, 50))
	s.Equal(http.StatusCreated, resp.StatusCode)
	var purchase domain.PurchaseInvoice
	s.decodeData(resp, &purchase)
	s.Equal(domain.PurchaseStatusPending, purchase.Status)
	s.Equal(15, s.availability(productID))

	resp = s.makeRequest(http.MethodGet, "/purchase-invoices/orders", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	path := fmt.Sprintf("/purchase-invoices/orders/%d", purchase.ID)
	for range 2 {
		resp = s.makeRequest(http.MethodPatch, path, map[string]string{"status": "paid"})
		s.Equal(http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	s.Equal(65, s.availability(productID))

	// Ledger and stock column agree.
	var ledger int
	err := s.testDB.PgxPool.QueryRow(s.T().Context(),
		`SELECT COALESCE(SUM(delta), 0) FROM stock_movements WHERE product_id = $1`, productID).Scan(&ledger)
	s.Require().NoError(err)
	s.Equal(65, ledger)
}

func (s *StockflowE2ESuite) TestValidationErrors() {
	resp := s.makeRequest(http.MethodPost, "/sales-invoices", map[string]any{
		"customer_id": 0,
		"date":        "2024-03-15",
		"total":       "0",
		"items":       []any{},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	env := s.decodeEnvelope(resp)
	s.False(env.Success)
	s.NotEmpty(env.Errors)

	resp = s.makeRequest(http.MethodGet, "/products/999999", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *StockflowE2ESuite) TestConcurrentSales() {
	productID := s.createProduct(10)

	var wg sync.WaitGroup
	codes := make(chan int, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := s.makeRequest(http.MethodPost, "/sales-invoices", s.invoiceBody("customer_id", s.customerID, productID, 3))
			codes <- resp.StatusCode
			resp.Body.Close()
		}()
	}
	wg.Wait()
	close(codes)

	created := 0
	for code := range codes {
		if code == http.StatusCreated {
			created++
		}
	}
	s.Equal(3, created)
	s.Equal(1, s.availability(productID))
}

func (s *StockflowE2ESuite) TestDashboard() {
	productID := s.createProduct(20)
	resp := s.makeRequest(http.MethodPost, "/sales-invoices", s.invoiceBody("customer_id", s.customerID, productID, 2))
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodGet, "/dashboard", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var totals domain.DashboardTotals
	s.decodeData(resp, &totals)
	s.Equal("20", totals.CustomerInvoiceTotal.String())
	s.Equal(int64(1), totals.StockAlert)
}

func (s *StockflowE2ESuite) TestAuthAndHealth() {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+"/products", nil)
	s.Require().NoError(err)
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp, err = s.client.Get(s.server.URL + "/health/live")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *StockflowE2ESuite) startTestServer() *httptest.Server {
	cfg := helpers.LoadTestConfig()
	logger := helpers.TestLogger()
	database := s.testDB.Database
	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, logger)

	uow := db.NewTransactionScope(database, logger)
	purchaseStore := db.NewPurchaseInvoiceRepository(database, logger)
	reports := services.NewReportService(db.NewReportRepository(database, logger), cache, services.ReportOptions{
		CacheTTL:          cfg.Reports.CacheTTL,
		LowStockThreshold: cfg.Reports.LowStockThreshold,
		TopLimit:          cfg.Reports.TopLimit,
	}, logger)
	exports := services.NewExportService(purchaseStore, nil, cache, nil, services.ExportOptions{
		KeyPrefix: cfg.Export.KeyPrefix,
	}, logger)

	router := &handlers.Router{
		Sales:     handlers.NewSalesHandler(services.NewSalesService(uow, db.NewSalesInvoiceRepository(database, logger), nil, logger), logger),
		Purchases: handlers.NewPurchaseHandler(services.NewPurchaseService(uow, purchaseStore, nil, logger), reports, exports, logger),
		Products: handlers.NewProductHandler(services.NewProductService(
			db.NewProductRepository(database, logger),
			db.NewProductLedger(database, logger),
			uow, nil, logger,
		), logger, 1<<20),
		Categories: handlers.NewCategoryHandler(services.NewCategoryService(db.NewCategoryRepository(database, logger), logger), logger),
		Customers:  handlers.NewPartyHandler(services.NewCustomerService(db.NewCustomerRepository(database, logger), logger), "customers", logger),
		Suppliers:  handlers.NewPartyHandler(services.NewSupplierService(db.NewSupplierRepository(database, logger), logger), "suppliers", logger),
		Dashboard:  handlers.NewDashboardHandler(reports, cfg.Reports.TopLimit, logger),
		Health:     handlers.NewHealthHandler(database, cache, nil, cfg, logger),
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration, cfg.Auth.Issuer)
	token, _, err := tokens.Issue(helpers.TestAdmin)
	s.Require().NoError(err)
	s.token = token

	mux := http.NewServeMux()
	router.Register(mux, func(h http.Handler) http.Handler {
		return middleware.Chain(h, middleware.Authenticate(tokens, logger), middleware.RequireRole(domain.RoleAdmin))
	})
	return httptest.NewServer(middleware.Chain(mux, middleware.Recovery(logger)))
}

func (s *StockflowE2ESuite) createProduct(stock int) int64 {
	resp := s.makeRequest(http.MethodPost, "/products", map[string]any{
		"category_id": s.categoryID,
		"size":        "195/65R15",
		"description": "All-season tyre",
		"net_weight":  "8.5 kg",
		"kg":          "8.5",
		"made_in":     "Germany",
		"price":       "10",
		"stock":       stock,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var product domain.Product
	s.decodeData(resp, &product)
	return product.ID
}

func (s *StockflowE2ESuite) invoiceBody(partyField string, partyID, productID int64, qty int) map[string]any {
	return map[string]any{
		partyField: partyID,
		"date":     "2024-03-15",
		"total":    fmt.Sprintf("%d", qty*10),
		"items": []map[string]any{
			{"product_id": productID, "quantity": qty, "price": "10"},
		},
	}
}

func (s *StockflowE2ESuite) availability(productID int64) int {
	resp := s.makeRequest(http.MethodGet, fmt.Sprintf("/products/%d/availability", productID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var out handlers.Availability
	s.decodeData(resp, &out)
	return out.Stock
}

func (s *StockflowE2ESuite) makeRequest(method, path string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *StockflowE2ESuite) decodeEnvelope(resp *http.Response) envelope {
	defer resp.Body.Close()
	var env envelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func (s *StockflowE2ESuite) decodeData(resp *http.Response, v any) {
	env := s.decodeEnvelope(resp)
	s.Require().NoError(json.Unmarshal(env.Data, v))
}

func TestStockflowE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(StockflowE2ESuite))
}
