// internal/handlers/routes.go
package handlers

import "net/http"

// APIPrefix is the mount point of every authenticated route.
const APIPrefix = "/api"

// Router groups the HTTP handlers served by the API.
type Router struct {
	Sales      *SalesHandler
	Purchases  *PurchaseHandler
	Products   *ProductHandler
	Categories *CategoryHandler
	Customers  *PartyHandler
	Suppliers  *PartyHandler
	Dashboard  *DashboardHandler
	Health     *HealthHandler
}

// Register mounts every route on mux using method-specific patterns.
// protect wraps the /api routes; health endpoints stay open.
func (rt *Router) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /health", rt.Health.Health)
	mux.HandleFunc("GET /health/live", rt.Health.Liveness)
	mux.HandleFunc("GET /health/ready", rt.Health.Readiness)

	api := http.NewServeMux()

	api.HandleFunc("GET /sales-invoices", rt.Sales.List)
	api.HandleFunc("POST /sales-invoices", rt.Sales.Create)
	api.HandleFunc("GET /sales-invoices/{id}", rt.Sales.Get)
	api.HandleFunc("DELETE /sales-invoices/{id}", rt.Sales.Delete)

	api.HandleFunc("GET /purchase-invoices", rt.Purchases.List)
	api.HandleFunc("POST /purchase-invoices", rt.Purchases.Create)
	api.HandleFunc("GET /purchase-invoices/orders", rt.Purchases.Orders)
	api.HandleFunc("PATCH /purchase-invoices/orders/{id}", rt.Purchases.UpdateStatus)
	api.HandleFunc("GET /purchase-invoices/settled", rt.Purchases.Settled)
	api.HandleFunc("GET /purchase-invoices/report", rt.Purchases.Report)
	api.HandleFunc("GET /purchase-invoices/export", rt.Purchases.Export)
	api.HandleFunc("POST /purchase-invoices/export", rt.Purchases.StartExport)
	api.HandleFunc("GET /purchase-invoices/{id}", rt.Purchases.Get)
	api.HandleFunc("DELETE /purchase-invoices/{id}", rt.Purchases.Delete)
	api.HandleFunc("GET /exports/{id}", rt.Purchases.ExportStatus)

	api.HandleFunc("GET /products", rt.Products.List)
	api.HandleFunc("POST /products", rt.Products.Create)
	api.HandleFunc("POST /products/import", rt.Products.Import)
	api.HandleFunc("GET /products/{id}", rt.Products.Get)
	api.HandleFunc("PUT /products/{id}", rt.Products.Update)
	api.HandleFunc("DELETE /products/{id}", rt.Products.Delete)
	api.HandleFunc("GET /products/{id}/availability", rt.Products.Availability)
	api.HandleFunc("GET /products/{id}/movements", rt.Products.Movements)

	api.HandleFunc("GET /categories", rt.Categories.List)
	api.HandleFunc("POST /categories", rt.Categories.Create)
	api.HandleFunc("GET /categories/{id}", rt.Categories.Get)
	api.HandleFunc("PUT /categories/{id}", rt.Categories.Update)
	api.HandleFunc("DELETE /categories/{id}", rt.Categories.Delete)

	registerParty(api, "/customers", rt.Customers)
	registerParty(api, "/suppliers", rt.Suppliers)

	api.HandleFunc("GET /dashboard", rt.Dashboard.GetDashboard)
	api.HandleFunc("GET /dashboard/monthly", rt.Dashboard.Monthly)
	api.HandleFunc("GET /dashboard/yearly", rt.Dashboard.Yearly)
	api.HandleFunc("GET /dashboard/top-products", rt.Dashboard.TopProducts)
	api.HandleFunc("GET /dashboard/top-categories", rt.Dashboard.TopCategories)

	mux.Handle(APIPrefix+"/", http.StripPrefix(APIPrefix, protect(api)))
}

func registerParty(mux *http.ServeMux, base string, h *PartyHandler) {
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}
