// internal/handlers/invoices.go
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type invoiceLineRequest struct {
	ProductID int64           `json:"product_id" validate:"gt=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// CreateSalesInvoiceRequest is the body of POST /sales-invoices.
type CreateSalesInvoiceRequest struct {
	CustomerID int64                `json:"customer_id" validate:"gt=0"`
	Date       string               `json:"date" validate:"required"`
	Total      decimal.Decimal      `json:"total"`
	Items      []invoiceLineRequest `json:"items" validate:"required,min=1,dive"`
}

// CreatePurchaseInvoiceRequest is the body of POST /purchase-invoices.
type CreatePurchaseInvoiceRequest struct {
	SupplierID int64                `json:"supplier_id" validate:"gt=0"`
	Date       string               `json:"date" validate:"required"`
	Total      decimal.Decimal      `json:"total"`
	Items      []invoiceLineRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseStatusRequest is the body of PATCH /purchase-invoices/orders/{id}.
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid cancelled"`
}

func (req *CreateSalesInvoiceRequest) toInput() (domain.InvoiceInput, error) {
	return invoiceInput(req.CustomerID, req.Date, req.Total, req.Items)
}

func (req *CreatePurchaseInvoiceRequest) toInput() (domain.InvoiceInput, error) {
	return invoiceInput(req.SupplierID, req.Date, req.Total, req.Items)
}

func invoiceInput(partyID int64, rawDate string, total decimal.Decimal, lines []invoiceLineRequest) (domain.InvoiceInput, error) {
	date, err := parseDate(rawDate)
	if err != nil {
		return domain.InvoiceInput{}, err
	}

	items := make([]domain.LineItem, len(lines))
	for i, line := range lines {
		items[i] = domain.LineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
	}

	return domain.InvoiceInput{
		PartyID: partyID,
		Date:    date,
		Total:   total,
		Items:   items,
	}, nil
}

// SalesHandler serves /sales-invoices
type SalesHandler struct {
	service ports.SalesService
	logger  *slog.Logger
}

// NewSalesHandler creates a new sales invoice handler
func NewSalesHandler(service ports.SalesService, logger *slog.Logger) *SalesHandler {
	return &SalesHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "sales_invoices")),
	}
}

// Create handles POST /sales-invoices
func (h *SalesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateSalesInvoiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	actor, err := actorFrom(r)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	invoice, err := h.service.Create(ctx, actor, input)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, invoice)
}

// List handles GET /sales-invoices
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Get handles GET /sales-invoices/{id}
func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	invoice, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, invoice)
}

// Delete handles DELETE /sales-invoices/{id}. Stock is left as it is.
func (h *SalesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	actor, err := actorFrom(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PurchaseHandler serves /purchase-invoices
type PurchaseHandler struct {
	service ports.PurchaseService
	reports ports.ReportService
	exports ports.ExportService
	logger  *slog.Logger
	now     func() time.Time
}

// NewPurchaseHandler creates a new purchase invoice handler
func NewPurchaseHandler(
	service ports.PurchaseService,
	reports ports.ReportService,
	exports ports.ExportService,
	logger *slog.Logger,
) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		reports: reports,
		exports: exports,
		logger:  logger.With(slog.String("handler", "purchase_invoices")),
		now:     time.Now,
	}
}

// Create handles POST /purchase-invoices. The invoice starts pending and
// does not touch stock.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePurchaseInvoiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	actor, err := actorFrom(r)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	invoice, err := h.service.Create(ctx, actor, input)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, invoice)
}

// List handles GET /purchase-invoices
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.List)
}

// Orders handles GET /purchase-invoices/orders
func (h *PurchaseHandler) Orders(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.FindOrders)
}

// Settled handles GET /purchase-invoices/settled
func (h *PurchaseHandler) Settled(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.FindSettled)
}

func (h *PurchaseHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	find func(ctx context.Context, params ports.ListParams) (*ports.ListResult[domain.PurchaseInvoice], error),
) {
	params, err := listParams(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	result, err := find(r.Context(), params)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Get handles GET /purchase-invoices/{id}
func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	invoice, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, invoice)
}

// UpdateStatus handles PATCH /purchase-invoices/orders/{id}
func (h *PurchaseHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	var req UpdatePurchaseStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	actor, err := actorFrom(r)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	invoice, err := h.service.Transition(ctx, actor, id, domain.PurchaseStatus(req.Status))
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, invoice)
}

// Delete handles DELETE /purchase-invoices/{id}
func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	actor, err := actorFrom(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MonthlyPurchase is one row of the purchase report.
type MonthlyPurchase struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// Report handles GET /purchase-invoices/report: purchase totals per month
// of the current year.
func (h *PurchaseHandler) Report(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reports.Monthly(r.Context(), h.now().Year())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	rows := make([]MonthlyPurchase, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, MonthlyPurchase{Month: t.Month, Total: t.Purchases})
	}

	response.JSON(w, http.StatusOK, rows)
}

// Export handles GET /purchase-invoices/export by streaming the workbook.
func (h *PurchaseHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.exports.WritePurchaseWorkbook(r.Context(), &buf); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("purchase-invoices-%s.xlsx", h.now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export stream interrupted", slog.String("error", err.Error()))
	}
}

// StartExport handles POST /purchase-invoices/export by queueing a job that
// uploads the workbook and publishes a download link.
func (h *PurchaseHandler) StartExport(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	job, err := h.exports.Start(r.Context(), actor)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusAccepted, job)
}

// ExportStatus handles GET /exports/{id}
func (h *PurchaseHandler) ExportStatus(w http.ResponseWriter, r *http.Request) {
	job, err := h.exports.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, job)
}
