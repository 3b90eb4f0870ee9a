// internal/handlers/products.go
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/internal/pkg/response"
)

// ProductRequest is the body of POST and PUT /products. Stock is only read
// on create; later changes go through invoices.
type ProductRequest struct {
	CategoryID  int64           `json:"category_id" validate:"gt=0"`
	Size        string          `json:"size" validate:"required,max=100"`
	Description string          `json:"description" validate:"required"`
	NetWeight   string          `json:"net_weight" validate:"required"`
	Kg          decimal.Decimal `json:"kg"`
	MadeIn      string          `json:"made_in" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

func (req *ProductRequest) toProduct() *domain.Product {
	return &domain.Product{
		CategoryID:  req.CategoryID,
		Size:        strings.TrimSpace(req.Size),
		Description: strings.TrimSpace(req.Description),
		NetWeight:   strings.TrimSpace(req.NetWeight),
		Kg:          req.Kg,
		MadeIn:      strings.TrimSpace(req.MadeIn),
		Price:       req.Price,
		Stock:       req.Stock,
	}
}

// Availability is the body of GET /products/{id}/availability.
type Availability struct {
	ProductID int64 `json:"product_id"`
	Stock     int   `json:"stock"`
}

// ProductHandler serves /products
type ProductHandler struct {
	service     ports.ProductService
	logger      *slog.Logger
	maxFileSize int64
}

// NewProductHandler creates a new product handler. Imports larger than
// maxFileSize bytes are rejected.
func NewProductHandler(service ports.ProductService, logger *slog.Logger, maxFileSize int64) *ProductHandler {
	return &ProductHandler{
		service:     service,
		logger:      logger.With(slog.String("handler", "products")),
		maxFileSize: maxFileSize,
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	actor, err := actorFrom(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	product := req.toProduct()
	if err := h.service.Create(r.Context(), actor, product); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, product)
}

// List handles GET /products?page=&limit=&maxStock=&search=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	filter := ports.ProductFilter{
		ListParams: params,
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
	}
	if raw := r.URL.Query().Get("maxStock"); raw != "" {
		maxStock, err := strconv.Atoi(raw)
		if err != nil {
			writeError(r.Context(), w, h.logger, domain.NewValidationError("maxStock", "maxStock must be an integer number"))
			return
		}
		filter.MaxStock = &maxStock
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// Update handles PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	product, err := h.service.Update(r.Context(), id, req.toProduct())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Availability handles GET /products/{id}/availability
func (h *ProductHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	stock, err := h.service.CheckAvailability(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, Availability{ProductID: id, Stock: stock})
}

// Movements handles GET /products/{id}/movements
func (h *ProductHandler) Movements(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	params, err := listParams(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	result, err := h.service.Movements(r.Context(), id, params)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Import handles POST /products/import with a multipart "file" field
// holding an xlsx workbook.
func (h *ProductHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(ctx, w, h.logger, domain.NewValidationError("file", "file is too large"))
			return
		}
		writeError(ctx, w, h.logger, domain.NewValidationError("file", "failed to parse form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, h.logger, domain.NewValidationError("file", "file should not be empty"))
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeError(ctx, w, h.logger, domain.NewValidationError("file", "file is too large"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		writeError(ctx, w, h.logger, domain.NewValidationError("file", "only .xlsx files are allowed"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	products, err := services.ParseProductWorkbook(data)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	actor, err := actorFrom(r)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	count, err := h.service.Import(ctx, actor, products)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "product workbook imported",
		slog.String("filename", header.Filename),
		slog.Int("count", count))

	response.JSON(w, http.StatusCreated, map[string]int{"imported": count})
}
