// internal/handlers/catalog.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/pkg/response"
)

// CategoryRequest is the body of POST and PUT /categories.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// PartyRequest is the body of POST and PUT /customers and /suppliers.
type PartyRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	PhoneNo string `json:"phone_no" validate:"required,max=50"`
	Address string `json:"address" validate:"required"`
}

func (req *PartyRequest) toParty() *domain.Party {
	return &domain.Party{Name: req.Name, PhoneNo: req.PhoneNo, Address: req.Address}
}

// CategoryHandler serves /categories
type CategoryHandler struct {
	service ports.CategoryService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service ports.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "categories")),
	}
}

// Create handles POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	category := &domain.Category{Name: req.Name}
	if err := h.service.Create(r.Context(), category); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, category)
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, categories)
}

// Get handles GET /categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, category)
}

// Update handles PUT /categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	var req CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	category, err := h.service.Update(r.Context(), id, &domain.Category{Name: req.Name})
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// PartyHandler serves either /customers or /suppliers.
type PartyHandler struct {
	service ports.PartyService
	logger  *slog.Logger
}

// NewPartyHandler creates a handler for one kind of party, named by resource.
func NewPartyHandler(service ports.PartyService, resource string, logger *slog.Logger) *PartyHandler {
	return &PartyHandler{
		service: service,
		logger:  logger.With(slog.String("handler", resource)),
	}
}

// Create handles POST
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PartyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	party := req.toParty()
	if err := h.service.Create(r.Context(), party); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, party)
}

// List handles GET with page and limit
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
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

// Get handles GET /{id}
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	party, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, party)
}

// Update handles PUT /{id}
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	var req PartyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	party, err := h.service.Update(r.Context(), id, req.toParty())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, party)
}

// Delete handles DELETE /{id}
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
