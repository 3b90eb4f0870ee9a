// internal/handlers/dashboard.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/pkg/response"
)

// DashboardHandler serves /dashboard. Caching happens in the report service.
type DashboardHandler struct {
	reports  ports.ReportService
	logger   *slog.Logger
	topLimit int
	now      func() time.Time
}

// NewDashboardHandler creates a new dashboard handler. topLimit is used when
// a ranking request carries no limit.
func NewDashboardHandler(reports ports.ReportService, topLimit int, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		reports:  reports,
		logger:   logger.With(slog.String("handler", "dashboard")),
		topLimit: topLimit,
		now:      time.Now,
	}
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, totals)
}

// Monthly handles GET /dashboard/monthly?year=
func (h *DashboardHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year := h.now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 9999 {
			writeError(r.Context(), w, h.logger, domain.NewValidationError("year", "year must be a four digit number"))
			return
		}
		year = parsed
	}

	totals, err := h.reports.Monthly(r.Context(), year)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, totals)
}

// Yearly handles GET /dashboard/yearly
func (h *DashboardHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reports.Yearly(r.Context())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, totals)
}

// TopProducts handles GET /dashboard/top-products?limit=
func (h *DashboardHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := h.rankLimit(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	ranks, err := h.reports.TopProducts(r.Context(), limit)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, ranks)
}

// TopCategories handles GET /dashboard/top-categories?limit=
func (h *DashboardHandler) TopCategories(w http.ResponseWriter, r *http.Request) {
	limit, err := h.rankLimit(r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	ranks, err := h.reports.TopCategories(r.Context(), limit)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, ranks)
}

func (h *DashboardHandler) rankLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.topLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		return 0, domain.NewValidationError("limit", "limit must be between 1 and 100")
	}
	return limit, nil
}
