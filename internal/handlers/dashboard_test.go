// internal/handlers/dashboard_test.go
package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/handlers"
	"github.com/ammerola/stockflow-be/test/helpers"
	"github.com/ammerola/stockflow-be/test/mocks"
)

func TestDashboardHandler_GetDashboard(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockReportService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "returns_totals",
			setupMocks: func(m *mocks.MockReportService) {
				m.EXPECT().Dashboard(gomock.Any()).Return(&domain.DashboardTotals{
					CustomerInvoiceTotal: decimal.NewFromInt(1200),
					SupplierInvoiceTotal: decimal.NewFromInt(800),
					StockAlert:           3,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				env := decodeBody[domain.DashboardTotals](t, body)
				assert.True(t, env.Data.CustomerInvoiceTotal.Equal(decimal.NewFromInt(1200)))
				assert.Equal(t, int64(3), env.Data.StockAlert)
			},
		},
		{
			name: "repository_failure",
			setupMocks: func(m *mocks.MockReportService) {
				m.EXPECT().Dashboard(gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				env := decodeBody[any](t, body)
				assert.False(t, env.Success)
				assert.Equal(t, "Internal Server Error", env.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reports := mocks.NewMockReportService(ctrl)
			tt.setupMocks(reports)

			handler := handlers.NewDashboardHandler(reports, 5, helpers.TestLogger())
			w := httptest.NewRecorder()
			handler.GetDashboard(w, authedRequest(http.MethodGet, "/api/dashboard", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateBody(t, w.Body.Bytes())
		})
	}
}

func TestDashboardHandler_Monthly(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedYear   int
		expectedStatus int
	}{
		{name: "defaults_to_current_year", expectedYear: time.Now().Year(), expectedStatus: http.StatusOK},
		{name: "explicit_year", query: "?year=2023", expectedYear: 2023, expectedStatus: http.StatusOK},
		{name: "bad_year", query: "?year=23x", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reports := mocks.NewMockReportService(ctrl)
			if tt.expectedStatus == http.StatusOK {
				reports.EXPECT().Monthly(gomock.Any(), tt.expectedYear).
					Return([]domain.PeriodTotal{{Year: tt.expectedYear, Month: 1}}, nil)
			}

			handler := handlers.NewDashboardHandler(reports, 5, helpers.TestLogger())
			w := httptest.NewRecorder()
			handler.Monthly(w, authedRequest(http.MethodGet, "/api/dashboard/monthly"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestDashboardHandler_Rankings(t *testing.T) {
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportService(ctrl)
	handler := handlers.NewDashboardHandler(reports, 5, helpers.TestLogger())

	reports.EXPECT().TopProducts(gomock.Any(), 5).
		Return([]domain.ProductRank{{ProductID: 1, Size: "195/65R15", Quantity: 40}}, nil)
	w := httptest.NewRecorder()
	handler.TopProducts(w, authedRequest(http.MethodGet, "/api/dashboard/top-products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(40), decodeBody[[]domain.ProductRank](t, w.Body.Bytes()).Data[0].Quantity)

	reports.EXPECT().TopCategories(gomock.Any(), 10).
		Return([]domain.CategoryRank{{CategoryID: 1, Name: "Tyres", Quantity: 55}}, nil)
	w = httptest.NewRecorder()
	handler.TopCategories(w, authedRequest(http.MethodGet, "/api/dashboard/top-categories?limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.TopCategories(w, authedRequest(http.MethodGet, "/api/dashboard/top-categories?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	reports.EXPECT().Yearly(gomock.Any()).
		Return([]domain.PeriodTotal{{Year: 2023}, {Year: 2024}}, nil)
	w = httptest.NewRecorder()
	handler.Yearly(w, authedRequest(http.MethodGet, "/api/dashboard/yearly", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]domain.PeriodTotal](t, w.Body.Bytes()).Data, 2)
}
