// internal/handlers/catalog_test.go
package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/handlers"
	"github.com/ammerola/stockflow-be/test/helpers"
	"github.com/ammerola/stockflow-be/test/mocks"
)

func TestCategoryHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(*mocks.MockCategoryService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "created",
			body: map[string]string{"name": "Tyres"},
			setupMocks: func(m *mocks.MockCategoryService) {
				m.EXPECT().Create(gomock.Any(), &domain.Category{Name: "Tyres"}).
					DoAndReturn(func(_ context.Context, c *domain.Category) error {
						c.ID = 3
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty_name",
			body:           map[string]string{"name": ""},
			setupMocks:     func(*mocks.MockCategoryService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Bad Request",
		},
		{
			name: "duplicate_name",
			body: map[string]string{"name": "Tyres"},
			setupMocks: func(m *mocks.MockCategoryService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(&domain.DuplicateError{Entity: domain.EntityCategory, Field: "name"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Category name has already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockCategoryService(ctrl)
			tt.setupMocks(service)

			handler := handlers.NewCategoryHandler(service, helpers.TestLogger())
			w := httptest.NewRecorder()
			handler.Create(w, authedRequest(http.MethodPost, "/api/categories", tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, decodeBody[any](t, w.Body.Bytes()).Message)
			}
		})
	}
}

func TestCategoryHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockCategoryService(ctrl)
	service.EXPECT().List(gomock.Any()).Return([]domain.Category{{ID: 1, Name: "Tyres"}, {ID: 2, Name: "Rims"}}, nil)

	handler := handlers.NewCategoryHandler(service, helpers.TestLogger())
	w := httptest.NewRecorder()
	handler.List(w, authedRequest(http.MethodGet, "/api/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]domain.Category](t, w.Body.Bytes()).Data, 2)
}

func TestPartyHandler(t *testing.T) {
	body := map[string]string{"name": "Acme", "phone_no": "555-0100", "address": "1 Main St"}

	t.Run("duplicate_phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockPartyService(ctrl)
		service.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&domain.DuplicateError{Entity: domain.EntityCustomer, Field: "phone_no"})

		handler := handlers.NewPartyHandler(service, "customers", helpers.TestLogger())
		w := httptest.NewRecorder()
		handler.Create(w, authedRequest(http.MethodPost, "/api/customers", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Customer phone no has already exists", decodeBody[any](t, w.Body.Bytes()).Message)
	})

	t.Run("missing_fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := handlers.NewPartyHandler(mocks.NewMockPartyService(ctrl), "suppliers", helpers.TestLogger())

		w := httptest.NewRecorder()
		handler.Create(w, authedRequest(http.MethodPost, "/api/suppliers", map[string]string{"name": "Acme"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeBody[any](t, w.Body.Bytes())
		assert.ElementsMatch(t, []domain.FieldError{
			{Field: "phone_no", Message: "phone_no should not be empty"},
			{Field: "address", Message: "address should not be empty"},
		}, env.Errors)
	})

	t.Run("update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockPartyService(ctrl)
		service.EXPECT().Update(gomock.Any(), int64(4), &domain.Party{Name: "Acme", PhoneNo: "555-0100", Address: "1 Main St"}).
			Return(&domain.Party{ID: 4, Name: "Acme", PhoneNo: "555-0100", Address: "1 Main St"}, nil)

		handler := handlers.NewPartyHandler(service, "suppliers", helpers.TestLogger())
		req := authedRequest(http.MethodPut, "/api/suppliers/4", body)
		req.SetPathValue("id", "4")
		w := httptest.NewRecorder()
		handler.Update(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(4), decodeBody[domain.Party](t, w.Body.Bytes()).Data.ID)
	})
}
