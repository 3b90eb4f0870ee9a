package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/handlers/middleware"
	"github.com/ammerola/stockflow-be/internal/pkg/auth"
	"github.com/ammerola/stockflow-be/internal/pkg/response"
	"github.com/ammerola/stockflow-be/test/helpers"
)

func TestAuthenticate_RequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret-that-is-long-enough-for-hs256", time.Hour, "stockflow-test")
	other := auth.NewTokenManager("another-secret-that-is-long-enough-too", time.Hour, "stockflow-test")

	issue := func(m *auth.TokenManager, actor domain.Actor) string {
		token, _, err := m.Issue(actor)
		require.NoError(t, err)
		return token
	}

	var seen domain.Actor
	protected := middleware.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = middleware.ActorFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}),
		middleware.Authenticate(tokens, helpers.TestLogger()),
		middleware.RequireRole(domain.RoleAdmin),
	)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "admin_passes",
			header:         "Bearer " + issue(tokens, helpers.TestAdmin),
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "scheme_is_case_insensitive",
			header:         "bearer " + issue(tokens, helpers.TestAdmin),
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "missing_header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "basic_scheme",
			header:         "Basic YWRtaW46YWRtaW4=",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong_signature",
			header:         "Bearer " + issue(other, helpers.TestAdmin),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "staff_role_rejected",
			header:         "Bearer " + issue(tokens, domain.Actor{UserID: 2, RoleID: domain.RoleStaff}),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = domain.Actor{}
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				env := decodeEnvelope(t, w.Body)
				assert.False(t, env.Success)
				assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
				assert.Equal(t, response.UnauthorizedMessage, env.Message)
				assert.Zero(t, seen)
				return
			}
			assert.Equal(t, helpers.TestAdmin, seen)
		})
	}
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	wrapped := middleware.RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
