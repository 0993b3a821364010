package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelbuddy/backend/internal/middleware"
)

// TestIdentityHandler_HeaderPresent verifies that the caller's email flows
// from the identity header into the request context.
func TestIdentityHandler_HeaderPresent(t *testing.T) {
	var gotEmail string
	var gotOK bool
	h := middleware.NewIdentityHandler()(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotEmail, gotOK = middleware.EmailFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set(middleware.IdentityHeader, "a@example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, "a@example.com", gotEmail)
}

// TestIdentityHandler_HeaderMissing verifies the request never reaches the
// handler when the identity header is absent.
func TestIdentityHandler_HeaderMissing(t *testing.T) {
	called := false
	h := middleware.NewIdentityHandler()(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

// TestEmailFromContext_NoMiddleware verifies the lookup reports absence when
// the middleware did not run.
func TestEmailFromContext_NoMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)

	_, ok := middleware.EmailFromContext(req.Context())

	assert.False(t, ok)
}
