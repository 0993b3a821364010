package middleware

import (
	"context"
	"net/http"
)

// IdentityHeader carries the authenticated caller's email, set by the
// upstream auth layer. The API trusts this value completely and performs no
// independent authentication — it must never be reachable without the auth
// proxy in front.
const IdentityHeader = "X-User-Email"

type emailContextKey struct{}

// NewIdentityHandler returns a middleware that extracts the caller's email
// from IdentityHeader into the request context. Requests without the header
// are rejected with 401.
func NewIdentityHandler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := r.Header.Get(IdentityHeader)
			if email == "" {
				http.Error(w, "missing identity", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), emailContextKey{}, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the caller's email placed in ctx by the identity
// middleware, and false when the middleware did not run.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailContextKey{}).(string)
	return email, ok
}
