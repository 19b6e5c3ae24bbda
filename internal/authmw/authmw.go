// Package authmw provides HTTP middleware for shared-secret header
// authentication on the incident webhook.
package authmw

import (
	"crypto/subtle"
	"net/http"
)

// SharedSecret returns middleware that compares the named header
// against the configured secret using constant-time equality. An empty
// secret disables the check entirely: the endpoint is open by default
// and opting in requires configuring a secret. Authentication runs
// before any payload validation by construction.
func SharedSecret(header, secret string) func(http.Handler) http.Handler {
	expected := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			got := []byte(r.Header.Get(header))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
