package middleware

import (
	"net/http"

	goTask "github.com/MrEthical07/goTask"
)

// RejectAuthenticated short-circuits requests that already carry a valid
// access bearer, so login and register routes do not mint fresh sessions for
// callers that are already signed in. Requests with no bearer, or with an
// invalid one, pass through untouched.
func RejectAuthenticated(engine *goTask.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine != nil {
				if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
					if _, err := engine.Authenticate(r.Context(), token); err == nil {
						w.Header().Set("Content-Type", "application/json")
						w.WriteHeader(http.StatusOK)
						_, _ = w.Write([]byte(`{"message":"User already authenticated"}`))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
