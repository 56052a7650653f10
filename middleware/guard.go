package middleware

import (
	"context"
	"net/http"
	"strings"

	goTask "github.com/MrEthical07/goTask"
)

type identityContextKey struct{}

// IdentityFromContext returns the verified identity injected by [Guard], if
// any.
func IdentityFromContext(ctx context.Context) (*goTask.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*goTask.Identity)
	return id, ok
}

// Guard requires a valid access bearer on every wrapped request. A missing
// Authorization header, a non-Bearer scheme, an empty credential, and a
// failed verification all produce the same 403 response — the client learns
// only that it is not authenticated, never why.
func Guard(engine *goTask.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				rejectUnauthenticated(w)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				rejectUnauthenticated(w)
				return
			}

			id, err := engine.Authenticate(r.Context(), token)
			if err != nil {
				rejectUnauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"message":"User not authenticated"}`))
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" {
		return "", false
	}

	return token, true
}
