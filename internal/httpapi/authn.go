package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"staffhub.dev/internal/auth"
	"staffhub.dev/internal/obs"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// withIdentity extracts and verifies a bearer token when one is present
// and stores the resulting identity in the request context. A missing or
// invalid token never rejects the request here: it is logged and the
// request proceeds unauthenticated, and the resolver layer enforces
// authorization per operation.
func (a *API) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(authHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(header)
		if err == nil {
			var claims *auth.Claims
			claims, err = a.tokens.Verify(token)
			if err == nil {
				ctx := auth.ContextWithAccount(r.Context(), claims.Subject)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		obs.Warn("invalid bearer token", map[string]any{
			"error": err.Error(),
			"path":  r.URL.Path,
		})
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
