package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/gtlearning/storefront-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

type cartTokenKey struct{}

// CartToken reads the caller's cart token, minting one when absent or
// malformed. The token is echoed back so browsers without storage can
// still keep a cart across requests.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
			if _, err := uuid.Parse(token); err != nil {
				token = uuid.NewString()
			}

			w.Header().Set(cartTokenHeader, token)

			ctx := context.WithValue(r.Context(), cartTokenKey{}, token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartTokenFromContext returns the cart token set by CartToken.
func CartTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(cartTokenKey{}).(string); ok {
		return token
	}
	return ""
}
