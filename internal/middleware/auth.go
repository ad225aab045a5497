package middleware

import (
	"net/http"

	"artmarket-gateway/internal/auth"
	"artmarket-gateway/internal/logger"

	"go.uber.org/zap"
)

// Auth resolves the bearer token (or access_token cookie) into an
// auth.User on the request context. Requests without a token pass through
// anonymously; requests with a bad token are rejected.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.ParseToken(tokenStr, secret)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected token", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			ctx := auth.WithUser(r.Context(), user)
			ctx = logger.WithFields(ctx, zap.String("user_id", user.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
