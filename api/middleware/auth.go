package middleware

import (
	"net/http"
	"strings"

	"github.com/mossxapp/mossx-backend/api/responses"
	pkgerrors "github.com/mossxapp/mossx-backend/pkg/errors"
	"github.com/mossxapp/mossx-backend/pkg/identity"
	"github.com/mossxapp/mossx-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// verified identity claims.
func Auth(verifier identity.Verifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			if verifier == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "token verifier unavailable"))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			profile := claims.Profile()
			ctx := WithUserID(r.Context(), profile.Subject)
			ctx = WithProfile(ctx, profile)

			if logg != nil {
				ctx = logg.WithUserID(ctx, profile.Subject)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
