package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/lucsky/cuid"
	"github.com/tgarmenliev/sofaccess-api/util/tracing"
	"github.com/tgarmenliev/sofaccess-api/util/values"
)

// RequestTracing handles the request tracing context
func RequestTracing(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestSource := r.Header.Get(values.HeaderRequestSource)
		if requestSource == "" {
			requestSource = "web"
		}

		requestID := r.Header.Get(values.HeaderRequestID)
		if requestID == "" {
			requestID = cuid.New()
		}

		tracingContext := tracing.Context{
			RequestID:     requestID,
			RequestSource: requestSource,
		}

		ctx = context.WithValue(ctx, values.ContextTracingKey, tracingContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

// RequireAdmin gates moderation endpoints. Every mutating operation
// checks the identity here rather than trusting an outer routing
// guard.
func (api *API) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := api.adminClaimsFromRequest(r)
		if err != nil {
			if err.Error() == "token expired" {
				writeErrorResponse(w, err, values.TokenExpired, "token-expired")
				return
			}
			writeErrorResponse(w, err, values.NotAuthorised, "not-authorized")
			return
		}

		ctx := context.WithValue(r.Context(), values.ContextAdminKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminClaimsFromRequest extracts and verifies the bearer token on a
// request.
func (api *API) adminClaimsFromRequest(r *http.Request) (*TokenClaims, error) {
	authorization := strings.Split(r.Header.Get("Authorization"), " ")
	if len(authorization) != 2 || authorization[0] != "Bearer" {
		return nil, errors.New("missing bearer token")
	}
	return api.verifyToken(authorization[1])
}
