package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/quytt2702/authapi/internal/shared/apperr"
	"github.com/quytt2702/authapi/internal/shared/respond"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	identityKey contextKey = "identityID"
	tokenKey    contextKey = "accessToken"
)

// IdentityFromContext extracts the authenticated user ID set by the gate.
func IdentityFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(identityKey).(uuid.UUID)
	return id
}

// TokenFromContext extracts the raw bearer token set by the gate.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// NewGate creates the bearer-token middleware protecting authenticated
// routes. It validates the token, rejects revoked ones, and stores identity
// and raw token in the request context. A denylist outage degrades to
// signature-and-expiry checking only.
func NewGate(tokens *TokenManager, deny *Denylist, rsp *respond.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := hlog.FromRequest(r)

			token := bearerToken(r)
			if token == "" {
				rsp.Error(w, r, apperr.ErrUnauthenticated)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				rsp.Error(w, r, err)
				return
			}

			revoked, err := deny.IsRevoked(r.Context(), token)
			if err != nil {
				logger.Warn().Err(err).Msg("Denylist check failed, continuing without it")
			}
			if revoked {
				rsp.Error(w, r, apperr.ErrUnauthenticated)
				return
			}

			userID, err := claims.UserIDValue()
			if err != nil {
				rsp.Error(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, userID)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
