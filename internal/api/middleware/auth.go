package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/api/shared"
	"github.com/jswirski/tms-api/internal/service/auth"
)

// AuthMiddleware validates bearer login tokens on protected routes.
// Login tokens are signed with the base secret alone, unlike the
// state-derived confirmation and reset tokens.
type AuthMiddleware struct {
	codec  auth.TokenCodec
	secret []byte
}

// NewAuthMiddleware creates an AuthMiddleware verifying tokens against the
// given base secret.
func NewAuthMiddleware(codec auth.TokenCodec, secret []byte) *AuthMiddleware {
	return &AuthMiddleware{
		codec:  codec,
		secret: secret,
	}
}

// Authenticate validates the Authorization header and adds the caller's user
// ID to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		payload, err := m.codec.Decode(r.Context(), parts[1], m.secret)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := uuid.Parse(payload)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user's ID from the request context.
// Returns the ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
