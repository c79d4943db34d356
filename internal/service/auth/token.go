package auth

import (
	"context"
	"time"
)

// TokenCodec issues and verifies signed, time-limited tokens carrying a
// string payload. The caller supplies the signing secret on every call,
// which is what makes purpose-scoped tokens possible: each use case derives
// its own secret from the base secret plus a fragment of mutable entity
// state, so a token stops verifying the moment that state changes.
type TokenCodec interface {
	// Encode signs the payload into a token expiring after ttl.
	Encode(ctx context.Context, payload string, secret []byte, ttl time.Duration) (string, error)

	// Decode verifies the token against the secret and returns its payload.
	// Returns ErrInvalidToken on signature mismatch, expiry, or malformed
	// input.
	Decode(ctx context.Context, token string, secret []byte) (string, error)
}

// DeriveSecret returns the purpose-scoped signing secret for the given base
// secret and state fragment. Plain concatenation suffices since HMAC keys
// need not be structured.
func DeriveSecret(base []byte, stateFragment string) []byte {
	derived := make([]byte, 0, len(base)+len(stateFragment))
	derived = append(derived, base...)
	derived = append(derived, stateFragment...)
	return derived
}
