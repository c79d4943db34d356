// Package auth provides the credential hashing and token signing primitives
// used by the account lifecycle service and the HTTP layer.
package auth

import "errors"

// Common authentication service errors.
var (
	// ErrInvalidToken indicates a token failed verification. Signature
	// mismatch, elapsed expiry, and malformed input all collapse into this
	// one error: callers must treat a failed decode as "invalid" without
	// distinguishing further.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
