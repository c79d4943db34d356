package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jswirski/tms-api/internal/platform/logger"
)

// hmacTokenCodec implements TokenCodec using HMAC-SHA256 signing.
type hmacTokenCodec struct {
	issuer   string
	timeFunc func() time.Time // Injectable for testing
}

// tokenClaims is the claim set carried by every token: the payload under a
// single "data" claim plus the registered issuer/issued-at/expiry claims.
type tokenClaims struct {
	Data string `json:"data"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenCodec implements the TokenCodec interface
var _ TokenCodec = (*hmacTokenCodec)(nil)

// NewTokenCodec creates a TokenCodec that signs HS256 tokens with the given
// issuer claim.
func NewTokenCodec(issuer string) TokenCodec {
	return &hmacTokenCodec{
		issuer:   issuer,
		timeFunc: time.Now,
	}
}

// NewTokenCodecWithTime creates a TokenCodec with an injectable clock.
// Used by tests to exercise expiry deterministically.
func NewTokenCodecWithTime(issuer string, timeFunc func() time.Time) TokenCodec {
	return &hmacTokenCodec{
		issuer:   issuer,
		timeFunc: timeFunc,
	}
}

// Encode signs the payload into an HS256 token expiring after ttl.
func (c *hmacTokenCodec) Encode(
	ctx context.Context,
	payload string,
	secret []byte,
	ttl time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)
	now := c.timeFunc()

	claims := tokenClaims{
		Data: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signed, nil
}

// Decode verifies the token against the secret and returns its payload.
// All verification failures collapse into ErrInvalidToken; the cause is
// logged at debug level only.
func (c *hmacTokenCodec) Decode(
	ctx context.Context,
	tokenString string,
	secret []byte,
) (string, error) {
	log := logger.FromContext(ctx)
	now := c.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		},
		parserOpts...)

	if err != nil {
		log.Debug("token verification failed", "error", err)
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		log.Debug("token verification failed: invalid claims")
		return "", ErrInvalidToken
	}

	return claims.Data, nil
}
