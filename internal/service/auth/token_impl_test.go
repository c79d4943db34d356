package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	secret := []byte("test-secret-that-is-long-enough-for-testing")
	ttl := 15 * time.Minute

	codec := NewTokenCodecWithTime("tms-test", func() time.Time {
		return fixedTime
	})

	t.Run("round-trips the payload", func(t *testing.T) {
		t.Parallel()
		token, err := codec.Encode(context.Background(), "user-123", secret, ttl)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		payload, err := codec.Decode(context.Background(), token, secret)
		require.NoError(t, err)
		assert.Equal(t, "user-123", payload)
	})

	tests := []struct {
		name  string
		setup func(t *testing.T) (TokenCodec, string, []byte)
	}{
		{
			name: "wrong secret",
			setup: func(t *testing.T) (TokenCodec, string, []byte) {
				token, err := codec.Encode(context.Background(), "user-123", secret, ttl)
				require.NoError(t, err)
				return codec, token, []byte("another-secret-that-is-long-enough")
			},
		},
		{
			name: "expired token",
			setup: func(t *testing.T) (TokenCodec, string, []byte) {
				token, err := codec.Encode(context.Background(), "user-123", secret, ttl)
				require.NoError(t, err)
				late := NewTokenCodecWithTime("tms-test", func() time.Time {
					return fixedTime.Add(ttl + time.Hour)
				})
				return late, token, secret
			},
		},
		{
			name: "malformed token",
			setup: func(t *testing.T) (TokenCodec, string, []byte) {
				return codec, "this.is.not.a.valid.jwt", secret
			},
		},
		{
			name: "wrong issuer",
			setup: func(t *testing.T) (TokenCodec, string, []byte) {
				other := NewTokenCodecWithTime("someone-else", func() time.Time {
					return fixedTime
				})
				token, err := other.Encode(context.Background(), "user-123", secret, ttl)
				require.NoError(t, err)
				return codec, token, secret
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dec, token, key := tt.setup(t)
			payload, err := dec.Decode(context.Background(), token, key)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, payload)
		})
	}
}

func TestDeriveSecretSelfInvalidation(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	base := []byte("base-secret-that-is-long-enough-for-tests")
	codec := NewTokenCodecWithTime("tms-test", func() time.Time {
		return fixedTime
	})

	t.Run("reset token dies with the old password hash", func(t *testing.T) {
		t.Parallel()
		oldHash := "$2a$10$old-password-hash"
		newHash := "$2a$10$new-password-hash"

		token, err := codec.Encode(
			context.Background(), "user-123", DeriveSecret(base, oldHash), time.Hour)
		require.NoError(t, err)

		// Valid while the password is unchanged.
		payload, err := codec.Decode(context.Background(), token, DeriveSecret(base, oldHash))
		require.NoError(t, err)
		assert.Equal(t, "user-123", payload)

		// Invalid once the stored hash differs.
		_, err = codec.Decode(context.Background(), token, DeriveSecret(base, newHash))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("confirmation token dies once confirmed", func(t *testing.T) {
		t.Parallel()
		token, err := codec.Encode(
			context.Background(), "user-123", DeriveSecret(base, "false"), time.Hour)
		require.NoError(t, err)

		_, err = codec.Decode(context.Background(), token, DeriveSecret(base, "true"))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("derivation does not mutate the base secret", func(t *testing.T) {
		t.Parallel()
		before := string(base)
		_ = DeriveSecret(base, "fragment")
		assert.Equal(t, before, string(base))
	})
}
