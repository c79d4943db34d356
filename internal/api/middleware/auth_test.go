package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswirski/tms-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	secret := []byte("middleware-test-secret-long-enough-here")
	codec := auth.NewTokenCodec("tms-test")
	mw := NewAuthMiddleware(codec, secret)

	okHandler := func(gotID *uuid.UUID) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetUserID(r)
			require.True(t, ok)
			*gotID = id
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("valid token reaches the handler with the user ID", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		token, err := codec.Encode(context.Background(), userID.String(), secret, time.Minute)
		require.NoError(t, err)

		var gotID uuid.UUID
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		mw.Authenticate(okHandler(&gotID)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotID)
	})

	rejections := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{
			name:   "missing header",
			header: func(t *testing.T) string { return "" },
		},
		{
			name:   "not a bearer scheme",
			header: func(t *testing.T) string { return "Basic abc123" },
		},
		{
			name:   "garbage token",
			header: func(t *testing.T) string { return "Bearer not.a.jwt" },
		},
		{
			name: "token signed with another secret",
			header: func(t *testing.T) string {
				token, err := codec.Encode(context.Background(), uuid.NewString(),
					[]byte("a-different-secret-also-long-enough"), time.Minute)
				require.NoError(t, err)
				return "Bearer " + token
			},
		},
		{
			name: "payload is not a UUID",
			header: func(t *testing.T) string {
				token, err := codec.Encode(context.Background(), "not-a-uuid", secret, time.Minute)
				require.NoError(t, err)
				return "Bearer " + token
			},
		},
	}

	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			rec := httptest.NewRecorder()
			called := false
			mw.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			})).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}
