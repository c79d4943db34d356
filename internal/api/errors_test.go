package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/service/account"
	"github.com/jswirski/tms-api/internal/service/auth"
	"github.com/jswirski/tms-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "nil error",
			err:        nil,
			wantStatus: http.StatusOK,
			wantMsg:    "",
		},
		{
			name:       "email not allowed",
			err:        account.ErrEmailNotAllowed,
			wantStatus: http.StatusNotFound,
			wantMsg:    "this email is not allowed",
		},
		{
			name:       "user exists",
			err:        account.ErrUserExists,
			wantStatus: http.StatusNotFound,
			wantMsg:    "user already exists",
		},
		{
			name:       "invalid credentials",
			err:        account.ErrInvalidCredentials,
			wantStatus: http.StatusNotFound,
			wantMsg:    "invalid email or password",
		},
		{
			name:       "not confirmed",
			err:        account.ErrNotConfirmed,
			wantStatus: http.StatusNotFound,
			wantMsg:    "profile is not confirmed",
		},
		{
			name:       "password mismatch",
			err:        account.ErrPasswordMismatch,
			wantStatus: http.StatusNotFound,
			wantMsg:    "passwords must be the same",
		},
		{
			name:       "invalid token",
			err:        auth.ErrInvalidToken,
			wantStatus: http.StatusNotFound,
			wantMsg:    "invalid token",
		},
		{
			name:       "wrapped user not found",
			err:        fmt.Errorf("lookup failed: %w", store.ErrUserNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    store.ErrUserNotFound.Error(),
		},
		{
			name:       "wrapped duplicate",
			err:        fmt.Errorf("insert failed: %w", store.ErrEmailExists),
			wantStatus: http.StatusNotFound,
			wantMsg:    store.ErrEmailExists.Error(),
		},
		{
			name:       "domain validation",
			err:        domain.ErrInvalidDateRange,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    domain.ErrInvalidDateRange.Error(),
		},
		{
			name:       "unknown error hides detail",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, msg := MapErrorToStatusCode(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
