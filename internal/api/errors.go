package api

import (
	"errors"
	"net/http"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/service/account"
	"github.com/jswirski/tms-api/internal/service/auth"
	"github.com/jswirski/tms-api/internal/store"
)

// MapErrorToStatusCode maps a use-case error onto an HTTP status code and a
// client-safe message.
//
// Every expected rejection maps to 404 with the rejection's own message:
// missing entities, duplicates, allow-list refusals, bad credentials,
// unconfirmed accounts, dead tokens and password mismatches alike. Clients
// branch on the message, not the code. Entity validation failures map to
// 422. Anything unrecognized is an internal error and gets a generic 500
// message; the raw error is for logs only.
func MapErrorToStatusCode(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""

	case errors.Is(err, account.ErrEmailNotAllowed),
		errors.Is(err, account.ErrUserExists),
		errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, account.ErrNotConfirmed),
		errors.Is(err, account.ErrPasswordMismatch),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusNotFound, rejectionMessage(err)

	case isValidationError(err):
		return http.StatusUnprocessableEntity, err.Error()

	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// rejectionMessage returns the sentinel's own text for wrapped store errors
// so that "not found: user" style wrapping does not leak SQL details.
func rejectionMessage(err error) string {
	for _, sentinel := range []error{
		account.ErrEmailNotAllowed,
		account.ErrUserExists,
		account.ErrInvalidCredentials,
		account.ErrNotConfirmed,
		account.ErrPasswordMismatch,
		auth.ErrInvalidToken,
		store.ErrEmailExists,
		store.ErrAllowedEmailNotFound,
		store.ErrUserNotFound,
		store.ErrTaskNotFound,
		store.ErrDuplicate,
		store.ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrEmptyID,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyRole,
		domain.ErrEmptyUsername,
		domain.ErrEmptyHashedPassword,
		domain.ErrEmptyTaskName,
		domain.ErrEmptyTaskStatus,
		domain.ErrInvalidDateRange,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
