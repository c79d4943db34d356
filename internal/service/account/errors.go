// Package account implements the account lifecycle use cases: registration,
// confirmation, login, password recovery, and allow-list and user
// management, including the cross-entity consistency rules between the two.
package account

import "errors"

// Use-case rejection errors. Every rejection is an expected domain outcome
// carried on the ordinary error channel; none is process-fatal. The HTTP
// layer maps them (together with the store and token errors) onto status
// codes.
var (
	// ErrEmailNotAllowed is returned when the address is not on the
	// allow-list.
	ErrEmailNotAllowed = errors.New("this email is not allowed")

	// ErrUserExists is returned when registering an address that already
	// has a user account.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned on login or password change when
	// the email/password pair does not check out. A missing user and a
	// wrong password deliberately produce the same error.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotConfirmed is returned on login before the registration has
	// been confirmed.
	ErrNotConfirmed = errors.New("profile is not confirmed")

	// ErrPasswordMismatch is returned when the two user-supplied password
	// fields disagree.
	ErrPasswordMismatch = errors.New("passwords must be the same")
)
