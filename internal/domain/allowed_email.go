package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AllowedEmail is an allow-list entry permitting a given address to register
// with a given role. HasUser tracks whether a User currently exists for the
// address: it is flipped to true on registration and back to false when the
// user is deleted.
type AllowedEmail struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	HasUser   bool      `json:"hasUser"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAllowedEmail creates a new allow-list entry for the given address and
// role. The address is normalized to lowercase. Returns an error if
// validation fails.
func NewAllowedEmail(email, role string) (*AllowedEmail, error) {
	now := time.Now().UTC()
	entry := &AllowedEmail{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		Role:      role,
		HasUser:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks that the entry has valid data.
func (e *AllowedEmail) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyID
	}
	if e.Email == "" {
		return ErrEmptyEmail
	}
	if !ValidEmail(e.Email) {
		return ErrInvalidEmail
	}
	if e.Role == "" {
		return ErrEmptyRole
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address. Both entity stores
// match addresses case-insensitively, so every address is normalized before
// it is persisted or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the address parses as an RFC 5322 address.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
