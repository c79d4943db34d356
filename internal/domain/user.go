package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered principal. A user is created during
// registration with the role copied from its allow-list entry, starts out
// unconfirmed, and becomes confirmed exactly once via the confirmation link.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Role           string    `json:"role"`
	IsConfirmed    bool      `json:"isConfirmed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new unconfirmed user. The email is normalized to
// lowercase. The caller is responsible for hashing the password before
// constructing the user; plaintext passwords never reach this type.
func NewUser(username, email, hashedPassword, role string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Username:       username,
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		Role:           role,
		IsConfirmed:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the user has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyID
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if u.Role == "" {
		return ErrEmptyRole
	}
	return nil
}
