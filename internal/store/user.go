package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jswirski/tms-api/internal/domain"
)

// UserStore defines the interface for user account persistence.
// Like AllowedEmailStore, every operation is a single-row statement; the
// account service sequences multi-step use cases on top of it.
type UserStore interface {
	// Create saves a new user. The user must already carry a password hash.
	// Returns ErrEmailExists if a user with the email already exists.
	Create(ctx context.Context, user *domain.User) error

	// UpdateUsername changes a user's username.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error

	// UpdatePassword replaces a user's password hash.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// UpdateRole changes a user's role.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error

	// ConfirmRegistration marks the user as confirmed. The flag only ever
	// moves from false to true.
	// Returns ErrUserNotFound if the user does not exist.
	ConfirmRegistration(ctx context.Context, id uuid.UUID) error

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByEmail retrieves a user by email address, case-insensitively.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// List returns all users sorted by username ascending.
	// Returns ErrUserNotFound if the list is empty.
	List(ctx context.Context) ([]domain.User, error)
}
