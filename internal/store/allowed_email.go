package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jswirski/tms-api/internal/domain"
)

// AllowedEmailStore defines the interface for allow-list persistence.
// All operations are single-row statements: there are no cross-entity
// transactions, and the multi-step consistency rules (hasUser flips, role
// propagation, cascading deletes) are sequenced by the account service.
type AllowedEmailStore interface {
	// Create saves a new allow-list entry.
	// Returns ErrEmailExists if the address is already listed.
	Create(ctx context.Context, entry *domain.AllowedEmail) error

	// Update replaces the address and role of an existing entry.
	// Returns ErrAllowedEmailNotFound if the entry does not exist.
	Update(ctx context.Context, id uuid.UUID, email, role string) error

	// Delete removes an entry by ID.
	// Returns ErrAllowedEmailNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetHasUser records whether a user account currently exists for the
	// entry's address. Returns ErrAllowedEmailNotFound if the entry does
	// not exist.
	SetHasUser(ctx context.Context, id uuid.UUID, hasUser bool) error

	// GetByAddress retrieves an entry by its address. The lookup is
	// case-insensitive; addresses are stored lowercase.
	// Returns ErrAllowedEmailNotFound if the entry does not exist.
	GetByAddress(ctx context.Context, email string) (*domain.AllowedEmail, error)

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrAllowedEmailNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AllowedEmail, error)

	// List returns all entries sorted by address ascending.
	// Returns ErrAllowedEmailNotFound if the list is empty.
	List(ctx context.Context) ([]domain.AllowedEmail, error)
}
