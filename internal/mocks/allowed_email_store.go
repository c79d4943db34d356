package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/store"
)

// MockAllowedEmailStore implements store.AllowedEmailStore for testing
type MockAllowedEmailStore struct {
	CreateFn       func(ctx context.Context, entry *domain.AllowedEmail) error
	UpdateFn       func(ctx context.Context, id uuid.UUID, email, role string) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
	SetHasUserFn   func(ctx context.Context, id uuid.UUID, hasUser bool) error
	GetByAddressFn func(ctx context.Context, email string) (*domain.AllowedEmail, error)
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.AllowedEmail, error)
	ListFn         func(ctx context.Context) ([]domain.AllowedEmail, error)

	// Default response values used when the corresponding Fn is nil
	Entry   *domain.AllowedEmail
	Entries []domain.AllowedEmail
	Err     error
}

var _ store.AllowedEmailStore = (*MockAllowedEmailStore)(nil)

func (m *MockAllowedEmailStore) Create(ctx context.Context, entry *domain.AllowedEmail) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	return m.Err
}

func (m *MockAllowedEmailStore) Update(ctx context.Context, id uuid.UUID, email, role string) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, email, role)
	}
	return m.Err
}

func (m *MockAllowedEmailStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockAllowedEmailStore) SetHasUser(ctx context.Context, id uuid.UUID, hasUser bool) error {
	if m.SetHasUserFn != nil {
		return m.SetHasUserFn(ctx, id, hasUser)
	}
	return m.Err
}

func (m *MockAllowedEmailStore) GetByAddress(ctx context.Context, email string) (*domain.AllowedEmail, error) {
	if m.GetByAddressFn != nil {
		return m.GetByAddressFn(ctx, email)
	}
	return m.Entry, m.Err
}

func (m *MockAllowedEmailStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AllowedEmail, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Entry, m.Err
}

func (m *MockAllowedEmailStore) List(ctx context.Context) ([]domain.AllowedEmail, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Entries, m.Err
}
