package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn              func(ctx context.Context, user *domain.User) error
	UpdateUsernameFn      func(ctx context.Context, id uuid.UUID, username string) error
	UpdatePasswordFn      func(ctx context.Context, id uuid.UUID, hashedPassword string) error
	UpdateRoleFn          func(ctx context.Context, id uuid.UUID, role string) error
	ConfirmRegistrationFn func(ctx context.Context, id uuid.UUID) error
	DeleteFn              func(ctx context.Context, id uuid.UUID) error
	GetByEmailFn          func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListFn                func(ctx context.Context) ([]domain.User, error)

	// Default response values used when the corresponding Fn is nil
	User  *domain.User
	Users []domain.User
	Err   error
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

func (m *MockUserStore) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	if m.UpdateUsernameFn != nil {
		return m.UpdateUsernameFn(ctx, id, username)
	}
	return m.Err
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, hashedPassword)
	}
	return m.Err
}

func (m *MockUserStore) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}
	return m.Err
}

func (m *MockUserStore) ConfirmRegistration(ctx context.Context, id uuid.UUID) error {
	if m.ConfirmRegistrationFn != nil {
		return m.ConfirmRegistrationFn(ctx, id)
	}
	return m.Err
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.User, m.Err
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.Err
}

func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Users, m.Err
}
