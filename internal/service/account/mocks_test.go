package account

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/store"
)

// fakeEmailStore is an in-memory store.AllowedEmailStore. Per-method error
// fields let tests inject failures mid use case.
type fakeEmailStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*domain.AllowedEmail

	createErr     error
	setHasUserErr error
	updateErr     error
}

func newFakeEmailStore() *fakeEmailStore {
	return &fakeEmailStore{entries: make(map[uuid.UUID]*domain.AllowedEmail)}
}

func (f *fakeEmailStore) Create(_ context.Context, entry *domain.AllowedEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, e := range f.entries {
		if e.Email == entry.Email {
			return store.ErrEmailExists
		}
	}
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeEmailStore) Update(_ context.Context, id uuid.UUID, email, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	e, ok := f.entries[id]
	if !ok {
		return store.ErrAllowedEmailNotFound
	}
	e.Email = email
	e.Role = role
	return nil
}

func (f *fakeEmailStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[id]; !ok {
		return store.ErrAllowedEmailNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeEmailStore) SetHasUser(_ context.Context, id uuid.UUID, hasUser bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setHasUserErr != nil {
		return f.setHasUserErr
	}
	e, ok := f.entries[id]
	if !ok {
		return store.ErrAllowedEmailNotFound
	}
	e.HasUser = hasUser
	return nil
}

func (f *fakeEmailStore) GetByAddress(_ context.Context, email string) (*domain.AllowedEmail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = domain.NormalizeEmail(email)
	for _, e := range f.entries {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, store.ErrAllowedEmailNotFound
}

func (f *fakeEmailStore) GetByID(_ context.Context, id uuid.UUID) (*domain.AllowedEmail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return nil, store.ErrAllowedEmailNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmailStore) List(_ context.Context) ([]domain.AllowedEmail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) == 0 {
		return nil, store.ErrAllowedEmailNotFound
	}
	out := make([]domain.AllowedEmail, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// fakeUserStore is an in-memory store.UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	createErr         error
	updatePasswordErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) UpdateUsername(_ context.Context, id uuid.UUID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.Username = username
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uuid.UUID, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updatePasswordErr != nil {
		return f.updatePasswordErr
	}
	u, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserStore) ConfirmRegistration(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.IsConfirmed = true
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = domain.NormalizeEmail(email)
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.users) == 0 {
		return nil, store.ErrUserNotFound
	}
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// fakeHasher hashes by prefixing, keeping tests fast and hashes assertable.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(_ context.Context, password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

// fakeSender records the notifications a use case produced.
type fakeSender struct {
	mu sync.Mutex

	confirmations  []sentNotification
	passwordResets []sentNotification

	confirmErr error
	resetErr   error
}

type sentNotification struct {
	email  string
	userID uuid.UUID
	token  string
}

func (f *fakeSender) SendConfirmation(_ context.Context, email string, userID uuid.UUID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmations = append(f.confirmations, sentNotification{email, userID, token})
	return nil
}

func (f *fakeSender) SendPasswordReset(_ context.Context, email string, userID uuid.UUID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetErr != nil {
		return f.resetErr
	}
	f.passwordResets = append(f.passwordResets, sentNotification{email, userID, token})
	return nil
}

func (f *fakeSender) lastConfirmation() sentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmations[len(f.confirmations)-1]
}

func (f *fakeSender) lastPasswordReset() sentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passwordResets[len(f.passwordResets)-1]
}
