package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/service/account"
	"github.com/jswirski/tms-api/internal/service/auth"
)

// MockTokenCodec implements auth.TokenCodec for testing
type MockTokenCodec struct {
	EncodeFn func(ctx context.Context, payload string, secret []byte, ttl time.Duration) (string, error)
	DecodeFn func(ctx context.Context, token string, secret []byte) (string, error)

	// Default response values used when the corresponding Fn is nil
	Token   string
	Payload string
	Err     error
}

var _ auth.TokenCodec = (*MockTokenCodec)(nil)

func (m *MockTokenCodec) Encode(ctx context.Context, payload string, secret []byte, ttl time.Duration) (string, error) {
	if m.EncodeFn != nil {
		return m.EncodeFn(ctx, payload, secret, ttl)
	}
	return m.Token, m.Err
}

func (m *MockTokenCodec) Decode(ctx context.Context, token string, secret []byte) (string, error) {
	if m.DecodeFn != nil {
		return m.DecodeFn(ctx, token, secret)
	}
	return m.Payload, m.Err
}

// MockPasswordHasher implements auth.PasswordHasher for testing.
// The default behavior hashes by prefixing, so tests can assert on hashes
// without paying for bcrypt.
type MockPasswordHasher struct {
	HashFn    func(ctx context.Context, password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	Err error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

func (m *MockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(ctx, password)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.Err != nil {
		return m.Err
	}
	if hashedPassword != "hashed:"+password {
		return errors.New("hash and password do not match")
	}
	return nil
}

// MockNotificationSender implements account.NotificationSender for testing,
// recording every delivery.
type MockNotificationSender struct {
	SendConfirmationFn  func(ctx context.Context, email string, userID uuid.UUID, token string) error
	SendPasswordResetFn func(ctx context.Context, email string, userID uuid.UUID, token string) error

	Err error

	mu             sync.Mutex
	Confirmations  []SentMessage
	PasswordResets []SentMessage
}

// SentMessage captures one recorded delivery.
type SentMessage struct {
	Email  string
	UserID uuid.UUID
	Token  string
}

var _ account.NotificationSender = (*MockNotificationSender)(nil)

func (m *MockNotificationSender) SendConfirmation(ctx context.Context, email string, userID uuid.UUID, token string) error {
	if m.SendConfirmationFn != nil {
		return m.SendConfirmationFn(ctx, email, userID, token)
	}
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Confirmations = append(m.Confirmations, SentMessage{email, userID, token})
	return nil
}

func (m *MockNotificationSender) SendPasswordReset(ctx context.Context, email string, userID uuid.UUID, token string) error {
	if m.SendPasswordResetFn != nil {
		return m.SendPasswordResetFn(ctx, email, userID, token)
	}
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PasswordResets = append(m.PasswordResets, SentMessage{email, userID, token})
	return nil
}
