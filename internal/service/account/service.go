package account

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/config"
	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/service/auth"
	"github.com/jswirski/tms-api/internal/store"
)

// NotificationSender delivers account lifecycle links to the user.
// A delivery failure fails the enclosing use case; earlier mutations are
// not compensated.
type NotificationSender interface {
	// SendConfirmation delivers the registration confirmation link.
	SendConfirmation(ctx context.Context, email string, userID uuid.UUID, token string) error

	// SendPasswordReset delivers the password-reset link.
	SendPasswordReset(ctx context.Context, email string, userID uuid.UUID, token string) error
}

// Service orchestrates the account lifecycle use cases over the allow-list
// and user stores.
//
// Multi-step use cases run their store operations sequentially with no
// cross-document transaction and no rollback: a failure in a later step
// leaves earlier mutations committed. The unique index on email is the sole
// safety net for concurrent registrations of the same address.
type Service struct {
	emails store.AllowedEmailStore
	users  store.UserStore
	hasher auth.PasswordHasher
	codec  auth.TokenCodec
	sender NotificationSender
	cfg    config.AuthConfig
	logger *slog.Logger
}

// NewService creates the account lifecycle service.
// If logger is nil, the process default is used.
func NewService(
	emails store.AllowedEmailStore,
	users store.UserStore,
	hasher auth.PasswordHasher,
	codec auth.TokenCodec,
	sender NotificationSender,
	cfg config.AuthConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		emails: emails,
		users:  users,
		hasher: hasher,
		codec:  codec,
		sender: sender,
		cfg:    cfg,
		logger: logger.With("component", "account_service"),
	}
}

// confirmationSecret derives the signing secret for registration
// confirmation tokens from the user's current confirmation state. Once the
// account is confirmed the derived secret changes and every previously
// issued confirmation token stops verifying.
func (s *Service) confirmationSecret(user *domain.User) []byte {
	return auth.DeriveSecret([]byte(s.cfg.TokenSecret), strconv.FormatBool(user.IsConfirmed))
}

// resetSecret derives the signing secret for password-reset tokens from the
// user's current password hash, so a reset link survives exactly one
// password change.
func (s *Service) resetSecret(user *domain.User) []byte {
	return auth.DeriveSecret([]byte(s.cfg.TokenSecret), user.HashedPassword)
}

// AllowEmail puts an address on the allow-list with the given role.
// Returns store.ErrEmailExists if the address is already listed.
func (s *Service) AllowEmail(ctx context.Context, email, role string) (uuid.UUID, error) {
	if _, err := s.emails.GetByAddress(ctx, email); err == nil {
		return uuid.Nil, store.ErrEmailExists
	} else if !store.IsNotFoundError(err) {
		return uuid.Nil, fmt.Errorf("failed to check allow-list: %w", err)
	}

	entry, err := domain.NewAllowedEmail(email, role)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.emails.Create(ctx, entry); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create allow-list entry: %w", err)
	}

	s.logger.Info("email allow-listed",
		"email_id", entry.ID,
		"role", role)
	return entry.ID, nil
}

// Register creates a new unconfirmed user for an allow-listed address,
// flips the entry's hasUser flag, and mails the confirmation link.
// The user's role is copied from the allow-list entry.
//
// Returns ErrEmailNotAllowed if the address is not listed and ErrUserExists
// if a user already exists for it. Two concurrent registrations can both
// pass the existence check; the unique index on users.email decides the
// winner and the loser surfaces here as ErrUserExists.
func (s *Service) Register(
	ctx context.Context,
	username, email, password string,
) (uuid.UUID, error) {
	entry, err := s.emails.GetByAddress(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return uuid.Nil, ErrEmailNotAllowed
		}
		return uuid.Nil, fmt.Errorf("failed to check allow-list: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return uuid.Nil, ErrUserExists
	} else if !store.IsNotFoundError(err) {
		return uuid.Nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, email, hashed, entry.Role)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return uuid.Nil, ErrUserExists
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.emails.SetHasUser(ctx, entry.ID, true); err != nil {
		return uuid.Nil, fmt.Errorf("failed to mark allow-list entry: %w", err)
	}

	token, err := s.codec.Encode(
		ctx, user.ID.String(), s.confirmationSecret(user), s.cfg.ConfirmationTokenTTL())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to issue confirmation token: %w", err)
	}

	if err := s.sender.SendConfirmation(ctx, user.Email, user.ID, token); err != nil {
		return uuid.Nil, fmt.Errorf("failed to send confirmation: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"role", user.Role)
	return user.ID, nil
}

// ConfirmRegistration marks the user as confirmed if the token verifies
// against the secret derived from the user's current confirmation state.
// A token issued before confirmation therefore works exactly once.
func (s *Service) ConfirmRegistration(
	ctx context.Context,
	id uuid.UUID,
	token string,
) (uuid.UUID, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := s.codec.Decode(ctx, token, s.confirmationSecret(user)); err != nil {
		return uuid.Nil, auth.ErrInvalidToken
	}

	if err := s.users.ConfirmRegistration(ctx, id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to confirm registration: %w", err)
	}

	s.logger.Info("registration confirmed", "user_id", id)
	return id, nil
}

// Login authenticates an email/password pair and returns the user's ID.
// The checks run in a fixed order: allow-list membership, then credentials,
// then confirmation state.
func (s *Service) Login(ctx context.Context, email, password string) (uuid.UUID, error) {
	if _, err := s.emails.GetByAddress(ctx, email); err != nil {
		if store.IsNotFoundError(err) {
			return uuid.Nil, ErrEmailNotAllowed
		}
		return uuid.Nil, fmt.Errorf("failed to check allow-list: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return uuid.Nil, ErrInvalidCredentials
		}
		return uuid.Nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}

	if !user.IsConfirmed {
		return uuid.Nil, ErrNotConfirmed
	}

	s.logger.Debug("login succeeded", "user_id", user.ID)
	return user.ID, nil
}

// ForgotPassword issues a password-reset token tied to the user's current
// password hash and mails the reset link. Returns the user's ID.
func (s *Service) ForgotPassword(ctx context.Context, email string) (uuid.UUID, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}

	token, err := s.codec.Encode(
		ctx, user.ID.String(), s.resetSecret(user), s.cfg.ConfirmationTokenTTL())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to issue reset token: %w", err)
	}

	if err := s.sender.SendPasswordReset(ctx, user.Email, user.ID, token); err != nil {
		return uuid.Nil, fmt.Errorf("failed to send password reset: %w", err)
	}

	s.logger.Info("password reset requested", "user_id", user.ID)
	return user.ID, nil
}

// ResetPassword validates a reset link and returns the user's email address
// for display on the reset form. The token must verify against the secret
// derived from the user's current password hash.
func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, token string) (string, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if _, err := s.codec.Decode(ctx, token, s.resetSecret(user)); err != nil {
		return "", auth.ErrInvalidToken
	}

	return user.Email, nil
}

// SetNewPassword completes a password reset. The two password fields must
// agree — that is checked before the token so a mismatch always surfaces as
// ErrPasswordMismatch regardless of token validity — and the token must
// verify against the user's current password hash. Persisting the new hash
// invalidates every outstanding reset token.
func (s *Service) SetNewPassword(
	ctx context.Context,
	id uuid.UUID,
	token, newPassword1, newPassword2 string,
) (uuid.UUID, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	if newPassword1 != newPassword2 {
		return uuid.Nil, ErrPasswordMismatch
	}

	if _, err := s.codec.Decode(ctx, token, s.resetSecret(user)); err != nil {
		return uuid.Nil, auth.ErrInvalidToken
	}

	hashed, err := s.hasher.Hash(ctx, newPassword1)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password reset completed", "user_id", user.ID)
	return user.ID, nil
}

// UpdatePassword changes a user's password after verifying the old one.
func (s *Service) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	oldPassword, newPassword1, newPassword2 string,
) (uuid.UUID, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.hasher.Compare(user.HashedPassword, oldPassword); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}

	if newPassword1 != newPassword2 {
		return uuid.Nil, ErrPasswordMismatch
	}

	hashed, err := s.hasher.Hash(ctx, newPassword1)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password updated", "user_id", user.ID)
	return user.ID, nil
}

// UpdateUsername changes a user's username.
func (s *Service) UpdateUsername(
	ctx context.Context,
	id uuid.UUID,
	username string,
) (uuid.UUID, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.users.UpdateUsername(ctx, user.ID, username); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update username: %w", err)
	}

	return user.ID, nil
}

// UpdateRole changes a user's role and propagates the new role to the
// matching allow-list entry when one exists, keeping the two records in
// sync.
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (uuid.UUID, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.users.UpdateRole(ctx, user.ID, role); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update role: %w", err)
	}

	entry, err := s.emails.GetByAddress(ctx, user.Email)
	if err == nil {
		if err := s.emails.Update(ctx, entry.ID, entry.Email, role); err != nil {
			return uuid.Nil, fmt.Errorf("failed to propagate role to allow-list: %w", err)
		}
	} else if !store.IsNotFoundError(err) {
		return uuid.Nil, fmt.Errorf("failed to look up allow-list entry: %w", err)
	}

	s.logger.Info("role updated",
		"user_id", user.ID,
		"role", role)
	return user.ID, nil
}

// DeleteUser removes a user and flips the matching allow-list entry back to
// hasUser=false.
//
// The user row is deleted before the allow-list lookup, so when the entry is
// missing the call fails with store.ErrAllowedEmailNotFound even though the
// user is already gone. This partial application mirrors the lack of
// cross-document transactions and is accepted rather than hidden.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to delete user: %w", err)
	}

	entry, err := s.emails.GetByAddress(ctx, user.Email)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.emails.SetHasUser(ctx, entry.ID, false); err != nil {
		return uuid.Nil, fmt.Errorf("failed to clear allow-list entry: %w", err)
	}

	s.logger.Info("user deleted", "user_id", user.ID)
	return user.ID, nil
}

// FindUser retrieves a user by email address.
func (s *Service) FindUser(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// ListUsers returns all users sorted by username ascending.
// Returns store.ErrUserNotFound when there are none.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ListAllowedEmails returns all allow-list entries sorted by address
// ascending. Returns store.ErrAllowedEmailNotFound when there are none.
func (s *Service) ListAllowedEmails(ctx context.Context) ([]domain.AllowedEmail, error) {
	return s.emails.List(ctx)
}

// UpdateAllowedEmail changes an allow-list entry's address and role. When a
// user exists for the entry's previous address, the new role is propagated
// to that user.
func (s *Service) UpdateAllowedEmail(
	ctx context.Context,
	id uuid.UUID,
	email, role string,
) (uuid.UUID, error) {
	entry, err := s.emails.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.emails.Update(ctx, id, domain.NormalizeEmail(email), role); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update allow-list entry: %w", err)
	}

	// The user is looked up under the address the entry had before the
	// update; an address change does not retarget the existing account.
	user, err := s.users.GetByEmail(ctx, entry.Email)
	if err == nil {
		if err := s.users.UpdateRole(ctx, user.ID, role); err != nil {
			return uuid.Nil, fmt.Errorf("failed to propagate role to user: %w", err)
		}
	} else if !store.IsNotFoundError(err) {
		return uuid.Nil, fmt.Errorf("failed to look up user: %w", err)
	}

	s.logger.Info("allow-list entry updated", "email_id", entry.ID)
	return entry.ID, nil
}

// DeleteAllowedEmail removes an allow-list entry and cascades to delete the
// user registered under the entry's address, if any.
func (s *Service) DeleteAllowedEmail(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	entry, err := s.emails.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.emails.Delete(ctx, id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to delete allow-list entry: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, entry.Email)
	if err == nil {
		if err := s.users.Delete(ctx, user.ID); err != nil {
			return uuid.Nil, fmt.Errorf("failed to cascade user deletion: %w", err)
		}
	} else if !store.IsNotFoundError(err) {
		return uuid.Nil, fmt.Errorf("failed to look up user: %w", err)
	}

	s.logger.Info("allow-list entry deleted", "email_id", entry.ID)
	return entry.ID, nil
}
