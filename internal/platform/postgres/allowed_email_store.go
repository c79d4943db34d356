package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/platform/logger"
	"github.com/jswirski/tms-api/internal/store"
)

// PostgresAllowedEmailStore implements the store.AllowedEmailStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAllowedEmailStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAllowedEmailStore creates a new PostgreSQL implementation of the
// AllowedEmailStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostgresAllowedEmailStore(db store.DBTX, logger *slog.Logger) *PostgresAllowedEmailStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAllowedEmailStore{
		db:     db,
		logger: logger.With(slog.String("component", "allowed_email_store")),
	}
}

// Ensure PostgresAllowedEmailStore implements store.AllowedEmailStore
var _ store.AllowedEmailStore = (*PostgresAllowedEmailStore)(nil)

// Create implements store.AllowedEmailStore.Create
// Returns store.ErrEmailExists if the address is already listed.
func (s *PostgresAllowedEmailStore) Create(ctx context.Context, entry *domain.AllowedEmail) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("allow-list entry validation failed during create",
			slog.String("error", err.Error()),
			slog.String("email_id", entry.ID.String()))
		return err
	}

	query := `
		INSERT INTO allowed_emails (id, email, role, has_user, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Email,
		entry.Role,
		entry.HasUser,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate address during allow-list create",
				slog.String("email_id", entry.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}

		log.Error("failed to create allow-list entry",
			slog.String("error", err.Error()),
			slog.String("email_id", entry.ID.String()))
		return err
	}

	log.Info("allow-list entry created",
		slog.String("email_id", entry.ID.String()),
		slog.String("role", entry.Role))
	return nil
}

// Update implements store.AllowedEmailStore.Update
// Returns store.ErrAllowedEmailNotFound if the entry does not exist.
func (s *PostgresAllowedEmailStore) Update(ctx context.Context, id uuid.UUID, email, role string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE allowed_emails
		SET email = $2, role = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, domain.NormalizeEmail(email), role)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to update allow-list entry",
			slog.String("error", err.Error()),
			slog.String("email_id", id.String()))
		return err
	}

	return CheckRowsAffected(result, store.ErrAllowedEmailNotFound)
}

// Delete implements store.AllowedEmailStore.Delete
// Returns store.ErrAllowedEmailNotFound if the entry does not exist.
func (s *PostgresAllowedEmailStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM allowed_emails WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete allow-list entry",
			slog.String("error", err.Error()),
			slog.String("email_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrAllowedEmailNotFound); err != nil {
		return err
	}

	log.Info("allow-list entry deleted", slog.String("email_id", id.String()))
	return nil
}

// SetHasUser implements store.AllowedEmailStore.SetHasUser
// Returns store.ErrAllowedEmailNotFound if the entry does not exist.
func (s *PostgresAllowedEmailStore) SetHasUser(ctx context.Context, id uuid.UUID, hasUser bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE allowed_emails
		SET has_user = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, hasUser)
	if err != nil {
		log.Error("failed to set has_user flag",
			slog.String("error", err.Error()),
			slog.String("email_id", id.String()))
		return err
	}

	return CheckRowsAffected(result, store.ErrAllowedEmailNotFound)
}

// GetByAddress implements store.AllowedEmailStore.GetByAddress
// Returns store.ErrAllowedEmailNotFound if the entry does not exist.
func (s *PostgresAllowedEmailStore) GetByAddress(ctx context.Context, email string) (*domain.AllowedEmail, error) {
	query := `
		SELECT id, email, role, has_user, created_at, updated_at
		FROM allowed_emails
		WHERE email = $1
	`
	return s.scanOne(ctx, query, domain.NormalizeEmail(email))
}

// GetByID implements store.AllowedEmailStore.GetByID
// Returns store.ErrAllowedEmailNotFound if the entry does not exist.
func (s *PostgresAllowedEmailStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AllowedEmail, error) {
	query := `
		SELECT id, email, role, has_user, created_at, updated_at
		FROM allowed_emails
		WHERE id = $1
	`
	return s.scanOne(ctx, query, id)
}

// List implements store.AllowedEmailStore.List
// Returns store.ErrAllowedEmailNotFound if the list is empty.
func (s *PostgresAllowedEmailStore) List(ctx context.Context) ([]domain.AllowedEmail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, role, has_user, created_at, updated_at
		FROM allowed_emails
		ORDER BY email ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list allow-list entries", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.AllowedEmail
	for rows.Next() {
		var e domain.AllowedEmail
		if err := rows.Scan(&e.ID, &e.Email, &e.Role, &e.HasUser, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allow-list entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, store.ErrAllowedEmailNotFound
	}
	return entries, nil
}

func (s *PostgresAllowedEmailStore) scanOne(ctx context.Context, query string, arg any) (*domain.AllowedEmail, error) {
	var e domain.AllowedEmail
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&e.ID,
		&e.Email,
		&e.Role,
		&e.HasUser,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAllowedEmailNotFound
		}
		return nil, err
	}
	return &e, nil
}
