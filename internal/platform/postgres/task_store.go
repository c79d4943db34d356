package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/platform/logger"
	"github.com/jswirski/tms-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
//
// The members list is stored as a JSONB column rather than a join table; the
// board reads tasks far more often than it edits membership, and members are
// plain usernames with no referential integrity requirement.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	members, err := encodeMembers(task.Members)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, name, description, status, date_from, date_to, color, members, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Name,
		task.Description,
		task.Status,
		task.DateFrom,
		task.DateTo,
		task.Color,
		members,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("status", task.Status))
	return nil
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	members, err := encodeMembers(task.Members)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET name = $2, description = $3, status = $4, date_from = $5,
		    date_to = $6, color = $7, members = $8, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Name,
		task.Description,
		task.Status,
		task.DateFrom,
		task.DateTo,
		task.Color,
		members,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// UpdateStatus implements store.TaskStore.UpdateStatus
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id, status)
	if err != nil {
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// GetByDateRange implements store.TaskStore.GetByDateRange
// A task qualifies when its start date or its end date falls inside the
// range. Returns store.ErrTaskNotFound if no task matches.
func (s *PostgresTaskStore) GetByDateRange(ctx context.Context, from, to time.Time) ([]domain.Task, error) {
	query := `
		SELECT id, name, description, status, date_from, date_to, color, members, created_at, updated_at
		FROM tasks
		WHERE (date_from BETWEEN $1 AND $2) OR (date_to BETWEEN $1 AND $2)
		ORDER BY date_from DESC
	`
	return s.queryTasks(ctx, query, from, to)
}

// List implements store.TaskStore.List
// Returns store.ErrTaskNotFound if the list is empty.
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	query := `
		SELECT id, name, description, status, date_from, date_to, color, members, created_at, updated_at
		FROM tasks
		ORDER BY date_from DESC
	`
	return s.queryTasks(ctx, query)
}

func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var members []byte
		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&t.Status,
			&t.DateFrom,
			&t.DateTo,
			&t.Color,
			&members,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if t.Members, err = decodeMembers(members); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		return nil, store.ErrTaskNotFound
	}
	return tasks, nil
}

func encodeMembers(members []string) ([]byte, error) {
	if members == nil {
		members = []string{}
	}
	data, err := json.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("failed to encode members: %w", err)
	}
	return data, nil
}

func decodeMembers(data []byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var members []string
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	return members, nil
}
