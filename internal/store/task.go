package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jswirski/tms-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create saves a new task.
	Create(ctx context.Context, task *domain.Task) error

	// Update replaces every mutable field of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateStatus changes only the status of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByDateRange returns tasks whose start or end date falls inside the
	// given range, sorted by start date descending.
	// Returns ErrTaskNotFound if no task matches.
	GetByDateRange(ctx context.Context, from, to time.Time) ([]domain.Task, error)

	// List returns all tasks sorted by start date descending.
	// Returns ErrTaskNotFound if the list is empty.
	List(ctx context.Context) ([]domain.Task, error)
}
