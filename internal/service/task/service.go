// Package task implements the task board use cases over the task store.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/store"
)

// Service exposes the task board operations.
type Service struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewService creates the task service.
// If logger is nil, the process default is used.
func NewService(tasks store.TaskStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}
}

// Create validates and persists a new task, returning its ID.
func (s *Service) Create(
	ctx context.Context,
	name, description, status string,
	dateFrom, dateTo time.Time,
	color int,
	members []string,
) (uuid.UUID, error) {
	t, err := domain.NewTask(name, description, status, dateFrom, dateTo, color, members)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", t.ID,
		"status", t.Status)
	return t.ID, nil
}

// Update replaces every mutable field of an existing task.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	name, description, status string,
	dateFrom, dateTo time.Time,
	color int,
	members []string,
) (uuid.UUID, error) {
	t := &domain.Task{
		ID:          id,
		Name:        name,
		Description: description,
		Status:      status,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Color:       color,
		Members:     members,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return uuid.Nil, err
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update task: %w", err)
	}

	return id, nil
}

// UpdateStatus moves a task to a new board column.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (uuid.UUID, error) {
	if status == "" {
		return uuid.Nil, domain.ErrEmptyTaskStatus
	}

	if err := s.tasks.UpdateStatus(ctx, id, status); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Debug("task status updated",
		"task_id", id,
		"status", status)
	return id, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("task deleted", "task_id", id)
	return id, nil
}

// GetByDateRange returns the tasks overlapping the given date range, sorted
// by start date descending. Returns store.ErrTaskNotFound when none match.
func (s *Service) GetByDateRange(ctx context.Context, from, to time.Time) ([]domain.Task, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}
	return s.tasks.GetByDateRange(ctx, from, to)
}

// List returns all tasks sorted by start date descending.
// Returns store.ErrTaskNotFound when there are none.
func (s *Service) List(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}
