package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	CreateFn         func(ctx context.Context, task *domain.Task) error
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, status string) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	GetByDateRangeFn func(ctx context.Context, from, to time.Time) ([]domain.Task, error)
	ListFn           func(ctx context.Context) ([]domain.Task, error)

	// Default response values used when the corresponding Fn is nil
	Tasks []domain.Task
	Err   error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

func (m *MockTaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return m.Err
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockTaskStore) GetByDateRange(ctx context.Context, from, to time.Time) ([]domain.Task, error) {
	if m.GetByDateRangeFn != nil {
		return m.GetByDateRangeFn(ctx, from, to)
	}
	return m.Tasks, m.Err
}

func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Tasks, m.Err
}
