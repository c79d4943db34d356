package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a scheduled unit of work on the board. Members holds the usernames
// assigned to the task; Color is an opaque display hint for the UI.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DateFrom    time.Time `json:"dateFrom"`
	DateTo      time.Time `json:"dateTo"`
	Color       int       `json:"color"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new task. Returns an error if validation fails.
func NewTask(
	name, description, status string,
	dateFrom, dateTo time.Time,
	color int,
	members []string,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Status:      status,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Color:       color,
		Members:     members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyID
	}
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	if t.Status == "" {
		return ErrEmptyTaskStatus
	}
	if t.DateTo.Before(t.DateFrom) {
		return ErrInvalidDateRange
	}
	return nil
}
