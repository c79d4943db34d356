package domain

import "errors"

// Common validation errors shared by the domain entities.
var (
	// ErrEmptyID is returned when an entity ID is missing.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyEmail is returned when an email address is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyRole is returned when a role is missing.
	ErrEmptyRole = errors.New("role cannot be empty")

	// ErrEmptyUsername is returned when a username is missing.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyHashedPassword is returned when a user record carries no
	// password hash.
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	// ErrEmptyTaskName is returned when a task name is missing.
	ErrEmptyTaskName = errors.New("task name cannot be empty")

	// ErrEmptyTaskStatus is returned when a task status is missing.
	ErrEmptyTaskStatus = errors.New("task status cannot be empty")

	// ErrInvalidDateRange is returned when a task ends before it starts.
	ErrInvalidDateRange = errors.New("task end date cannot precede start date")
)
