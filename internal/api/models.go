package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// ForgotPasswordRequest defines the payload for the forgot-password endpoint.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SetNewPasswordRequest defines the payload completing a password reset.
// The reset token travels in the URL, not the body.
type SetNewPasswordRequest struct {
	Password1 string `json:"password1" validate:"required,min=8,max=72"`
	Password2 string `json:"password2" validate:"required,min=8,max=72"`
}

// UpdatePasswordRequest defines the payload for changing one's own password.
type UpdatePasswordRequest struct {
	OldPassword  string `json:"old_password"  validate:"required,min=1"`
	NewPassword1 string `json:"new_password1" validate:"required,min=8,max=72"`
	NewPassword2 string `json:"new_password2" validate:"required,min=8,max=72"`
}

// UpdateUsernameRequest defines the payload for renaming a user.
type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

// UpdateRoleRequest defines the payload for changing a user's role.
type UpdateRoleRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role"    validate:"required,min=1"`
}

// AllowEmailRequest defines the payload for adding an allow-list entry.
type AllowEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,min=1"`
}

// UpdateAllowedEmailRequest defines the payload for editing an allow-list
// entry.
type UpdateAllowedEmailRequest struct {
	ID    uuid.UUID `json:"id"    validate:"required"`
	Email string    `json:"email" validate:"required,email"`
	Role  string    `json:"role"  validate:"required,min=1"`
}

// IDResponse carries the ID of the entity a mutation touched.
type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

// EmailResponse carries the address a reset link resolves to.
type EmailResponse struct {
	Email string `json:"email"`
}

// TaskRequest defines the payload for creating or replacing a task.
type TaskRequest struct {
	Name        string    `json:"name"        validate:"required,min=1,max=128"`
	Description string    `json:"description"`
	Status      string    `json:"status"      validate:"required,min=1"`
	DateFrom    time.Time `json:"dateFrom"    validate:"required"`
	DateTo      time.Time `json:"dateTo"      validate:"required"`
	Color       int       `json:"color"`
	Members     []string  `json:"members"`
}

// TaskStatusRequest defines the payload for moving a task between columns.
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,min=1"`
}
