package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jswirski/tms-api/internal/api/middleware"
	"github.com/jswirski/tms-api/internal/api/shared"
	"github.com/jswirski/tms-api/internal/config"
	"github.com/jswirski/tms-api/internal/service/account"
	"github.com/jswirski/tms-api/internal/service/auth"
)

// AuthHandler handles the account lifecycle endpoints.
type AuthHandler struct {
	accounts  *account.Service
	codec     auth.TokenCodec
	cfg       config.AuthConfig
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	accounts *account.Service,
	codec auth.TokenCodec,
	cfg config.AuthConfig,
) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		codec:     codec,
		cfg:       cfg,
		validator: validator.New(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: id})
}

// ConfirmRegistration handles GET /api/auth/confirm/registration/{id}/{token}.
func (h *AuthHandler) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	confirmed, err := h.accounts.ConfirmRegistration(r.Context(), id, pathToken(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: confirmed})
}

// Login handles POST /api/auth/login. On success it mints a login token
// signed with the base secret.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	userID, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	token, err := h.codec.Encode(
		r.Context(), userID.String(), []byte(h.cfg.TokenSecret), h.cfg.LoginTokenTTL())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		UserID: userID,
		Token:  token,
	})
}

// ForgotPassword handles POST /api/auth/password/forgot.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.accounts.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: id})
}

// ResetPassword handles GET /api/auth/reset/password/{id}/{token}.
// It validates the reset link and returns the address for the reset form.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	email, err := h.accounts.ResetPassword(r.Context(), id, pathToken(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EmailResponse{Email: email})
}

// SetNewPassword handles POST /api/auth/reset/password/{id}/{token}.
func (h *AuthHandler) SetNewPassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req SetNewPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.accounts.SetNewPassword(
		r.Context(), id, pathToken(r), req.Password1, req.Password2)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: updated})
}

// UpdatePassword handles POST /api/auth/password (protected).
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdatePasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.accounts.UpdatePassword(
		r.Context(), userID, req.OldPassword, req.NewPassword1, req.NewPassword2)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: updated})
}

// UpdateUsername handles PUT /api/auth/username (protected).
func (h *AuthHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateUsernameRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.accounts.UpdateUsername(r.Context(), userID, req.Username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: updated})
}

// UpdateRole handles PUT /api/auth/role (protected). The target user rides
// in the body so admins can change other accounts.
func (h *AuthHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.accounts.UpdateRole(r.Context(), req.UserID, req.Role)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: updated})
}

// DeleteUser handles DELETE /api/auth/users/{id} (protected).
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.accounts.DeleteUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: deleted})
}

// FindUser handles GET /api/auth/users/email/{email} (protected).
func (h *AuthHandler) FindUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.FindUser(r.Context(), pathEmail(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ListUsers handles GET /api/auth/users (protected).
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// AllowEmail handles POST /api/auth/emails (protected).
func (h *AuthHandler) AllowEmail(w http.ResponseWriter, r *http.Request) {
	var req AllowEmailRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.accounts.AllowEmail(r.Context(), req.Email, req.Role)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: id})
}

// UpdateAllowedEmail handles PUT /api/auth/emails (protected).
func (h *AuthHandler) UpdateAllowedEmail(w http.ResponseWriter, r *http.Request) {
	var req UpdateAllowedEmailRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.accounts.UpdateAllowedEmail(r.Context(), req.ID, req.Email, req.Role)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: id})
}

// DeleteAllowedEmail handles DELETE /api/auth/emails/{id} (protected).
func (h *AuthHandler) DeleteAllowedEmail(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.accounts.DeleteAllowedEmail(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: deleted})
}

// ListAllowedEmails handles GET /api/auth/emails (protected).
func (h *AuthHandler) ListAllowedEmails(w http.ResponseWriter, r *http.Request) {
	entries, err := h.accounts.ListAllowedEmails(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// decodeAndValidate parses the JSON body into req and validates it,
// writing the 400/422 response itself on failure.
func (h *AuthHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return false
	}
	return true
}
