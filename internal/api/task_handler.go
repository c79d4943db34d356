package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jswirski/tms-api/internal/api/shared"
	"github.com/jswirski/tms-api/internal/service/task"
)

// TaskHandler handles the task board endpoints.
type TaskHandler struct {
	tasks     *task.Service
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks *task.Service) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		validator: validator.New(),
	}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.tasks.Create(r.Context(),
		req.Name, req.Description, req.Status,
		req.DateFrom, req.DateTo, req.Color, req.Members)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: id})
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req TaskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.tasks.Update(r.Context(), id,
		req.Name, req.Description, req.Status,
		req.DateFrom, req.DateTo, req.Color, req.Members)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: updated})
}

// UpdateStatus handles PATCH /api/tasks/{id}/status.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req TaskStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.tasks.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: updated})
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.tasks.Delete(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IDResponse{ID: deleted})
}

// List handles GET /api/tasks, optionally filtered with from/to query
// parameters (RFC 3339).
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")

	if fromRaw == "" && toRaw == "" {
		tasks, err := h.tasks.List(r.Context())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, tasks)
		return
	}

	from, err := time.Parse(time.RFC3339, fromRaw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "from has invalid format")
		return
	}
	to, err := time.Parse(time.RFC3339, toRaw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "to has invalid format")
		return
	}

	tasks, err := h.tasks.GetByDateRange(r.Context(), from, to)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
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
