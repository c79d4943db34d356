package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswirski/tms-api/internal/domain"
	"github.com/jswirski/tms-api/internal/store"
)

func taskBody(name string, from, to time.Time) TaskRequest {
	return TaskRequest{
		Name:     name,
		Status:   "todo",
		DateFrom: from,
		DateTo:   to,
		Color:    2,
		Members:  []string{"alice"},
	}
}

func TestTaskEndpoints(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 2)

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()

		rec := d.do(t, http.MethodPost, "/api/tasks/",
			taskBody("deploy", from, to), d.loginToken(t, uuid.New()))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp IDResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEqual(t, uuid.Nil, resp.ID)
	})

	t.Run("create requires a login token", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		rec := d.do(t, http.MethodPost, "/api/tasks/", taskBody("deploy", from, to), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("inverted date range maps to 422", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()

		rec := d.do(t, http.MethodPost, "/api/tasks/",
			taskBody("deploy", to, from), d.loginToken(t, uuid.New()))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("update with a bad id maps to 400", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()

		rec := d.do(t, http.MethodPut, "/api/tasks/not-a-uuid",
			taskBody("deploy", from, to), d.loginToken(t, uuid.New()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status move of a missing task maps to 404", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		d.tasks.Err = store.ErrTaskNotFound

		rec := d.do(t, http.MethodPatch, "/api/tasks/"+uuid.NewString()+"/status",
			TaskStatusRequest{Status: "done"}, d.loginToken(t, uuid.New()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		d.tasks.Tasks = []domain.Task{{
			ID:       uuid.New(),
			Name:     "deploy",
			Status:   "todo",
			DateFrom: from,
			DateTo:   to,
		}}

		rec := d.do(t, http.MethodGet, "/api/tasks/", nil, d.loginToken(t, uuid.New()))

		require.Equal(t, http.StatusOK, rec.Code)
		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
		assert.Len(t, tasks, 1)
	})

	t.Run("list with a date range filter", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()
		var gotFrom, gotTo time.Time
		d.tasks.GetByDateRangeFn = func(_ context.Context, f, tt time.Time) ([]domain.Task, error) {
			gotFrom, gotTo = f, tt
			return []domain.Task{{ID: uuid.New(), Name: "deploy", Status: "todo",
				DateFrom: from, DateTo: to}}, nil
		}

		rec := d.do(t, http.MethodGet,
			"/api/tasks/?from="+from.Format(time.RFC3339)+"&to="+to.Format(time.RFC3339),
			nil, d.loginToken(t, uuid.New()))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotFrom.Equal(from))
		assert.True(t, gotTo.Equal(to))
	})

	t.Run("bad range query maps to 400", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()

		rec := d.do(t, http.MethodGet, "/api/tasks/?from=yesterday&to=tomorrow",
			nil, d.loginToken(t, uuid.New()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		d := newTestDeps()

		rec := d.do(t, http.MethodDelete, "/api/tasks/"+uuid.NewString(),
			nil, d.loginToken(t, uuid.New()))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
