package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswirski/tms-api/internal/store"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MapError(nil))
	})

	t.Run("no rows becomes not found", func(t *testing.T) {
		t.Parallel()
		err := MapError(sql.ErrNoRows)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation becomes duplicate", func(t *testing.T) {
		t.Parallel()
		pgErr := &pgconn.PgError{Code: uniqueViolationCode}
		err := MapError(pgErr)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("connection refused")
		assert.Equal(t, orig, MapError(orig))

		otherPg := &pgconn.PgError{Code: "42P01"}
		assert.Equal(t, error(otherPg), MapError(otherPg))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("affected rows", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrUserNotFound))
	})

	t.Run("zero rows returns the sentinel", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{rows: 0}, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rows affected failure propagates", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("driver broke")
		err := CheckRowsAffected(fakeResult{err: cause}, store.ErrUserNotFound)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(nil, store.ErrUserNotFound))
	})
}
