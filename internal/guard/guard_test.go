package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/gospives/platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB implements repository.DBTX for the two calls the lockout guard makes.
type fakeDB struct {
	failedCount int
	queryErr    error
	execs       int
}

func (f *fakeDB) Exec(_ context.Context, _ string, _ ...interface{}) (pgconn.CommandTag, error) {
	f.execs++
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(_ context.Context, _ string, _ ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, _ ...interface{}) pgx.Row {
	return countRow{count: f.failedCount, err: f.queryErr}
}

type countRow struct {
	count int
	err   error
}

func (r countRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*int); ok {
		*p = r.count
	}
	return nil
}

func TestCheckLocked(t *testing.T) {
	t.Run("under threshold allowed", func(t *testing.T) {
		db := &fakeDB{failedCount: MaxAttempts - 1}
		require.NoError(t, CheckLocked(context.Background(), db, "a@x.com"))
	})

	t.Run("at threshold locked", func(t *testing.T) {
		db := &fakeDB{failedCount: MaxAttempts}
		err := CheckLocked(context.Background(), db, "a@x.com")
		require.Error(t, err)

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "ACCOUNT_LOCKED", appErr.Code)
		assert.Equal(t, 429, appErr.Status)
	})

	t.Run("fails open on store error", func(t *testing.T) {
		db := &fakeDB{queryErr: errors.New("connection refused")}
		require.NoError(t, CheckLocked(context.Background(), db, "a@x.com"))
	})
}

func TestRecordAttemptSwallowsErrors(t *testing.T) {
	db := &fakeDB{}
	RecordAttempt(context.Background(), db, "a@x.com", "1.2.3.4", "unknown email", false)
	assert.Equal(t, 1, db.execs)
}
