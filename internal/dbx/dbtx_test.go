package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func insert(ctx context.Context, tx DBTX) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO comments(body) VALUES ($1)`, "hi")
	return err
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO comments`).WithArgs("hi").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, WithTx(context.Background(), db, nil, insert))
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { panic("kaput") })
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("conn refused"))

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestWithTx_RetriesSerializationFailure(t *testing.T) {
	db, mock := newMock(t)
	conflict := &pgconn.PgError{Code: codeSerializationFailure}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO comments`).WillReturnError(conflict)
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO comments`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, WithTx(context.Background(), db, nil, insert))
}

func TestWithTx_GivesUpAfterMaxAttempts(t *testing.T) {
	db, mock := newMock(t)
	deadlock := &pgconn.PgError{Code: codeDeadlockDetected}

	for i := 0; i < MaxAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO comments`).WillReturnError(deadlock)
		mock.ExpectRollback()
	}

	err := WithTx(context.Background(), db, nil, insert)
	assert.True(t, Retryable(err))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40001"})))
	assert.True(t, Retryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, Retryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, Retryable(errors.New("plain")))
	assert.False(t, Retryable(nil))
}
