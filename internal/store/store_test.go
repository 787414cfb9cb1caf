package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchScalarReturnsFirstColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStoreFromDB(db)

	rows := sqlmock.NewRows([]string{"balance"}).AddRow("95.00")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT balance FROM users WHERE phone = $1")).
		WithArgs("13900139000").
		WillReturnRows(rows)

	val, err := s.FetchScalar(context.Background(), "SELECT balance FROM users WHERE phone = $1", []any{"13900139000"})
	require.NoError(t, err)
	assert.Equal(t, "95.00", val)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchScalarNoRowsReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStoreFromDB(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM users WHERE phone = $1")).
		WithArgs("000").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	val, err := s.FetchScalar(context.Background(), "SELECT name FROM users WHERE phone = $1", []any{"000"})
	require.NoError(t, err)
	assert.Nil(t, val)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteReturnsAffectedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStoreFromDB(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = balance + $1 WHERE phone = $2")).
		WithArgs("100", "13900139000").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := s.Execute(context.Background(), "UPDATE users SET balance = balance + $1 WHERE phone = $2", []any{"100", "13900139000"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
