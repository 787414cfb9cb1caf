package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchUserSnapshotScansRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "postgres")

	rows := sqlmock.NewRows([]string{"phone", "name", "balance", "data_left", "package_name"}).
		AddRow("13900139000", "测试2", 5.00, 0.5, "4G标准套餐")
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT phone, name, balance, data_left, package_name FROM users WHERE phone = $1")).
		WithArgs("13900139000").
		WillReturnRows(rows)

	snap, err := FetchUserSnapshot(context.Background(), sqlxDB, "13900139000")
	require.NoError(t, err)
	assert.Equal(t, "测试2", snap.Name)
	assert.Equal(t, 5.00, snap.Balance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchUserSnapshotNoRowsReturnsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "postgres")

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT phone, name, balance, data_left, package_name FROM users WHERE phone = $1")).
		WithArgs("000").
		WillReturnRows(sqlmock.NewRows([]string{"phone", "name", "balance", "data_left", "package_name"}))

	_, err = FetchUserSnapshot(context.Background(), sqlxDB, "000")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
