package sqlbinder

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsl-bot/internal/dslctx"
	"dsl-bot/internal/store"
)

func TestBindRewritesPlaceholdersInDiscoveryOrder(t *testing.T) {
	dctx := dslctx.New()
	dctx.Set("phone", "13800138000")
	dctx.Set("amount", "100")

	bound, params := Bind("UPDATE users SET balance = balance + $amount WHERE phone = $phone", dctx)

	assert.Equal(t, "UPDATE users SET balance = balance + $1 WHERE phone = $2", bound)
	require.Equal(t, []any{"100", "13800138000"}, params)
}

// TestBindNeverEmitsRawInjectionInput is the SQL-parameterization-safety
// property: for any input containing SQL metacharacters, the bound query
// text never contains the raw input, only a placeholder.
func TestBindNeverEmitsRawInjectionInput(t *testing.T) {
	dctx := dslctx.New()
	injected := `' OR '1'='1`
	dctx.Set("id_card", injected)

	bound, params := Bind("SELECT id_card FROM users WHERE id_card = $id_card", dctx)

	assert.NotContains(t, bound, injected)
	require.Len(t, params, 1)
	assert.Equal(t, injected, params[0])
}

func TestExecuteSelectSwallowsErrorToZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := store.NewStoreFromDB(db)
	dctx := dslctx.New()
	dctx.Set("phone", "000")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM users WHERE phone = $1")).
		WithArgs("000").
		WillReturnError(assertErr{})

	got := Execute(context.Background(), st, dctx, "SELECT name FROM users WHERE phone = $phone")
	assert.Equal(t, "0", got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSelectReturnsFirstColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := store.NewStoreFromDB(db)
	dctx := dslctx.New()
	dctx.Set("phone", "13800138000")

	rows := sqlmock.NewRows([]string{"name"}).AddRow("测试1")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM users WHERE phone = $1")).
		WithArgs("13800138000").
		WillReturnRows(rows)

	got := Execute(context.Background(), st, dctx, "SELECT name FROM users WHERE phone = $phone")
	assert.Equal(t, "测试1", got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteMutationReturnsAffectedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := store.NewStoreFromDB(db)
	dctx := dslctx.New()
	dctx.Set("phone", "13800138000")
	dctx.Set("amount", "100")

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = balance + $1 WHERE phone = $2")).
		WithArgs("100", "13800138000").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got := Execute(context.Background(), st, dctx, "UPDATE users SET balance = balance + $amount WHERE phone = $phone")
	assert.Equal(t, "1", got)
	require.NoError(t, mock.ExpectationsWereMet())
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
