package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UserSnapshot is a read projection of the demo users table shipped with
// the example scripts, returned by the CLI's history command.
type UserSnapshot struct {
	Phone    string  `db:"phone"`
	Name     string  `db:"name"`
	Balance  float64 `db:"balance"`
	DataLeft float64 `db:"data_left"`
	Package  string  `db:"package_name"`
}

// FetchUserSnapshot reads one row via sqlx's struct-scanning Get, used
// by admin/debug tooling that wants a typed view of a user row.
func FetchUserSnapshot(ctx context.Context, db *sqlx.DB, phone string) (*UserSnapshot, error) {
	var row UserSnapshot
	err := db.GetContext(ctx, &row,
		`SELECT phone, name, balance, data_left, package_name FROM users WHERE phone = $1`, phone)
	if err != nil {
		return nil, fmt.Errorf("fetching user snapshot for %s: %w", phone, err)
	}
	return &row, nil
}
