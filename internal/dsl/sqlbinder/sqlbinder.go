// Package sqlbinder rewrites $name placeholders embedded in DSL sql
// instructions into positional parameters and dispatches the statement
// to the configured store, swallowing every database error into the
// sentinel value "0" — the DSL has no exception mechanism, so numeric
// zero is the conventional falsy result an "if" can test.
package sqlbinder

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dsl-bot/internal/dslctx"
	"dsl-bot/internal/store"
)

var placeholderRe = regexp.MustCompile(`\$[a-zA-Z0-9_]+`)

// Bind scans query for $name occurrences, resolves each from ctx
// (missing -> empty string), and rewrites them to Postgres-style
// positional placeholders in discovery order.
func Bind(query string, ctx *dslctx.Context) (string, []any) {
	var params []any
	bound := placeholderRe.ReplaceAllStringFunc(query, func(match string) string {
		name := match[1:]
		params = append(params, ctx.Get(name))
		return "$" + strconv.Itoa(len(params))
	})
	return bound, params
}

// isSelect matches the first non-whitespace token case-insensitively.
func isSelect(query string) bool {
	trimmed := strings.TrimSpace(query)
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return false
	}
	return strings.EqualFold(fields[0], "SELECT")
}

// Execute runs query against st, returning the DSL-visible string result:
// the first column of the first row for a SELECT (or "0" if no row), or
// the affected-row count for any other statement. Any database error is
// swallowed and reported as "0".
func Execute(ctx context.Context, st store.Store, dctx *dslctx.Context, query string) string {
	if st == nil {
		return "0"
	}
	bound, params := Bind(query, dctx)

	if isSelect(bound) {
		val, err := st.FetchScalar(ctx, bound, params)
		if err != nil || val == nil {
			return "0"
		}
		return scalarToString(val)
	}

	affected, err := st.Execute(ctx, bound, params)
	if err != nil {
		return "0"
	}
	return strconv.FormatInt(affected, 10)
}

func scalarToString(v any) string {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
