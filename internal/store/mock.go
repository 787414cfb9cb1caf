package store

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// MockStore is an in-memory stand-in for the users demo table, used in
// unit tests and when BOTDSL_STORE=mock is set. It understands the
// narrow, regular shape of queries the shipped example scripts issue
// against a single table keyed by phone — column selects, column
// arithmetic updates (col = col +/- operand), and column assignment
// updates — by pattern-matching the already-bound query text rather
// than parsing general SQL.
type MockStore struct {
	mu    sync.Mutex
	users map[string]map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{users: map[string]map[string]string{}}
}

// Seed registers a row keyed by phone number for later lookups.
func (m *MockStore) Seed(phone string, row map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[phone] = row
}

func (m *MockStore) Close() error { return nil }

// RowFor returns a copy of the seeded/mutated row for phone, for use in
// tests that assert on state after a sequence of DSL sql instructions.
func (m *MockStore) RowFor(phone string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.users[phone]
	if !ok {
		return nil
	}
	cp := make(map[string]string, len(row))
	for k, v := range row {
		cp[k] = v
	}
	return cp
}

var (
	phoneRefRe  = regexp.MustCompile(`phone\s*=\s*\$(\d+)`)
	arithRe     = regexp.MustCompile(`(\w+)\s*=\s*\w+\s*([+\-])\s*(\$(\d+)|[0-9]+(?:\.[0-9]+)?)`)
	directSetRe = regexp.MustCompile(`(\w+)\s*=\s*\$(\d+)`)
	selectColRe = regexp.MustCompile(`(?i)SELECT\s+([a-zA-Z0-9_, ]+)\s+FROM`)
	andEqRe     = regexp.MustCompile(`(?i)AND\s+(\w+)\s*=\s*\$(\d+)`)
)

func paramAt(params []any, idx int) string {
	if idx < 1 || idx > len(params) {
		return ""
	}
	v, _ := params[idx-1].(string)
	return v
}

func (m *MockStore) phoneFromQuery(query string, params []any) (string, bool) {
	match := phoneRefRe.FindStringSubmatch(query)
	if match == nil {
		return "", false
	}
	idx, _ := strconv.Atoi(match[1])
	return paramAt(params, idx), true
}

func (m *MockStore) Execute(_ context.Context, query string, params []any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	phone, ok := m.phoneFromQuery(query, params)
	if !ok {
		return 0, nil
	}
	row, exists := m.users[phone]
	if !exists {
		return 0, nil
	}

	changed := int64(0)
	for _, set := range arithRe.FindAllStringSubmatch(query, -1) {
		col, op, operandRaw, idxStr := set[1], set[2], set[3], set[4]
		if col == "phone" {
			continue
		}
		var operand float64
		if idxStr != "" {
			idx, _ := strconv.Atoi(idxStr)
			operand, _ = strconv.ParseFloat(paramAt(params, idx), 64)
		} else {
			operand, _ = strconv.ParseFloat(operandRaw, 64)
		}
		current, _ := strconv.ParseFloat(row[col], 64)
		if op == "+" {
			current += operand
		} else {
			current -= operand
		}
		row[col] = fmt.Sprintf("%.2f", current)
		changed = 1
	}

	for _, set := range directSetRe.FindAllStringSubmatch(query, -1) {
		col := set[1]
		if col == "phone" {
			continue
		}
		idx, _ := strconv.Atoi(set[2])
		row[col] = paramAt(params, idx)
		changed = 1
	}

	return changed, nil
}

func (m *MockStore) FetchScalar(_ context.Context, query string, params []any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	phone, ok := m.phoneFromQuery(query, params)
	if !ok {
		return nil, nil
	}
	row, exists := m.users[phone]
	if !exists {
		return nil, nil
	}
	if !andFiltersMatch(query, params, row) {
		return nil, nil
	}

	cols := selectColRe.FindStringSubmatch(query)
	if cols == nil {
		return nil, nil
	}
	col := strings.TrimSpace(strings.Split(cols[1], ",")[0])
	if col == "phone" {
		return phone, nil
	}
	return row[col], nil
}

// andFiltersMatch checks any "AND col = $N" equality clauses beyond the
// leading phone filter, so a query like the identity-verification
// lookup (phone AND id_card) correctly reports no match when the
// second value is wrong — including when it is an injection attempt,
// since it is bound as an ordinary parameter and never interpolated
// into the query text.
func andFiltersMatch(query string, params []any, row map[string]string) bool {
	for _, m := range andEqRe.FindAllStringSubmatch(query, -1) {
		col := m[1]
		if col == "phone" {
			continue
		}
		idx, _ := strconv.Atoi(m[2])
		if row[col] != paramAt(params, idx) {
			return false
		}
	}
	return true
}
