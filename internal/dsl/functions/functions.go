// Package functions provides the default registered-function table
// behind the DSL's call instruction. Bot authors needing anything more
// than basic string utilities register their own via executor.Executor.Functions.
package functions

import (
	"fmt"
	"strings"

	"dsl-bot/internal/dsl/executor"
)

// Default returns the built-in function set every bot gets unless a
// caller overrides the table.
func Default() map[string]executor.Func {
	return map[string]executor.Func{
		"upper": func(args []string) (string, error) {
			if len(args) == 0 {
				return "", nil
			}
			return strings.ToUpper(args[0]), nil
		},
		"lower": func(args []string) (string, error) {
			if len(args) == 0 {
				return "", nil
			}
			return strings.ToLower(args[0]), nil
		},
		"concat": func(args []string) (string, error) {
			return strings.Join(args, ""), nil
		},
		"len": func(args []string) (string, error) {
			if len(args) == 0 {
				return "0", nil
			}
			return fmt.Sprintf("%d", len([]rune(args[0]))), nil
		},
	}
}
