// Package loader reads .bot scripts from a directory, compiles them into
// the flow table the engine drives, and watches the directory so the
// list of available scripts stays current without ever reloading a
// running session's flow table out from under it.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dsl-bot/internal/dsl/ast"
	"dsl-bot/internal/dsl/parser"
)

// CompiledScript is one parsed .bot file: its filename and the flow
// table entries it declared.
type CompiledScript struct {
	Filename string
	Program  *ast.Program
}

// LoadScript parses a single .bot file.
func LoadScript(path string) (*CompiledScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	prog, err := parser.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("compiling script %s: %w", path, err)
	}
	return &CompiledScript{Filename: filepath.Base(path), Program: prog}, nil
}

// ListScripts returns the sorted base names of every .bot file in dir.
func ListScripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scripts directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".bot") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// FirstBotName returns the name of the first bot declared in prog, used
// when the web front-end activates a script without specifying which
// bot within it to run.
func FirstBotName(prog *ast.Program) (string, bool) {
	if len(prog.BotOrder) == 0 {
		return "", false
	}
	return prog.BotOrder[0], true
}
