// Package dslctx implements the per-session mutable record the engine
// drives against: current state, variable environment, and input
// history.
package dslctx

import (
	"sort"
	"strings"
)

// Context is owned by exactly one worker for the lifetime of one run.
// It is not safe for concurrent use by multiple goroutines; the engine
// driver never shares a Context across sessions.
type Context struct {
	State     string
	variables map[string]string
	varOrder  []string
	history   []string
}

func New() *Context {
	return &Context{
		State:     "Start",
		variables: map[string]string{},
	}
}

// Set binds a variable to a string form. Numeric values are stored as
// their decimal text; ordered comparisons reparse on demand.
func (c *Context) Set(name, value string) {
	if _, exists := c.variables[name]; !exists {
		c.varOrder = append(c.varOrder, name)
	}
	c.variables[name] = value
}

// Get returns the bound value, or the empty string if the variable was
// never set. Undefined lookups never fail.
func (c *Context) Get(name string) string {
	return c.variables[name]
}

func (c *Context) AppendHistory(input string) {
	c.history = append(c.history, input)
}

// LastInput returns the most recent history entry, or "" if none.
func (c *Context) LastInput() string {
	if len(c.history) == 0 {
		return ""
	}
	return c.history[len(c.history)-1]
}

func (c *Context) History() []string {
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// FormatTemplate substitutes every declared variable's $name occurrence
// in text with its current value. Substitution order is longest-name-
// first, so that "$x" cannot clobber part of a "$xy" replacement — the
// deterministic rule this project picked for the otherwise-undefined
// overlapping-name case.
func (c *Context) FormatTemplate(text string) string {
	if len(c.varOrder) == 0 {
		return text
	}
	names := make([]string, len(c.varOrder))
	copy(names, c.varOrder)
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	out := text
	for _, name := range names {
		out = strings.ReplaceAll(out, "$"+name, c.variables[name])
	}
	return out
}
