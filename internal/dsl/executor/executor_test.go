package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsl-bot/internal/adapter"
	"dsl-bot/internal/classifier"
	"dsl-bot/internal/dsl/ast"
	"dsl-bot/internal/dslctx"
)

type fakeAdapter struct {
	sent []string
	in   []string
}

func (f *fakeAdapter) Send(text string) { f.sent = append(f.sent, text) }
func (f *fakeAdapter) Receive() string {
	if len(f.in) == 0 {
		return adapter.Exit
	}
	v := f.in[0]
	f.in = f.in[1:]
	return v
}

func newExecutor() (*Executor, *fakeAdapter) {
	a := &fakeAdapter{}
	return &Executor{Adapter: a, Functions: map[string]Func{}}, a
}

func TestSaySubstitutesVariables(t *testing.T) {
	ex, a := newExecutor()
	dctx := dslctx.New()
	dctx.Set("x", "A")

	brk, next := ex.Execute(context.Background(), ast.Say{Content: "value is $x"}, dctx)
	assert.False(t, brk)
	assert.Equal(t, "", next)
	require.Len(t, a.sent, 1)
	assert.Equal(t, "value is A", a.sent[0])
}

func TestListenExitSentinelTerminates(t *testing.T) {
	ex, a := newExecutor()
	a.in = []string{adapter.Exit}
	dctx := dslctx.New()

	brk, next := ex.Execute(context.Background(), ast.Listen{}, dctx)
	assert.True(t, brk)
	assert.Equal(t, "Exit", next)
}

func TestListenBindsVariableAndHistory(t *testing.T) {
	ex, a := newExecutor()
	a.in = []string{"hello"}
	dctx := dslctx.New()

	brk, _ := ex.Execute(context.Background(), ast.Listen{Var: "msg"}, dctx)
	assert.False(t, brk)
	assert.Equal(t, "hello", dctx.Get("msg"))
	assert.Equal(t, "hello", dctx.LastInput())
}

func TestIfEqualityComparesStringForms(t *testing.T) {
	ex, _ := newExecutor()
	dctx := dslctx.New()
	dctx.Set("x", "5")

	brk, next := ex.Execute(context.Background(), ast.If{
		Left: ast.VarRef("x"), Op: "==", Right: ast.LiteralInt(5), Target: "Done",
	}, dctx)
	assert.True(t, brk)
	assert.Equal(t, "Done", next)
}

func TestIfOrderedComparisonNonNumericIsFalse(t *testing.T) {
	ex, _ := newExecutor()
	dctx := dslctx.New()
	dctx.Set("x", "not-a-number")

	brk, _ := ex.Execute(context.Background(), ast.If{
		Left: ast.VarRef("x"), Op: "<", Right: ast.LiteralInt(5), Target: "Done",
	}, dctx)
	assert.False(t, brk)
}

func TestCallBindsErrorSentinelOnFailure(t *testing.T) {
	ex, _ := newExecutor()
	ex.Functions["boom"] = func(args []string) (string, error) {
		return "", errors.New("nope")
	}
	dctx := dslctx.New()

	brk, _ := ex.Execute(context.Background(), ast.Call{Func: "boom", Result: "r"}, dctx)
	assert.False(t, brk)
	assert.Equal(t, "error", dctx.Get("r"))
}

func TestCallUnregisteredFunctionIsNoop(t *testing.T) {
	ex, _ := newExecutor()
	dctx := dslctx.New()

	brk, _ := ex.Execute(context.Background(), ast.Call{Func: "missing", Result: "r"}, dctx)
	assert.False(t, brk)
	assert.Equal(t, "", dctx.Get("r"))
}

func TestProcessDispatchesMatchingCase(t *testing.T) {
	ex, _ := newExecutor()
	ex.Classifier = classifier.NewRuleClassifier(
		classifier.Rule{Substring: "hi", Label: "greet"},
	)
	dctx := dslctx.New()
	dctx.AppendHistory("hi there")

	proc := ast.Process{
		Cases: []ast.ProcessCase{
			{Intent: "greet", Action: ast.Goto{Target: "Greeting"}},
		},
	}
	brk, next := ex.Execute(context.Background(), proc, dctx)
	assert.True(t, brk)
	assert.Equal(t, "Greeting", next)
}

func TestProcessDispatchesDefaultOnUnknown(t *testing.T) {
	ex, _ := newExecutor()
	ex.Classifier = classifier.NewRuleClassifier()
	dctx := dslctx.New()
	dctx.AppendHistory("gibberish")

	proc := ast.Process{
		Cases:   []ast.ProcessCase{{Intent: "greet", Action: ast.Goto{Target: "Greeting"}}},
		Default: ast.Goto{Target: "Fallback"},
	}
	brk, next := ex.Execute(context.Background(), proc, dctx)
	assert.True(t, brk)
	assert.Equal(t, "Fallback", next)
}

func TestProcessNoClassifierTerminatesSession(t *testing.T) {
	ex, _ := newExecutor()
	dctx := dslctx.New()

	brk, next := ex.Execute(context.Background(), ast.Process{}, dctx)
	assert.True(t, brk)
	assert.Equal(t, "Exit", next)
}
