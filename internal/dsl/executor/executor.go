// Package executor implements the per-instruction dispatch the engine
// driver calls once per instruction in a state's list.
package executor

import (
	"context"
	"strconv"

	"dsl-bot/internal/adapter"
	"dsl-bot/internal/classifier"
	"dsl-bot/internal/dsl/ast"
	"dsl-bot/internal/dsl/sqlbinder"
	"dsl-bot/internal/dslctx"
	"dsl-bot/internal/store"
)

// Func is a registered external function invoked by a Call instruction.
// An invocation error binds the result variable to the literal "error";
// the error itself is never propagated to the driver.
type Func func(args []string) (string, error)

// Executor holds every collaborator an instruction might need: the
// adapter to talk to the user, the store behind sql instructions, the
// classifier behind process instructions, and the registered function
// table behind call instructions.
type Executor struct {
	Adapter    adapter.Adapter
	Store      store.Store
	Classifier classifier.Classifier
	Functions  map[string]Func
}

// Execute runs one instruction against ctx, returning whether the
// caller should stop processing the rest of the current state's
// instruction list, and if so, which state to transition to (empty
// string means "stay put", only meaningful when brk is true and no
// explicit target state applies — engine.Run then leaves the current
// state unchanged and re-enters it on its next iteration).
func (e *Executor) Execute(goCtx context.Context, instr ast.Instruction, dctx *dslctx.Context) (brk bool, next string) {
	switch ins := instr.(type) {
	case ast.Say:
		e.Adapter.Send(dctx.FormatTemplate(ins.Content))
		return false, ""

	case ast.Listen:
		text := e.Adapter.Receive()
		if text == adapter.Exit {
			return true, "Exit"
		}
		dctx.AppendHistory(text)
		if ins.Var != "" {
			dctx.Set(ins.Var, text)
		}
		return false, ""

	case ast.Goto:
		return true, ins.Target

	case ast.Exit:
		return true, "Exit"

	case ast.Set:
		dctx.Set(ins.Var, e.resolve(ins.Value, dctx))
		return false, ""

	case ast.Call:
		fn, ok := e.Functions[ins.Func]
		if !ok {
			return false, ""
		}
		args := make([]string, len(ins.Args))
		for i, a := range ins.Args {
			args[i] = e.resolve(a, dctx)
		}
		result, err := fn(args)
		if ins.Result == "" {
			return false, ""
		}
		if err != nil {
			dctx.Set(ins.Result, "error")
		} else {
			dctx.Set(ins.Result, result)
		}
		return false, ""

	case ast.If:
		if e.compare(ins, dctx) {
			return true, ins.Target
		}
		return false, ""

	case ast.Sql:
		result := sqlbinder.Execute(goCtx, e.Store, dctx, ins.Query)
		if ins.Result != "" {
			dctx.Set(ins.Result, result)
		}
		return false, ""

	case ast.Process:
		return e.executeProcess(goCtx, ins, dctx)

	default:
		return false, ""
	}
}

func (e *Executor) resolve(v ast.Value, dctx *dslctx.Context) string {
	switch v.Kind {
	case ast.ValueVar:
		return dctx.Get(v.Var)
	case ast.ValueLiteralInt:
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.Str
	}
}

func (e *Executor) compare(ins ast.If, dctx *dslctx.Context) bool {
	left := e.resolve(ins.Left, dctx)
	right := e.resolve(ins.Right, dctx)

	switch ins.Op {
	case "==":
		return left == right
	case "!=":
		return left != right
	case "<", ">":
		lf, lErr := strconv.ParseFloat(left, 64)
		rf, rErr := strconv.ParseFloat(right, 64)
		if lErr != nil || rErr != nil {
			return false
		}
		if ins.Op == "<" {
			return lf < rf
		}
		return lf > rf
	default:
		return false
	}
}

func (e *Executor) executeProcess(goCtx context.Context, ins ast.Process, dctx *dslctx.Context) (bool, string) {
	if e.Classifier == nil {
		return true, "Exit"
	}

	candidates := make([]string, len(ins.Cases))
	for i, c := range ins.Cases {
		candidates[i] = c.Intent
	}

	label := e.Classifier.DetectIntent(goCtx, dctx.LastInput(), candidates)

	for _, c := range ins.Cases {
		if c.Intent == label {
			return e.Execute(goCtx, c.Action, dctx)
		}
	}
	if label == classifier.Unknown && ins.Default != nil {
		return e.Execute(goCtx, ins.Default, dctx)
	}
	return false, ""
}
