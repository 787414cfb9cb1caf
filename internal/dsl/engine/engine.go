// Package engine implements the outer driver loop: it walks the flow
// table state by state, handing each instruction to the executor and
// applying jumps, bounded by a step cap so a DSL author's mistake cannot
// spin a worker forever.
package engine

import (
	"context"
	"fmt"

	"dsl-bot/internal/dsl/ast"
	"dsl-bot/internal/dsl/executor"
	"dsl-bot/internal/dslctx"
)

// DefaultMaxSteps is the step-cap used when a caller doesn't override it.
const DefaultMaxSteps = 1000

// Run drives bot botName from flow to completion (or step-cap abort),
// returning the number of steps taken. dctx is mutated in place; the
// caller owns it for the lifetime of the run.
func Run(goCtx context.Context, flow ast.FlowTable, botName string, dctx *dslctx.Context, ex *executor.Executor, maxSteps int) int {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	bot, ok := flow[botName]
	steps := 0
	for ok && dctx.State != "Exit" {
		if steps > maxSteps {
			ex.Adapter.Send(fmt.Sprintf("Step limit exceeded (%d); terminating.", maxSteps))
			break
		}

		st, stateOK := bot.States[dctx.State]
		if !stateOK {
			break
		}

		for _, instr := range st.Instructions {
			brk, next := ex.Execute(goCtx, instr, dctx)
			if brk {
				if next != "" {
					dctx.State = next
				}
				break
			}
		}

		steps++
	}

	ex.Adapter.Send("Session Ended")
	return steps
}
