// Command bot is the console entrypoint: compile, validate, run, or
// serve bot DSL scripts.
package main

import (
	"fmt"
	"os"

	"dsl-bot/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
