package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dsl-bot/internal/loader"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script>",
		Short: "Compile a .bot script and report syntax errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := loader.LoadScript(args[0])
			if err != nil {
				return err
			}
			total := 0
			for _, name := range script.Program.BotOrder {
				bot := script.Program.Bots[name]
				for _, stateName := range bot.StateOrder {
					total += len(bot.States[stateName].Instructions)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bot(s), %d instruction(s) total, OK\n",
				script.Filename, len(script.Program.BotOrder), total)
			return nil
		},
	}
}
