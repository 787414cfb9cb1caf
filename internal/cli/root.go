// Package cli wires the cobra command tree for the bot binary: persistent
// flags for connection configuration, one file per subcommand.
package cli

import (
	"github.com/spf13/cobra"

	"dsl-bot/internal/config"
)

// NewRootCommand builds the full "bot" command tree.
func NewRootCommand() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "bot",
		Short: "Compile and run bot DSL scripts",
	}

	root.PersistentFlags().String("scripts-dir", cfg.ScriptsDir, "directory containing .bot scripts")
	root.PersistentFlags().String("db-conn", cfg.DBConnString, "Postgres connection string")
	root.PersistentFlags().String("store", cfg.StoreType, "store backend: postgresql or mock")
	root.PersistentFlags().Int("max-steps", cfg.MaxSteps, "engine step cap")

	root.AddCommand(newValidateCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newHistoryCommand())

	return root
}
