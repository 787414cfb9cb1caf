package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dsl-bot/internal/adapter"
	"dsl-bot/internal/classifier"
	"dsl-bot/internal/dsl/ast"
	"dsl-bot/internal/dsl/engine"
	"dsl-bot/internal/dsl/executor"
	"dsl-bot/internal/dsl/functions"
	"dsl-bot/internal/dslctx"
	"dsl-bot/internal/loader"
	"dsl-bot/internal/logging"
	"dsl-bot/internal/store"
)

func newRunCommand() *cobra.Command {
	var botName string
	var classifierKind string

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a bot over the console adapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New("bot")

			script, err := loader.LoadScript(args[0])
			if err != nil {
				return err
			}
			flow := ast.BuildFlowTable(script.Program)

			if botName == "" {
				name, ok := loader.FirstBotName(script.Program)
				if !ok {
					return fmt.Errorf("script %s declares no bots", script.Filename)
				}
				botName = name
			}

			storeKind, _ := cmd.Flags().GetString("store")
			dbConn, _ := cmd.Flags().GetString("db-conn")
			maxSteps, _ := cmd.Flags().GetInt("max-steps")

			var st store.Store
			if storeKind == "mock" {
				st = store.NewMockStore()
			} else {
				pg, err := store.NewStore(dbConn)
				if err != nil {
					log.Warnf("connecting to store: %v (continuing without persistence)", err)
				} else {
					st = pg
				}
			}

			var cl classifier.Classifier
			if classifierKind == "llm" {
				llm, err := classifier.NewLLMClassifier(context.Background(), os.Getenv("GEMINI_API_KEY"))
				if err != nil {
					log.Warnf("initializing LLM classifier: %v", err)
				}
				if llm != nil {
					cl = llm
				}
			}
			if cl == nil {
				cl = classifier.NewRuleClassifier()
			}

			ex := &executor.Executor{
				Adapter:    adapter.NewConsole(os.Stdin, os.Stdout),
				Store:      st,
				Classifier: cl,
				Functions:  functions.Default(),
			}

			dctx := dslctx.New()
			engine.Run(context.Background(), flow, botName, dctx, ex, maxSteps)
			return nil
		},
	}

	cmd.Flags().StringVar(&botName, "bot", "", "bot name to run (default: first declared)")
	cmd.Flags().StringVar(&classifierKind, "classifier", "mock", "classifier backend: mock or llm")
	return cmd
}
