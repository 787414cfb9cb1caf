package cli

import (
	"github.com/spf13/cobra"

	"dsl-bot/internal/config"
	"dsl-bot/internal/logging"
	"dsl-bot/internal/webserver"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve bots over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			if v, _ := cmd.Flags().GetString("scripts-dir"); v != "" {
				cfg.ScriptsDir = v
			}
			if v, _ := cmd.Flags().GetString("db-conn"); v != "" {
				cfg.DBConnString = v
			}
			if v, _ := cmd.Flags().GetString("store"); v != "" {
				cfg.StoreType = v
			}
			if v, _ := cmd.Flags().GetInt("max-steps"); v > 0 {
				cfg.MaxSteps = v
			}

			log := logging.New("web")
			srv, err := webserver.NewServer(cfg, log)
			if err != nil {
				return err
			}
			log.Infof("listening on %s", cfg.Addr)
			return srv.Run(cfg.Addr)
		},
	}
}
