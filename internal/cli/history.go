package cli

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"dsl-bot/internal/store"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <phone>",
		Short: "Print a stored user's snapshot row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, _ := cmd.Flags().GetString("db-conn")

			pg, err := store.NewStore(dbConn)
			if err != nil {
				return fmt.Errorf("connecting to store: %w", err)
			}
			defer pg.Close()

			db := sqlx.NewDb(pg.DB(), "postgres")
			snap, err := store.FetchUserSnapshot(context.Background(), db, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("phone:     %s\n", snap.Phone)
			fmt.Printf("name:      %s\n", snap.Name)
			fmt.Printf("balance:   %.2f\n", snap.Balance)
			fmt.Printf("data_left: %.2f\n", snap.DataLeft)
			fmt.Printf("package:   %s\n", snap.Package)
			return nil
		},
	}
}
