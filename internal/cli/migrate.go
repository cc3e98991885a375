package cli

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Long:  "Brings the database schema up to date. The in-memory store needs no migrations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := setup(ctx)
		if err != nil {
			return err
		}
		defer rt.shutdown()

		store, err := rt.openStore(ctx, true)
		if err != nil {
			rt.log.Error("migration failed", "error", err)
			return err
		}
		defer store.Close()

		rt.log.Info("database is up to date", "driver", store.Driver())
		cmd.Printf("Migrations applied (%s)\n", store.Driver())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
