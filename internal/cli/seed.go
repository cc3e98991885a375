package cli

import (
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default menu and tables",
	Long:  "Inserts the default products and dining tables into empty tables, migrating first when enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := setup(ctx)
		if err != nil {
			return err
		}
		defer rt.shutdown()

		store, err := rt.openStore(ctx, rt.cfg.Database.Migrate)
		if err != nil {
			rt.log.Error("failed to open store", "error", err)
			return err
		}
		defer store.Close()

		result, err := repository.Seed(ctx, store, rt.log)
		if err != nil {
			rt.log.Error("seed failed", "error", err)
			return err
		}

		rt.log.Info("seed complete", "products", result.Products, "tables", result.Tables)
		cmd.Printf("Seeded %d product(s) and %d table(s)\n", result.Products, result.Tables)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
