package tastebud

import (
	"fmt"

	"github.com/edgeflare/tastebud/pkg/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the catalog schema and load the sample data",
	Long: `Applies the embedded migrations to the configured store. The first migration
creates the restaurants and dishes tables, the second loads a sample catalog.

  tastebud migrate              # apply everything
  tastebud migrate --steps 1    # schema only
  tastebud migrate --steps -1   # roll back the last migration`,
	RunE: runMigrate,
}

func init() {
	f := migrateCmd.Flags()
	f.Int("steps", 0, "Number of migrations to apply, negative to roll back (default all)")
	f.String("store.driver", "", "Store driver: sqlite or postgres")
	f.StringP("store.dsn", "d", "", "SQLite file or PostgreSQL URL")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	applyFlags(cmd.Flags(), cfg)
	steps, _ := cmd.Flags().GetInt("steps")

	if err := store.Migrate(cfg.Store, steps); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("migrations applied", zap.String("driver", cfg.Store.Driver), zap.Int("steps", steps))
	return nil
}
