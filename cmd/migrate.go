package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castkeep/publisher-api/internal/database"
	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply database schema migrations for the Castkeep Publisher API.

The schema is derived from the registered models and applied with GORM
auto-migration. Running migrate against an up-to-date database is a
no-op.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s\n", cfg.Database.Path)
	return nil
}
