package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/holdco_books/internal/platform/config"
	"github.com/SscSPs/holdco_books/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or revert database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrationDirection(args[0]), newLogger())
			if err != nil {
				return err
			}
			if applied {
				cmd.Printf("migrations %s applied\n", args[0])
			} else {
				cmd.Println("schema already current")
			}
			return nil
		},
	}
}
