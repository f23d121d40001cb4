package main

import (
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
)

func newMigrateCommand(c *cli) *cobra.Command {
	var (
		dir   string
		steps int
	)

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back postgres store migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var direction migrate.MigrationDirection
			switch args[0] {
			case "up":
				direction = migrate.Up
			case "down":
				direction = migrate.Down
				if steps == 0 {
					steps = 1
				}
			default:
				return fmt.Errorf("unknown direction %q, want up or down", args[0])
			}

			cfg, err := c.loadConfigEnv()
			if err != nil {
				return err
			}
			logger, err := c.logger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.NewPostgresDB(cfg, logger)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			n, err := database.Migrate(db, dir, direction, steps, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) %s\n", n, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", database.MigrationsDir, "Migrations directory")
	cmd.Flags().IntVar(&steps, "max", 0, "Maximum migrations to apply (0 = all up, 1 down)")

	return cmd
}
