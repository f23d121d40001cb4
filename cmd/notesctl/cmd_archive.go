package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-notes/internal/bootstrap"
)

var errArchiveDisabled = errors.New("the raw-output archive is disabled; set ARCHIVE_ENABLED=true")

func newArchiveCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Browse archived transcripts and model outputs",
	}
	cmd.AddCommand(newArchiveListCommand(c))
	return cmd
}

func newArchiveListCommand(c *cli) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if app.Archive == nil {
					return errArchiveDisabled
				}
				files, err := app.Archive.ListFiles(ctx, prefix)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "meetings/", "Key prefix")

	return cmd
}
