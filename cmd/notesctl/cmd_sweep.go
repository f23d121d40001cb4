package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-notes/internal/bootstrap"
	"github.com/johnquangdev/meeting-notes/internal/usecase/reconcile"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

func newSweepCommand(c *cli) *cobra.Command {
	var (
		dryRun bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Email unsent meeting summaries",
		Long: `Run one reconciliation sweep.

The sweep reads one page of records whose Sent flag is not set, emails every
record that has a meeting name and a summary, and marks it sent after the
email is accepted. With --dry-run it only lists what would be sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				run := app.Sweeper.Sweep
				if dryRun {
					run = app.Sweeper.DryRun
				}
				result, err := run(jobcontext.JobBegin(ctx, jobcontext.JobTypeSweepCLI))
				if err != nil {
					return err
				}

				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					if err := enc.Encode(result); err != nil {
						return err
					}
				} else {
					printSweep(cmd, result)
				}

				if result.Failed > 0 {
					return &SweepFailureError{Failed: result.Failed}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List unsent records and their readiness without sending")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the sweep result as JSON")

	return cmd
}

const meetingColumnWidth = 40

func printSweep(cmd *cobra.Command, result *reconcile.SweepResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Message())
	if len(result.Records) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("STATUS", "ID", "MEETING", "REASON")
	for _, rec := range result.Records {
		t.Row(rec.Status, rec.ID, runewidth.Truncate(rec.MeetingName, meetingColumnWidth, "…"), rec.Reason)
	}
	fmt.Fprintln(out, t.Render())

	if result.HasMore {
		fmt.Fprintln(out, "More unsent records remain; run the sweep again.")
	}
}
