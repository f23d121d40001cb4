package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-notes/internal/bootstrap"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

func newSummarizeCommand(c *cli) *cobra.Command {
	var (
		file string
		name string
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a transcript, store it and email it",
		Long: `Summarize a transcript file (or stdin with --file -), store the record and
email the summary. A failed email leaves the record unsent for the next sweep.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := readTranscript(cmd, file)
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				result, err := app.Service.Summarize(ctx, entities.TranscriptRequest{
					Transcript:  transcript,
					MeetingName: name,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Record: %s\n", result.RecordURL)
				fmt.Fprintf(out, "Email sent: %t (%s)\n", result.EmailSent, result.EmailMessage)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Transcript file, or - for stdin")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Meeting name (defaults to DEFAULT_MEETING_NAME)")

	return cmd
}

func readTranscript(cmd *cobra.Command, file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("reading transcript: %w", err)
	}
	return string(data), nil
}
