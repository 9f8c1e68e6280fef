package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ffmpeg-gui/internal/appconfig"
	"ffmpeg-gui/internal/configstore"
	"ffmpeg-gui/internal/status"
)

func (c *cli) statusCmd() *cobra.Command {
	var bootLimit int

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the configuration store, its validation state and recent boots",
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			j := c.openJournal(ctx)
			defer closeJournal(j)

			report, err := status.Collect(ctx, status.Source{
				Store:        configstore.New(c.config.ConfigPath),
				TemplatePath: c.config.TemplatePath,
				Boots:        bootLister(j),
				BootLimit:    bootLimit,
			})
			if err != nil {
				return fmt.Errorf("inspecting config store: %w", err)
			}

			return c.render(cmd.OutOrStdout(), report, func(w io.Writer) {
				printReport(w, report)
			})
		},
	}

	cmd.Flags().IntVar(&bootLimit, "boots", 5, "number of recent boots to show")
	return cmd
}

func printReport(w io.Writer, r *status.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Config store:\t%s\n", r.Config.Path)
	switch {
	case !r.Config.Exists:
		fmt.Fprintf(tw, "State:\t%s (seeded on next container start)\n", r.State)
	case r.Customized:
		fmt.Fprintf(tw, "State:\t%s, customized\n", r.State)
	default:
		fmt.Fprintf(tw, "State:\t%s, pristine\n", r.State)
	}
	if r.Config.Exists {
		fmt.Fprintf(tw, "Size:\t%s\n", humanize.IBytes(uint64(r.Config.Size)))
		fmt.Fprintf(tw, "Modified:\t%s (%s)\n", r.Config.ModTime.Format(time.RFC3339), humanize.Time(r.Config.ModTime))
		fmt.Fprintf(tw, "Fingerprint:\t%s\n", r.Config.Fingerprint)
	}
	if r.Template.Exists {
		fmt.Fprintf(tw, "Template:\t%s (%s)\n", r.Template.Path, short(r.Template.Fingerprint))
	} else {
		fmt.Fprintf(tw, "Template:\t%s (missing)\n", r.Template.Path)
	}

	if r.Config.Exists {
		if r.Parsed {
			counts := appconfig.Count(r.Issues)
			fmt.Fprintf(tw, "Validation:\t%d errors, %d warnings\n",
				counts[appconfig.SeverityError], counts[appconfig.SeverityWarning])
		} else {
			fmt.Fprintf(tw, "Validation:\tunparsable: %s\n", r.ParseError)
		}
	}
	tw.Flush()

	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}

	if r.JournalError != "" {
		fmt.Fprintf(w, "\nBoot journal unavailable: %s\n", r.JournalError)
		return
	}
	if len(r.Boots) == 0 {
		return
	}

	fmt.Fprintln(w, "\nRecent boots:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tSTARTED\tSTATE\tSEEDED\tOUTCOME\tDURATION")
	for _, b := range r.Boots {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%v\t%s\t%v\n",
			b.ID, humanize.Time(b.StartedAt), b.State, b.Seeded, b.Outcome,
			b.Duration.Round(time.Millisecond))
	}
	tw.Flush()
}

func short(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
