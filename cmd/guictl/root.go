package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ffmpeg-gui/internal/filesystem"
	"ffmpeg-gui/internal/journal"
	"ffmpeg-gui/internal/logging"
	"ffmpeg-gui/internal/startup"
	"ffmpeg-gui/internal/status"
)

// cli carries state shared by every subcommand.
type cli struct {
	config *startup.Config
	output string

	// isTerminal reports whether stdin is interactive. Replaced in tests.
	isTerminal func() bool
}

func newRootCmd() *cobra.Command {
	return (&cli{isTerminal: stdinIsTerminal}).rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "guictl <command>",
		Short:        "Inspect and manage the ffmpeg-gui configuration store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Diagnostics go to stderr so stdout stays machine-readable.
			logging.SetOutput(cmd.ErrOrStderr())

			switch c.output {
			case outputText, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output format %q (must be text, json or yaml)", c.output)
			}

			config, err := startup.FromEnv()
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			logging.SetLevel(config.LogLevel)
			c.config = config
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.output, "output", "o", outputText, "output format (text, json or yaml)")

	root.AddGroup(
		&cobra.Group{ID: "config", Title: "Configuration:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	// Configuration
	root.AddCommand(c.statusCmd())
	root.AddCommand(c.validateCmd())
	root.AddCommand(c.resetCmd())

	// System
	root.AddCommand(c.serveCmd())
	root.AddCommand(c.versionCmd())

	return root
}

// openJournal opens the boot journal when it is enabled and already
// exists. guictl never creates the journal; that is the launcher's job.
func (c *cli) openJournal(ctx context.Context) *journal.Journal {
	if !c.config.JournalEnabled {
		return nil
	}
	exists, _, err := filesystem.Exists(c.config.JournalPath, filesystem.DefaultRetryConfig())
	if err != nil {
		logging.Warn("Boot journal unavailable: %v", err)
		return nil
	}
	if !exists {
		logging.Debug("No boot journal at %s", c.config.JournalPath)
		return nil
	}

	j, err := journal.Open(ctx, c.config.JournalPath)
	if err != nil {
		logging.Warn("Boot journal unavailable: %v", err)
		return nil
	}
	return j
}

// bootLister avoids handing a typed nil to an interface.
func bootLister(j *journal.Journal) status.BootLister {
	if j == nil {
		return nil
	}
	return j
}

func closeJournal(j *journal.Journal) {
	if j == nil {
		return
	}
	if err := j.Close(); err != nil {
		logging.Warn("Failed to close boot journal: %v", err)
	}
}
