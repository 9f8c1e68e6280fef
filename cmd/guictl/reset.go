package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ffmpeg-gui/internal/configstore"
	"ffmpeg-gui/internal/logging"
)

var (
	errResetAborted    = errors.New("reset aborted")
	errResetNeedsForce = errors.New("refusing to reset without --force when stdin is not a terminal")
)

// resetResult is the structured output of guictl reset.
type resetResult struct {
	Path       string `json:"path" yaml:"path"`
	Template   string `json:"template" yaml:"template"`
	BackupPath string `json:"backupPath,omitempty" yaml:"backupPath,omitempty"`
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (c *cli) resetCmd() *cobra.Command {
	var (
		force    bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the configuration from the template",
		Long: `Replace the configuration store with the template shipped in the image.
The current file is backed up to config.json.bak-YYYYMMDD-HHMMSS first unless
--no-backup is given. Stop the GUI before resetting: it rewrites the file on
every settings change.`,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if !c.isTerminal() {
					return errResetNeedsForce
				}
				ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
					fmt.Sprintf("Replace %s with %s?", c.config.ConfigPath, c.config.TemplatePath))
				if err != nil {
					return err
				}
				if !ok {
					return errResetAborted
				}
			}

			store := configstore.New(c.config.ConfigPath)
			backupPath, err := store.Reset(c.config.TemplatePath, !noBackup)
			if err != nil {
				return fmt.Errorf("resetting config store: %w", err)
			}
			logging.Info("Config store reset from %s", c.config.TemplatePath)

			result := resetResult{Path: c.config.ConfigPath, Template: c.config.TemplatePath, BackupPath: backupPath}
			return c.render(cmd.OutOrStdout(), result, func(w io.Writer) {
				if backupPath != "" {
					fmt.Fprintf(w, "Backed up to %s\n", backupPath)
				}
				fmt.Fprintf(w, "Restored %s from template.\n", c.config.ConfigPath)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "do not back up the current configuration")
	return cmd
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
