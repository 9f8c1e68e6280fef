package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ffmpeg-gui/internal/appconfig"
)

var errValidationFailed = errors.New("configuration has errors")

// validateResult is the structured output of guictl validate.
type validateResult struct {
	File   string            `json:"file" yaml:"file"`
	Valid  bool              `json:"valid" yaml:"valid"`
	Issues []appconfig.Issue `json:"issues" yaml:"issues"`
}

func (c *cli) validateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration against what the GUI expects",
		Long: `Parse the configuration store (or --file) and check it against the way
the GUI reads it: codec parameters, resolutions, output directory and task
limit. Exits non-zero when an error-severity issue is found.`,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = c.config.ConfigPath
			}

			doc, err := appconfig.Load(file)
			if err != nil {
				return err
			}

			issues := appconfig.Validate(doc)
			result := validateResult{File: file, Valid: !appconfig.HasErrors(issues), Issues: issues}
			if result.Issues == nil {
				result.Issues = []appconfig.Issue{}
			}

			err = c.render(cmd.OutOrStdout(), result, func(w io.Writer) {
				for _, issue := range issues {
					fmt.Fprintln(w, issue)
				}
				counts := appconfig.Count(issues)
				fmt.Fprintf(w, "%s: %d errors, %d warnings\n", file,
					counts[appconfig.SeverityError], counts[appconfig.SeverityWarning])
			})
			if err != nil {
				return err
			}

			if !result.Valid {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file to validate (default: the config store)")
	return cmd
}
