package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ffmpeg-gui/internal/startup"
)

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print build information",
		GroupID: "system",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := startup.GetBuildInfo()
			return c.render(cmd.OutOrStdout(), info, func(w io.Writer) {
				fmt.Fprintf(w, "guictl %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildTime)
				fmt.Fprintf(w, "%s %s/%s\n", info.GoVersion, info.OS, info.Arch)
			})
		},
	}
}
