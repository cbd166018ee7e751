package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"netcanvas/internal/tui"
)

func tuiCmd(opts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a topology in the terminal",
		Long: `Open the editor in the terminal. Drag devices with the mouse, click one
and then another to link them, and edit the selected device in the side panel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}

			// The terminal is taken over, so logs only go to a file when asked
			var logw io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logw = f
			}

			a, err := newApp(cfg, logw)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a.session)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return cmd
}
