package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"netcanvas/internal/config"
	"netcanvas/internal/script"
	"netcanvas/internal/watcher"
)

func runCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Replay an event script",
		Long: `Replay a YAML event script against a fresh session and print what each
step did. The resulting topology can be exported.

  netcanvas run demo.yaml
  netcanvas run demo.yaml --export yaml --out topology.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !watch {
				return replay(w, cmd.ErrOrStderr(), cfg, args[0], format, out)
			}

			// Each save replays against a fresh session
			rerun := func() {
				if err := replay(w, cmd.ErrOrStderr(), cfg, args[0], format, out); err != nil {
					Bad.Fprintf(w, "  %s %v\n\n", statusIcon(false), err)
				}
			}
			rerun()
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(w, "  %s\n\n", Subtle.Sprintf("watching %s, ctrl+c to stop", args[0]))
			err = watcher.New(args[0], rerun).WithLogger(cfg.Logger(cmd.ErrOrStderr())).Watch(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&format, "export", "", "export the final topology: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "export destination (default: stdout)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "replay again whenever the script is saved")
	return cmd
}

// replay runs one script against a fresh session built from cfg
func replay(w, logw io.Writer, cfg *config.Config, path, format, out string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, logw)
	if err != nil {
		return err
	}

	report, runErr := script.Run(s, a.session)
	printReport(w, report, runErr)
	if runErr != nil {
		return runErr
	}

	if format == "" {
		return nil
	}
	return a.export(w, format, out)
}

func printReport(w io.Writer, report *script.Report, runErr error) {
	name := report.Name
	if name == "" {
		name = "script"
	}
	banner(w, "run "+name)

	rows := make([][]string, 0, len(report.Steps))
	for _, r := range report.Steps {
		rows = append(rows, []string{fmt.Sprintf("%d", r.Index), string(r.Op), r.Detail})
	}
	table(w, []string{"#", "OP", "RESULT"}, rows)
	fmt.Fprintln(w)

	if runErr != nil {
		return
	}
	fmt.Fprintf(w, "  %s %d steps, %d devices, %d links, selection %s\n",
		statusIcon(true), len(report.Steps), report.Devices, report.Links, report.Selection.State)
}

func (a *app) export(w io.Writer, format, out string) error {
	if out == "" {
		return a.session.Export(format, w)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := a.session.Export(format, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(w, "  %s wrote %s\n", statusIcon(true), out)
	return nil
}
