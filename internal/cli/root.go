// Package cli wires configuration, logging and metrics into the netcanvas
// commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"netcanvas/internal/config"
	"netcanvas/internal/editor"
	"netcanvas/internal/metrics"
	"netcanvas/internal/service"
)

// Version is set at build time
var Version = "dev"

type rootOptions struct {
	configPath string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "netcanvas",
		Short: "netcanvas - network topology editor",
		Long: Brand.Sprint("netcanvas") + " - draw devices, link them and edit their properties\n" +
			Subtle.Sprint("Serve the editor over HTTP, use it in the terminal, or replay event scripts"),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("netcanvas {{ .Version }}\n")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: search $NETCANVAS_CONFIG, ./netcanvas.yaml, ~/.config/netcanvas)")

	cmd.AddCommand(
		serveCmd(opts),
		tuiCmd(opts),
		runCmd(opts),
		configCmd(opts),
		versionCmd(),
	)
	return cmd
}

// Execute runs the root command
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		Bad.Fprintf(cmd.ErrOrStderr(), "netcanvas: %v\n", err)
		return err
	}
	return nil
}

func (o *rootOptions) load() (*config.Config, string, error) {
	if o.configPath != "" {
		return config.LoadFromPath(o.configPath)
	}
	return config.Load()
}

// app is one editing session built from configuration
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Registry
	session *service.Session
}

func newApp(cfg *config.Config, logw io.Writer) (*app, error) {
	logger := cfg.Logger(logw)

	ids, err := cfg.IDGenerator()
	if err != nil {
		return nil, err
	}
	topo, err := cfg.SeedTopology(ids)
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	ed := editor.New(
		editor.WithIDGenerator(ids),
		editor.WithTopology(topo),
		editor.WithLogger(logger),
		editor.WithRecorder(reg),
	)
	canvas := service.Canvas{
		Width:         cfg.Canvas.Width,
		Height:        cfg.Canvas.Height,
		DragThreshold: cfg.Canvas.DragThreshold,
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: reg,
		session: service.NewSession(ed, service.NewEventBus(), canvas, logger),
	}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "netcanvas %s\n", Version)
		},
	}
}
