package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"netcanvas/internal/handler"
	"netcanvas/internal/hub"
	"netcanvas/internal/service"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor over HTTP",
		Long: `Serve one editing session over a JSON API, with a Server-Sent Events
stream of changes and Prometheus metrics.

  netcanvas serve                   # listen on the configured address
  netcanvas serve --addr :9090      # override the address`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			a, err := newApp(cfg, os.Stderr)
			if err != nil {
				return err
			}

			banner(cmd.OutOrStdout(), "serve")
			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  Config:  %s\n", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Listen:  %s\n\n", Brand.Sprint(cfg.Server.Addr))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	return cmd
}

// serve runs the HTTP host until ctx is cancelled
func (a *app) serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Server.Addr, err)
	}
	return a.serveOn(ctx, ln)
}

func (a *app) serveOn(ctx context.Context, ln net.Listener) error {
	sseHub := hub.New(
		hub.WithLogger(a.logger),
		hub.WithKeepAlive(a.cfg.Server.KeepAlive.Duration()),
		hub.WithClientGauge(a.metrics.SetSSEClients),
	)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go sseHub.Run(hubCtx)

	// Connect event bus to SSE hub
	bus := a.session.Events()
	eventChan := make(chan service.Event, 100)
	bus.Subscribe(eventChan)
	defer bus.Unsubscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-hubCtx.Done():
				return
			}
		}
	}()

	router := handler.NewRouter(handler.RouterConfig{
		Editor:         handler.NewEditorHandler(a.session, a.logger),
		Events:         sseHub,
		MetricsHandler: a.metrics.Handler(),
		Recorder:       a.metrics,
		Logger:         a.logger,
	})

	// No write timeout: event streams stay open
	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", ln.Addr().String())
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")

	// Close event streams first so Shutdown does not wait on them
	hubCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}
