package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-storefront/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local session over HTTP",
		Long: `Serve the session endpoints and the admin area for the locally
restored session until interrupted.

The process holds a single session. Every client that reaches the listen
address acts as the signed in user, admin area included, so the server
binds to 127.0.0.1 by default. Only change --addr to a non loopback
address on a host you trust.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := newDeps(ctx, cmd)
			if err != nil {
				return err
			}
			defer d.close()

			app := server.New(newController(d))

			// restore runs in the background, the admin area answers
			// loading until it settles
			go d.restorer.Restore(ctx)

			errCh := make(chan error, 1)
			go func() {
				d.logger.Info("listening", "addr", d.cfg.Server.Addr)
				if !isLoopback(d.cfg.Server.Addr) {
					d.logger.Warn("listen address is reachable from other hosts, they share this session",
						"addr", d.cfg.Server.Addr)
				}
				errCh <- app.Listen(d.cfg.Server.Addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			d.logger.Info("shutting down")
			if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func newController(d *deps) *server.Controller {
	return server.NewController(
		server.WithAuther(d.auther),
		server.WithGuard(d.guard),
		server.WithUIStore(d.ui),
		server.WithLogger(d.logger.Named("http")),
		server.WithDebug(d.cfg.API.Debug),
		server.WithCSRF(d.cfg.Server.CSRF),
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isLoopback reports whether addr only accepts local connections
func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
