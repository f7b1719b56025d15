package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Captain-Vikram/To-Do-List/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task list as a JSON HTTP API",
	Long: `Serve the task list over HTTP. Tasks live in memory for the lifetime of
the process; the appearance preference is saved to the configured backend.

Routes are mounted under /api, with /healthz and /metrics alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		srv := server.New(sess.store, server.Options{
			Addr:         appCfg.Server.Addr,
			ReadTimeout:  appCfg.Server.ReadTimeout,
			WriteTimeout: appCfg.Server.WriteTimeout,
			CORSOrigins:  appCfg.Server.CORSOrigins,
			Logger:       slog.Default(),
			Version:      version,
		})

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)
		fmt.Fprintf(cmd.OutOrStdout(), "Serving tasks on http://%s (Ctrl+C to stop)\n", appCfg.Server.Addr)

		var runErr error
		select {
		case <-ctx.Done():
		case runErr = <-errChan:
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("api server shutdown", "error", err)
		}
		wg.Wait()
		return runErr
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}
