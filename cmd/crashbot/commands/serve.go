// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/similigh/crashbot/internal/notifier"
	httptransport "github.com/similigh/crashbot/internal/transport/http"
)

var (
	serveAddr   string
	serveDryRun bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept crash events over HTTP",
	Long: `Start an HTTP server that files a GitHub issue for every crash event
POSTed to /api/events. GET /healthz reports liveness.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config, default :8080)")
	serveCmd.Flags().BoolVar(&serveDryRun, "dry-run", false, "Compose issues without creating them")
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, cfgFile)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	if err := notifier.Credentials(cfg).Validate(); err != nil {
		// Still serve: each event will fail with the same error.
		log.Printf("[serve] Warning: %v", err)
	}

	deps, err := notifier.NewDependencies(cfg, serveDryRun)
	if err != nil {
		return err
	}
	n, err := notifier.New(cfg, deps)
	if err != nil {
		return err
	}

	srv, err := httptransport.NewServer(cfg.Server.Addr, n)
	if err != nil {
		return err
	}

	log.Printf("[serve] crashbot %s listening on %s (steps: %v)", Version, srv.Addr(), n.Steps())
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	log.Printf("[serve] shut down")
	return nil
}
