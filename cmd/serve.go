package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/s0up4200/posterrow/config"
	"github.com/s0up4200/posterrow/page"
	"github.com/s0up4200/posterrow/row"
	"github.com/s0up4200/posterrow/trailer"
	"github.com/s0up4200/posterrow/web"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the poster rows over HTTP",
	Long: `Start a web server that renders every configured row. Rows are fetched
once at startup and again whenever their source changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides server.addr)")
}

// buildPage creates one row per configured row entry
func buildPage(rows []config.RowConfig, catalog row.Catalog, trailers trailer.Resolver, posterBase string) (*page.Page, error) {
	built := make([]*row.Row, 0, len(rows))
	for _, rc := range rows {
		r, err := row.New(row.Config{
			Title:       rc.Title,
			FetchSource: rc.FetchURL,
			Large:       rc.Large,
			Filter:      rc.Filter,
		}, catalog, trailers, logger, row.WithPosterBaseURL(posterBase))
		if err != nil {
			return nil, err
		}
		built = append(built, r)
	}
	return page.New(logger, built...), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if listenAddr != "" {
		addr = listenAddr
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := web.NewMetrics(reg)

	p, err := buildPage(cfg.Rows, metrics.Catalog(tmdbClient), metrics.Resolver(resolver), cfg.Poster.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to build rows: %w", err)
	}
	p.SetConcurrency(cfg.Server.Concurrency)

	ctx := cmd.Context()
	if failed := p.RefreshAll(ctx); failed > 0 {
		logger.Warn().Int("failed", failed).Msg("Some rows could not be fetched, serving them empty")
	}

	srv := &http.Server{
		Addr: addr,
		Handler: web.NewServer(p, logger,
			web.WithCORSOrigins(cfg.Server.CORSOrigins...),
			web.WithMetrics(metrics, reg),
		),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Int("rows", len(p.Entries())).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-done:
		logger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		_ = srv.Close()
	}
	logger.Info().Msg("Server stopped")
	return nil
}
