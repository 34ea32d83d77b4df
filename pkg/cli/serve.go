package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/cli/config"
	controller "github.com/seclens/auditdash/pkg/controller/http"
	"github.com/seclens/auditdash/pkg/repository"
	"github.com/seclens/auditdash/pkg/service/render"
	"github.com/seclens/auditdash/pkg/usecase"
	"github.com/seclens/auditdash/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		reportsCfg config.Reports
		scoringCfg config.Scoring
	)

	flags := joinFlags(
		serverCfg.Flags(),
		reportsCfg.Flags(),
		scoringCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server with the report dashboard",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting auditdash server",
				slog.Any("server", serverCfg),
				slog.Any("reports", reportsCfg),
				slog.Any("scoring", scoringCfg),
			)

			scoring, err := scoringCfg.Configure()
			if err != nil {
				return err
			}

			src := reportsCfg.Configure()
			ingest := usecase.NewIngest(render.NewMarkdown(), usecase.WithScoringConfig(scoring))

			repo := repository.NewMemory()
			defer repo.Close()

			refresh := usecase.NewRefresh(src, ingest, repo)
			count, err := refresh.Run(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load reports")
			}
			logger.Info("Initial report load complete", slog.Int("count", count))

			queryUC := usecase.NewQuery(repo)

			// Create HTTP server
			server, err := controller.NewServer(ctx, serverCfg.Addr, queryUC, func(ctx context.Context) error {
				n, err := refresh.Run(ctx)
				if err != nil {
					return err
				}
				ctxlog.From(ctx).Info("Reports reloaded", slog.Int("count", n))
				return nil
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					apperr.Handle(ctx, err)
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
