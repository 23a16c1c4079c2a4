package cli

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

	"secretsanta/internal/metrics"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API on $PORT.

Routes:
  POST /draws                           run a draw and email every participant
  GET  /draws/{runID}/notifications     dispatch log of a run
  GET  /healthz                         liveness probe
  GET  /metrics                         Prometheus metrics
  GET  /swagger/                        API documentation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), d)
		},
	}
}

func runServe(ctx context.Context, d deps) error {
	cfg, err := d.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := d.newLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatchLog, closeLog, err := openDispatchLog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			logger.Error("close dispatch log", "err", err)
		}
	}()

	mailer, err := d.newMailer(mailerConfig(cfg))
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := newDrawService(cfg, mailer, dispatchLog, m, logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newHandler(cfg, svc, reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "mail_provider", cfg.MailProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
