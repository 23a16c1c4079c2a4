package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"secretsanta/config"
	"secretsanta/internal/adapters/auth"
	"secretsanta/internal/adapters/email"
	deliveryhttp "secretsanta/internal/delivery/http"
	"secretsanta/internal/delivery/http/controllers"
	"secretsanta/internal/delivery/http/middleware"
	"secretsanta/internal/domain"
	"secretsanta/internal/metrics"
	"secretsanta/internal/repository/memory"
	"secretsanta/internal/repository/postgres"
	"secretsanta/internal/services"
)

// mailerConfig maps the environment settings onto the email adapter's config.
func mailerConfig(cfg *config.Config) email.MailerConfig {
	return email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:             cfg.SES.Region,
			AccessKeyID:        cfg.SES.AccessKeyID,
			SecretAccessKey:    cfg.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.SES.InsecureSkipVerify,
		},
		SMTP: email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		},
	}
}

// newDrawService assembles the draw pipeline. dispatchLog and m may be nil.
func newDrawService(cfg *config.Config, mailer domain.Mailer, dispatchLog domain.DispatchLog, m *metrics.Metrics, logger *slog.Logger) domain.DrawService {
	dispatcher := services.NewEmailDispatcher(mailer, email.NewTemplateRenderer())
	return services.NewDrawService(
		services.NewParticipantRegistry(cfg.MaxParticipants),
		services.NewAssignmentEngine(nil),
		services.NewNotificationFormatter(cfg.Currency),
		dispatcher,
		dispatchLog,
		services.DrawOptions{
			FromName: cfg.MailFromName,
			Timeout:  cfg.RequestTimeout,
			Logger:   logger,
			Metrics:  m,
		},
	)
}

// openDispatchLog returns the Postgres dispatch log when DATABASE_URL is set and an
// in-process one otherwise. The returned close func is never nil.
func openDispatchLog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.DispatchLog, func() error, error) {
	if cfg.DBUrl == "" {
		logger.Warn("DATABASE_URL not set, dispatch log kept in memory")
		return memory.NewDispatchLog(), func() error { return nil }, nil
	}
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	return postgres.NewDispatchLogRepository(db), db.Close, nil
}

// newHandler builds the full HTTP handler: routes, then CORS, then request logging.
func newHandler(cfg *config.Config, svc domain.DrawService, reg *prometheus.Registry, logger *slog.Logger) http.Handler {
	var verifier domain.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = auth.NewJWTVerifier(cfg.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET not set, draw routes are unauthenticated")
	}

	var metricsHandler http.Handler
	if reg != nil {
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	router := deliveryhttp.NewRouter(
		controllers.NewDrawController(logger, svc),
		verifier,
		middleware.NewIdempotencyCache(middleware.DefaultIdempotencyTTL),
		metricsHandler,
		logger,
	)

	var h http.Handler = router
	if len(cfg.CORSAllowedOrigins) > 0 {
		h = middleware.CORS(cfg.CORSAllowedOrigins, h)
	}
	return middleware.LoggingMiddleware(logger, h)
}
