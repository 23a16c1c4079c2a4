package http

import (
	"log/slog"
	"net/http"

	"github.com/patrickmn/go-cache"
	httpSwagger "github.com/swaggo/http-swagger"

	"secretsanta/internal/delivery/http/controllers"
	"secretsanta/internal/delivery/http/middleware"
	"secretsanta/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// A nil verifier leaves the draw routes open; a nil metrics handler omits /metrics.
func NewRouter(drawController *controllers.DrawController, verifier domain.TokenVerifier, idem *cache.Cache, metricsHandler http.Handler, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	createDraw := drawController.CreateDraw
	if idem != nil {
		createDraw = middleware.Idempotency(idem, createDraw)
	}

	// API Routes
	mux.HandleFunc("POST /draws", auth(createDraw))
	mux.HandleFunc("GET /draws/{runID}/notifications", auth(drawController.ListNotifications))

	// Probes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
