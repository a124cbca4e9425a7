package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventradar/internal/delivery/http/controllers"
	"eventradar/internal/delivery/http/helpers"
	"eventradar/internal/delivery/http/middleware"
	"eventradar/internal/domain"
	"eventradar/internal/metrics"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps holds everything the router needs to build the handler tree.
type RouterDeps struct {
	Logger         *slog.Logger
	Events         *controllers.EventController
	Participants   *controllers.ParticipantController
	Verifier       domain.TokenVerifier
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	DB             Pinger
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	callable := func(h http.HandlerFunc) http.Handler {
		return middleware.RateLimit(deps.RateLimiter)(
			middleware.Authenticate(deps.Verifier, deps.Logger)(h),
		)
	}

	// Callables
	mux.Handle("POST /callable/deleteEvent", callable(deps.Events.DeleteEvent))
	mux.Handle("POST /callable/getEventParticipants", callable(deps.Participants.GetEventParticipants))

	// Operations
	mux.HandleFunc("GET /healthz", healthz(deps.DB))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(deps.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(deps.Logger, handler)
	handler = middleware.RequestID(handler)
	return handler
}

// healthz godoc
// @Summary Health check
// @Tags operations
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Failure 500 {object} helpers.APIResponse "error.code: internal"
// @Router /healthz [get]
func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				helpers.WriteJSONError(w, domain.CodeInternal, "database unreachable")
				return
			}
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
