package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/webkit/internal/config"
	"github.com/vango-dev/webkit/pkg/middleware"
	"github.com/vango-dev/webkit/pkg/params"
	"github.com/vango-dev/webkit/pkg/session"
)

// App is the assembled server.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *middleware.Metrics
	sessions *session.Manager
	router   chi.Router
}

// New builds the router from cfg. A nil logger uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	a.metrics = middleware.NewMetrics(middleware.WithRegistry(a.registry))
	a.sessions = session.NewManager(session.Config{
		Debug:       cfg.Debug,
		Disabled:    cfg.NoSession,
		Domain:      cfg.Session.Domain,
		IdleTimeout: cfg.IdleTimeout(),
		Logger:      logger,
		OnStart:     a.onSessionStart,
	})
	a.router = a.routes()
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Close releases the session store.
func (a *App) Close() error {
	return a.sessions.Close()
}

func (a *App) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != a.config.Metrics.Path
		}),
	))
	r.Use(a.metrics.Handler)

	if a.config.Metrics.Enabled {
		r.Handle(a.config.Metrics.Path, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.With(a.require([]string{"data"}, true)).Get("/encode", a.handleEncode)
	r.With(a.require([]string{"data"}, true)).Get("/decode", a.handleDecode)
	r.With(a.require([]string{"tag", "text"}, false)).Get("/tag", a.handleTag)
	r.With(a.require([]string{"text", "value", "selected"}, true)).Get("/option", a.handleOption)

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(a.sessions))
		r.Get("/session", a.handleSession)
		r.Post("/session/destroy", a.handleSessionDestroy)
	})

	return r
}

// require checks the query for required. Strict routes also reject keys
// they do not read.
func (a *App) require(required []string, strict bool) func(http.Handler) http.Handler {
	return params.Require(required,
		params.WithSource(params.SourceQuery),
		params.WithRejectUnknown(strict),
		params.WithLogger(a.logger),
		params.WithObserver(a.metrics.ObserveParamCheck),
	)
}

func (a *App) onSessionStart(r *http.Request, s *session.Session) {
	a.metrics.ObserveSessionStart(r, s)
	trace.SpanFromContext(r.Context()).SetAttributes(
		attribute.String("webkit.session_id", s.ID),
		attribute.Bool("webkit.session_new", s.IsNew()),
	)
}
