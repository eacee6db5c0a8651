package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Options collects what the HTTP server mounts.
type Options struct {
	Questions    *question.HTTPHandlers
	Dependencies map[string]Pinger
	Registerer   prometheus.Registerer
	Gatherer     prometheus.Gatherer
}

// NewHTTPServer wires the API routes plus health and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, opts Options) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg, logger, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the full middleware chain around the route mux.
func NewHandler(cfg *config.App, logger zerolog.Logger, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		w.Header().Set("Content-Type", "application/json")
		for name, dep := range opts.Dependencies {
			if err := dep.Ping(ctx); err != nil {
				reqLogger := logging.FromContextOr(r.Context(), logger)
				reqLogger.Error().Err(err).Str("dependency", name).Msg("dependency ping failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if opts.Questions != nil {
		opts.Questions.Register(mux)
	}

	var handler http.Handler = envelopeUnmatched(mux)
	handler = instrument(handler, newHTTPMetrics(opts.Registerer))
	handler = corsMiddleware(cfg.CORS)(handler)
	handler = logging.Middleware(logger)(handler)
	return handler
}

// envelopeUnmatched answers requests no route matches (404, or 405 when only the
// method differs) with the JSON error envelope instead of the mux's plain text.
func envelopeUnmatched(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}
		rec := &discardWriter{header: http.Header{}, status: http.StatusNotFound}
		h.ServeHTTP(rec, r)
		if allow := rec.header.Get("Allow"); allow != "" {
			w.Header().Set("Allow", allow)
		}
		httperrors.RespondError(w, rec.status)
	})
}

// discardWriter keeps the status and headers of a default mux reply and drops its body.
type discardWriter struct {
	header http.Header
	status int
}

func (d *discardWriter) Header() http.Header { return d.header }

func (d *discardWriter) Write(b []byte) (int, error) { return len(b), nil }

func (d *discardWriter) WriteHeader(code int) { d.status = code }
