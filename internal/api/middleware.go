// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/logging"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/metrics"
)

// MiddlewareConfig holds the tunables for the shared middleware stack.
type MiddlewareConfig struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Middleware builds the chi middleware stack from config.
type Middleware struct {
	cfg    MiddlewareConfig
	logger zerolog.Logger
}

// NewMiddleware creates the middleware factory.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMiddleware(cfg MiddlewareConfig, logger zerolog.Logger) *Middleware {
	return &Middleware{cfg: cfg, logger: logger.With().Str("component", "api").Logger()}
}

// CORS returns the CORS handler for the configured origins.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   m.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit returns a per-IP rate limiter for the configured budget.
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	reqs := m.cfg.RateLimitRequests
	window := m.cfg.RateLimitWindow
	if reqs <= 0 {
		reqs = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(reqs, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			rw := NewResponseWriter(w, r, m.logger)
			rw.Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
		}),
	)
}

// RequestID attaches a request ID to the context and response headers,
// honoring an inbound X-Request-ID when present.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logging.GenerateRequestID()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := logging.ContextWithRequestID(r.Context(), id)
		ctx = logging.ContextWithLogger(ctx, m.logger.With().Str("request_id", id).Logger())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Metrics records Prometheus request metrics keyed by chi route pattern so
// label cardinality stays bounded.
func (m *Middleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		metrics.RecordAPIRequest(r.Method, pattern, strconv.Itoa(ww.Status()), time.Since(start))
	})
}

// AccessLog logs one line per completed request.
func (m *Middleware) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logging.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}
