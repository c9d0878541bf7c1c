// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires the full HTTP surface: middleware stack, domain routes
// under /api/v1, and the operational endpoints.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(h *Handler, mwCfg MiddlewareConfig, logger zerolog.Logger) http.Handler {
	mw := NewMiddleware(mwCfg, logger)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(mw.AccessLog)
	r.Use(mw.Metrics)

	r.Get("/healthz", h.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Post("/profile", h.handleProfile)
		r.Post("/prompts/daily", h.handleDailyPrompt)
		r.Post("/prompts/check", h.handlePromptCheck)
		r.Post("/dates/check", h.handleDateCheck)
		r.Post("/dates/surprise", h.handleSurpriseDate)
		r.Put("/ratings/{userID}/{itemID}", h.handleSetRating)
		r.Get("/catalog/stats", h.handleCatalogStats)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req, logger).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req, logger).Error(http.StatusMethodNotAllowed, ErrCodeBadRequest, "method not allowed")
	})

	return r
}
