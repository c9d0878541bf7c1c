// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/engine"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/logging"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/metrics"
)

// RatingStore persists user reactions.
type RatingStore interface {
	SetRating(ctx context.Context, userID, itemID string, rating catalog.Rating) error
}

// Handler serves the content-engine endpoints.
type Handler struct {
	engine   *engine.Engine
	catalog  *catalog.Catalog
	ratings  RatingStore
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewHandler creates the API handler. ratings may be nil when rating writes
// are disabled; PUT /ratings then returns 503.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(eng *engine.Engine, cat *catalog.Catalog, ratings RatingStore, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:   eng,
		catalog:  cat,
		ratings:  ratings,
		validate: validator.New(),
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

func (h *Handler) rw(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return NewResponseWriter(w, r, h.logger)
}

// ProfileResponse wraps a built profile.
type ProfileResponse struct {
	Profile engine.Profile `json:"profile"`
}

// handleProfile builds and returns the preference profile for the supplied
// signals without touching any state.
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	rw := h.rw(w, r)
	var req ProfileRequest
	if !decodeAndValidate(rw, r, h.validate, &req) {
		return
	}
	rw.Success(ProfileResponse{Profile: h.engine.BuildProfile(req.Signals.Signals())})
}

// DailyPromptResponse is the daily pick. Prompt is null when nothing in the
// catalog is eligible, which callers render as a rest day.
type DailyPromptResponse struct {
	Day    string          `json:"day"`
	Prompt *catalog.Prompt `json:"prompt"`
}

func (h *Handler) handleDailyPrompt(w http.ResponseWriter, r *http.Request) {
	rw := h.rw(w, r)
	var req DailyPromptRequest
	if !decodeAndValidate(rw, r, h.validate, &req) {
		return
	}

	day := time.Now()
	if req.Day != "" {
		parsed, err := time.Parse("2006-01-02", req.Day)
		if err != nil {
			rw.BadRequest("day must be formatted as 2006-01-02")
			return
		}
		day = parsed
	}

	p := h.engine.BuildProfile(req.Signals.Signals())
	start := time.Now()
	pick, err := h.engine.SelectDailyPrompt(r.Context(), req.UserID, h.catalog.Prompts(), p, day)
	if err != nil {
		metrics.RecordSelection("prompt", "error", 0, time.Since(start))
		rw.InternalError(err)
		return
	}

	outcome := "picked"
	if pick == nil {
		outcome = "empty"
	}
	metrics.RecordSelection("prompt", outcome, 0, time.Since(start))

	rw.Success(DailyPromptResponse{Day: day.Format("2006-01-02"), Prompt: pick})
}

// PromptCheckResponse reports whether a prompt is currently visible.
type PromptCheckResponse struct {
	PromptID string `json:"prompt_id"`
	Visible  bool   `json:"visible"`
}

// handlePromptCheck re-evaluates a single already-fetched prompt against
// fresh signals, so clients can hide it the moment boundaries change.
func (h *Handler) handlePromptCheck(w http.ResponseWriter, r *http.Request) {
	rw := h.rw(w, r)
	var req PromptCheckRequest
	if !decodeAndValidate(rw, r, h.validate, &req) {
		return
	}

	item, ok := h.catalog.Prompt(req.PromptID)
	if !ok {
		rw.NotFound("unknown prompt id")
		return
	}

	p := h.engine.BuildProfile(req.Signals.Signals())
	rw.Success(PromptCheckResponse{
		PromptID: req.PromptID,
		Visible:  engine.ShouldShowPrompt(item, p),
	})
}

// DateCheckResponse is the ranked list of eligible date ideas.
type DateCheckResponse struct {
	Results []engine.ScoredDate `json:"results"`
	Count   int                 `json:"count"`
}

func (h *Handler) handleDateCheck(w http.ResponseWriter, r *http.Request) {
	rw := h.rw(w, r)
	var req DateCheckRequest
	if !decodeAndValidate(rw, r, h.validate, &req) {
		return
	}

	p := h.engine.BuildProfile(req.Signals.Signals())
	dims := req.Dims.Dims()
	eligible := engine.FilterDates(h.catalog.DateIdeas(), p, dims)
	scored := engine.ScoreDates(eligible, p, dims)

	rw.Success(DateCheckResponse{Results: scored, Count: len(scored)})
}

// SurpriseDateResponse is the surprise pick. Date is null when nothing in
// the catalog passes the user's boundaries.
type SurpriseDateResponse struct {
	Date *catalog.DateIdea `json:"date"`
}

func (h *Handler) handleSurpriseDate(w http.ResponseWriter, r *http.Request) {
	rw := h.rw(w, r)
	var req SurpriseDateRequest
	if !decodeAndValidate(rw, r, h.validate, &req) {
		return
	}

	p := h.engine.BuildProfile(req.Signals.Signals())
	start := time.Now()
	pick := h.engine.SurpriseDate(h.catalog.DateIdeas(), p, req.Context(), req.TopN)

	outcome := "picked"
	if pick == nil {
		outcome = "empty"
	}
	metrics.RecordSelection("date", outcome, 0, time.Since(start))

	rw.Success(SurpriseDateResponse{Date: pick})
}

// RatingResponse echoes the stored reaction.
type RatingResponse struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
	Rating string `json:"rating"`
}

func (h *Handler) handleSetRating(w http.ResponseWriter, r *http.Request) {
	rw := h.rw(w, r)
	if h.ratings == nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "rating storage is disabled")
		return
	}

	userID := chi.URLParam(r, "userID")
	itemID := chi.URLParam(r, "itemID")
	if userID == "" || itemID == "" {
		rw.BadRequest("userID and itemID are required")
		return
	}

	var req RatingRequest
	if !decodeAndValidate(rw, r, h.validate, &req) {
		return
	}

	if _, okP := h.catalog.Prompt(itemID); !okP {
		if _, okD := h.catalog.DateIdea(itemID); !okD {
			rw.NotFound("unknown item id")
			return
		}
	}

	if err := h.ratings.SetRating(r.Context(), userID, itemID, catalog.Rating(req.Rating)); err != nil {
		rw.InternalError(err)
		return
	}
	metrics.RecordRatingWrite(req.Rating)

	logging.Ctx(r.Context()).Debug().
		Str("user_id", userID).
		Str("item_id", itemID).
		Str("rating", req.Rating).
		Msg("rating stored")
	rw.Success(RatingResponse{UserID: userID, ItemID: itemID, Rating: req.Rating})
}

func (h *Handler) handleCatalogStats(w http.ResponseWriter, r *http.Request) {
	h.rw(w, r).Success(h.catalog.Stats())
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.rw(w, r).Success(HealthResponse{Status: "healthy"})
}
