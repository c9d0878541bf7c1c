// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

// Package engine implements the preference-driven content ranking and
// selection pipeline: profile building, eligibility filtering, relevance
// scoring, deterministic daily selection, and weighted-random surprise picks.
//
// The pipeline is synchronous pure computation over in-memory catalog data.
// The only write side-effect is the daily selector's history append, which
// callers must serialize per user. Everything else is idempotent and safe
// for concurrent use.
//
// # Data flow
//
//	catalog + signals -> BuildProfile -> Profile
//	Profile -> FilterPrompts/FilterDates -> ScorePrompts/ScoreDates
//	        -> SelectDailyPrompt | SurpriseDate -> item
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Engine ties the selection pipeline to its injected collaborators: the
// history store, the rating provider, and a seeded random source for
// surprise picks. Construct once at startup and share.
type Engine struct {
	cfg     Config
	logger  zerolog.Logger
	history HistoryStore
	ratings RatingProvider

	// rng backs surprise selection only; daily selection derives its own
	// deterministic source from the calendar date.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// New creates an engine. history must be non-nil; ratings may be nil, in
// which case every item scores as unrated.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, history HistoryStore, ratings RatingProvider, logger zerolog.Logger) (*Engine, error) {
	if history == nil {
		return nil, fmt.Errorf("history store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if err := ValidateVocab(); err != nil {
		return nil, fmt.Errorf("vocabulary tables: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		cfg:     cfg,
		logger:  logger.With().Str("component", "engine").Logger(),
		history: history,
		ratings: ratings,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // selection randomness, not crypto
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// BuildProfile builds the profile snapshot for the given signals as of now.
func (e *Engine) BuildProfile(sig Signals) Profile {
	return BuildProfile(sig, time.Now())
}
