// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import (
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

// TimeOfDay buckets the clock for surprise scoring.
type TimeOfDay string

// Time-of-day buckets.
const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimeOfDayFor buckets an hour of the day.
func TimeOfDayFor(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// Surprise scoring weights.
const (
	surpriseJitterMax   = 0.3
	surpriseRecentHit   = 2.0
	surpriseLoadMatch   = 0.5
	surpriseStyleMatch  = 0.5
	surpriseTimeLoad    = 0.4
	surpriseTimePlace   = 0.2
	surpriseLowLoad     = 1
	surpriseHighLoad    = 3
	surpriseMinWeight   = 0.1
	defaultSurpriseTopN = 5
)

// SurpriseContext carries the ad hoc request context for a surprise pick:
// what was shown recently, the user's preferred dimensions, and the time of
// day. TimeOfDay is derived from the wall clock when empty.
type SurpriseContext struct {
	RecentIDs      []string      `json:"recent_ids,omitempty"`
	PreferredLoad  int           `json:"preferred_load,omitempty"`
	PreferredStyle catalog.Style `json:"preferred_style,omitempty"`
	Dims           *DateDims     `json:"dims,omitempty"`
	TimeOfDay      TimeOfDay     `json:"time_of_day,omitempty"`
}

// SurpriseDate picks one date idea at random, weighted toward contextual
// fit. Unlike the daily selector this is genuinely randomized: surprise is
// the feature, so repeated calls may differ.
//
// When the requested dimensions eliminate everything, the pick falls back
// to the profile-eligible set with the dims relaxed; boundaries and heat
// caps are never relaxed. A nil return means no eligible content exists, a
// legitimate empty-result state rather than an error. Surprise picks never
// consume month history.
func (e *Engine) SurpriseDate(items []catalog.DateIdea, p Profile, sctx SurpriseContext, topN int) *catalog.DateIdea {
	if topN <= 0 {
		topN = e.cfg.SurpriseTopN
	}
	if topN <= 0 {
		topN = defaultSurpriseTopN
	}

	candidates := FilterDates(items, p, sctx.Dims)
	if len(candidates) == 0 && sctx.Dims != nil {
		// Nothing matches the requested shape: surprise prefers showing
		// something over showing nothing, but a relaxed pick still honors
		// the user's boundaries.
		candidates = FilterDates(items, p, nil)
	}
	if len(candidates) == 0 {
		return nil
	}

	tod := sctx.TimeOfDay
	if tod == "" {
		tod = TimeOfDayFor(time.Now().Hour())
	}

	recent := make(map[string]bool, len(sctx.RecentIDs))
	for _, id := range sctx.RecentIDs {
		recent[id] = true
	}

	type scored struct {
		item  catalog.DateIdea
		score float64
	}

	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	pool := make([]scored, 0, len(candidates))
	for _, item := range candidates {
		score := e.rng.Float64() * surpriseJitterMax
		if recent[item.ID] {
			score -= surpriseRecentHit
		}
		if sctx.PreferredLoad > 0 && item.Load == sctx.PreferredLoad {
			score += surpriseLoadMatch
		}
		if sctx.PreferredStyle != "" && item.Style == sctx.PreferredStyle {
			score += surpriseStyleMatch
		}

		switch tod {
		case Evening, Night:
			if item.Load == surpriseLowLoad {
				score += surpriseTimeLoad
			}
			if item.Location == catalog.LocationHome {
				score += surpriseTimePlace
			}
		case Morning, Afternoon:
			if item.Load == surpriseHighLoad {
				score += surpriseTimeLoad
			}
			if item.Location == catalog.LocationOut {
				score += surpriseTimePlace
			}
		}

		pool = append(pool, scored{item: item, score: score})
	}

	// Sort descending, keep the top N.
	for i := 1; i < len(pool); i++ {
		for j := i; j > 0 && pool[j].score > pool[j-1].score; j-- {
			pool[j], pool[j-1] = pool[j-1], pool[j]
		}
	}
	if topN < len(pool) {
		pool = pool[:topN]
	}

	// Weighted draw. Shifting by (min - surpriseMinWeight) guarantees every
	// candidate keeps a non-zero weight even with negative scores.
	minScore := pool[len(pool)-1].score
	var total float64
	for _, c := range pool {
		total += c.score - minScore + surpriseMinWeight
	}

	target := e.rng.Float64() * total
	var acc float64
	for _, c := range pool {
		acc += c.score - minScore + surpriseMinWeight
		if target < acc {
			item := c.item
			return &item
		}
	}

	// Floating-point accumulation can leave target == total; take the last.
	item := pool[len(pool)-1].item
	return &item
}
