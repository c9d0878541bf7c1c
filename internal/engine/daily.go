// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

// Content kinds used to key selection history.
const (
	KindPrompt = "prompt"
	KindDate   = "date"
)

// Daily pool shape: the quality pool is the top max(poolMinSize,
// poolRatio*ranked) of the ranked list.
const (
	defaultPoolMinSize = 5
	defaultPoolRatio   = 0.3
)

// History is one month's bucket of already-shown item IDs for a
// (user, kind) pair. Created lazily on first selection of the month;
// a month rollover starts a fresh bucket.
type History struct {
	Month    string   `json:"month"`
	ShownIDs []string `json:"shown_ids"`
}

// Contains reports whether the item was already shown this month.
func (h History) Contains(id string) bool {
	for _, s := range h.ShownIDs {
		if s == id {
			return true
		}
	}
	return false
}

// HistoryStore persists month buckets of shown items. Implementations must
// treat a missing or unparseable bucket as empty (fail-open on history),
// never as an error that blocks selection.
type HistoryStore interface {
	// LoadMonth returns the bucket for (user, kind, month), empty if absent.
	LoadMonth(ctx context.Context, userID, kind, month string) (History, error)

	// AppendShown records an item as shown for (user, kind, month).
	AppendShown(ctx context.Context, userID, kind, month, itemID string) error
}

// MonthKey formats a day as the "YYYY-MM" history bucket key.
func MonthKey(day time.Time) string {
	return day.Format("2006-01")
}

// SelectDailyPrompt deterministically picks one prompt for the given
// calendar day, avoiding items already shown this month where possible.
//
// The same (items, profile, day, history) inputs always yield the same
// prompt: the day seeds both the scoring jitter and the pool index, so
// repeated calls within one day agree across sessions and processes.
//
// Returns nil when nothing is eligible; callers supply their own fallback.
// The chosen item is appended to the month history; concurrent calls for the
// same (user, kind, day) must be serialized by the caller.
func (e *Engine) SelectDailyPrompt(ctx context.Context, userID string, items []catalog.Prompt, p Profile, day time.Time) (*catalog.Prompt, error) {
	eligible := FilterPrompts(items, p)
	if len(eligible) == 0 {
		e.logger.Debug().Str("user", userID).Msg("daily prompt: empty eligible pool")
		return nil, nil
	}

	seed := dateSeed(day.Year(), int(day.Month()), day.Day())

	ratings := e.promptRatings(userID, eligible)

	// Day-seeded jitter keeps tie-breaking random-ish across days while
	// staying reproducible within one.
	rng := rand.New(rand.NewSource(int64(seed))) //nolint:gosec // selection jitter, not crypto
	ranked := ScorePrompts(eligible, p, ratings, rng)

	month := MonthKey(day)
	history, err := e.history.LoadMonth(ctx, userID, KindPrompt, month)
	if err != nil {
		// Fail open: a broken history store degrades to possible repeats,
		// never to a missing daily prompt.
		e.logger.Warn().Err(err).Str("user", userID).Msg("daily prompt: history load failed, treating as empty")
		history = History{Month: month}
	}

	pool := dailyPool(ranked, history, e.cfg.PoolMinSize, e.cfg.PoolRatio)

	chosen := pool[mod(seed, len(pool))]

	if err := e.history.AppendShown(ctx, userID, KindPrompt, month, chosen.ID); err != nil {
		e.logger.Warn().Err(err).Str("user", userID).Str("item", chosen.ID).Msg("daily prompt: history append failed")
	}

	e.logger.Debug().
		Str("user", userID).
		Str("item", chosen.ID).
		Int("eligible", len(eligible)).
		Int("pool", len(pool)).
		Msg("daily prompt selected")

	return &chosen, nil
}

// dailyPool builds the candidate pool for day-indexed selection: the
// top-ranked quality slice, minus this month's already-shown items, with a
// fallback chain that prefers any unseen item over a repeat and permits a
// repeat only when everything has been shown.
func dailyPool(ranked []ScoredPrompt, history History, minSize int, ratio float64) []catalog.Prompt {
	if minSize <= 0 {
		minSize = defaultPoolMinSize
	}
	if ratio <= 0 {
		ratio = defaultPoolRatio
	}

	size := int(ratio * float64(len(ranked)))
	if size < minSize {
		size = minSize
	}
	if size > len(ranked) {
		size = len(ranked)
	}

	quality := make([]catalog.Prompt, 0, size)
	for _, sc := range ranked[:size] {
		quality = append(quality, sc.Prompt)
	}

	fresh := make([]catalog.Prompt, 0, len(quality))
	for _, item := range quality {
		if !history.Contains(item.ID) {
			fresh = append(fresh, item)
		}
	}
	if len(fresh) > 0 {
		return fresh
	}

	// Quality pool exhausted this month: widen to anything unseen.
	unseen := make([]catalog.Prompt, 0, len(ranked))
	for _, sc := range ranked {
		if !history.Contains(sc.Prompt.ID) {
			unseen = append(unseen, sc.Prompt)
		}
	}
	if len(unseen) > 0 {
		return unseen
	}

	// Everything has been shown: allow a repeat from the quality pool.
	return quality
}

// promptRatings fetches stored reactions for a scoring pass. A nil provider
// or lookup failure means unrated, never a blocked selection.
func (e *Engine) promptRatings(userID string, items []catalog.Prompt) map[string]catalog.Rating {
	if e.ratings == nil || userID == "" {
		return nil
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return e.ratings.PromptRatings(userID, ids)
}
