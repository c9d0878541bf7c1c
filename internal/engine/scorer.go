// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import (
	"math/rand"
	"sort"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

// Scoring weights for prompts.
const (
	promptClimateBonus   = 2.0
	promptSeasonToneStep = 0.5
	promptEnergyToneStep = 0.3
	promptLongPenalty    = 0.5
	promptRatingBonus    = 2.0
	promptJitterMax      = 0.2

	// promptShortLen is the text length above which a prompt counts as
	// long for couples preferring short content.
	promptShortLen = 120
)

// Scoring weights for date ideas.
const (
	dateProximityMax   = 3.0
	dateStyleExact     = 2.0
	dateStyleMixed     = 1.0
	dateSeasonLoad     = 1.0
	dateSeasonStyle    = 0.5
	dateClimateLoad    = 1.0
	dateHomeBonus      = 1.0
	dateLongPenalty    = 0.5
	dateLongMinutes    = 60
	dateHeatCeiling    = 3
	dateDefaultLoad    = 2
)

// Fit labels derived from a date's base score, excluding the stable
// tie-breaker term.
const (
	LabelGreatFit = "great fit"
	LabelGoodFit  = "good match"
	LabelGentler  = "try something gentler"

	labelGreatThreshold = 7.0
	labelGoodThreshold  = 5.0
)

// ScoredPrompt pairs a prompt with its relevance score. Ephemeral: produced
// by scoring, consumed immediately by a selector, never persisted.
type ScoredPrompt struct {
	Prompt catalog.Prompt `json:"prompt"`
	Score  float64        `json:"score"`
}

// ScoredDate pairs a date idea with its relevance score and fit label.
type ScoredDate struct {
	Date  catalog.DateIdea `json:"date"`
	Score float64          `json:"score"`
	Label string           `json:"label"`
}

// RatingProvider supplies previously stored reactions for a scoring pass.
// Implementations fetch once per pass; the scorer never performs I/O itself.
type RatingProvider interface {
	// PromptRatings returns the stored rating for each of the given prompt
	// IDs. Missing entries mean unrated.
	PromptRatings(userID string, ids []string) map[string]catalog.Rating
}

// ScorePrompts computes soft-relevance scores for already-eligible prompts
// and returns them sorted by score, highest first. ratings may be nil.
//
// The jitter term drawn from rng is the only nondeterministic input; it is
// bounded by promptJitterMax so it can only reorder items whose base scores
// tie within that bound. Passing a seeded rng makes the whole pass
// deterministic, which the daily selector relies on.
func ScorePrompts(items []catalog.Prompt, p Profile, ratings map[string]catalog.Rating, rng *rand.Rand) []ScoredPrompt {
	out := make([]ScoredPrompt, 0, len(items))
	for _, item := range items {
		score := promptBaseScore(item, p, ratings)
		if rng != nil {
			score += rng.Float64() * promptJitterMax
		}
		out = append(out, ScoredPrompt{Prompt: item, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// promptBaseScore is the deterministic part of a prompt's relevance.
func promptBaseScore(item catalog.Prompt, p Profile, ratings map[string]catalog.Rating) float64 {
	var score float64

	for _, cat := range p.ClimateP.PreferredCategories {
		if item.Category == cat {
			score += promptClimateBonus
			break
		}
	}

	tones := categoryTones[item.Category]
	score += promptSeasonToneStep * float64(overlapCount(tones, p.SeasonP.PromptTones))
	score += promptEnergyToneStep * float64(overlapCount(tones, p.EnergyP.Tones))

	if p.PreferShort && len(item.Text) > promptShortLen {
		score -= promptLongPenalty
	}

	switch ratings[item.ID] {
	case catalog.RatingLove:
		score += promptRatingBonus
	case catalog.RatingHate:
		score -= promptRatingBonus
	}

	return score
}

// ScoreDates computes soft-relevance scores for already-eligible date ideas
// and returns them sorted by score, highest first. The target heat, load,
// and style resolve from the explicit dims when supplied, else from the
// profile. Deterministic: ties break on a stable per-item hash, not
// randomness, so repeated scoring of the same catalog keeps its order.
func ScoreDates(items []catalog.DateIdea, p Profile, dims *DateDims) []ScoredDate {
	userHeat, userLoad, userStyle := resolveDateTargets(p, dims)

	out := make([]ScoredDate, 0, len(items))
	for _, item := range items {
		base := dateBaseScore(item, p, userHeat, userLoad, userStyle)

		label := LabelGentler
		switch {
		case base >= labelGreatThreshold:
			label = LabelGreatFit
		case base >= labelGoodThreshold:
			label = LabelGoodFit
		}

		out = append(out, ScoredDate{
			Date:  item,
			Score: base + tieBreak(item.ID),
			Label: label,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// resolveDateTargets picks the heat/load/style targets for date scoring:
// explicit selection first, profile-derived otherwise.
func resolveDateTargets(p Profile, dims *DateDims) (heat, load int, style catalog.Style) {
	heat = p.MaxHeat
	if heat > dateHeatCeiling {
		heat = dateHeatCeiling
	}

	load = p.SeasonP.PreferLoad
	if p.Climate != ClimateNone && p.ClimateP.PreferLoad > 0 {
		load = p.ClimateP.PreferLoad
	}
	if load == 0 {
		load = dateDefaultLoad
	}

	style = p.SeasonP.PreferStyle
	if style == "" {
		style = catalog.StyleMixed
	}

	if dims != nil {
		if dims.Heat > 0 {
			heat = dims.Heat
		}
		if dims.Load > 0 {
			load = dims.Load
		}
		if dims.Style != "" {
			style = dims.Style
		}
	}
	return heat, load, style
}

// dateBaseScore is a date idea's relevance excluding the tie-breaker term.
func dateBaseScore(item catalog.DateIdea, p Profile, userHeat, userLoad int, userStyle catalog.Style) float64 {
	score := dateProximityMax - absFloat(float64(item.Heat-userHeat))
	score += dateProximityMax - absFloat(float64(item.Load-userLoad))

	switch {
	case item.Style == userStyle:
		score += dateStyleExact
	case item.Style == catalog.StyleMixed || userStyle == catalog.StyleMixed:
		score += dateStyleMixed
	}

	if item.Load == p.SeasonP.PreferLoad {
		score += dateSeasonLoad
	}
	if item.Style == p.SeasonP.PreferStyle {
		score += dateSeasonStyle
	}
	if p.Climate != ClimateNone && item.Load == p.ClimateP.PreferLoad {
		score += dateClimateLoad
	}

	if p.PreferShort {
		if item.Location == catalog.LocationHome {
			score += dateHomeBonus
		}
		if item.Minutes > dateLongMinutes {
			score -= dateLongPenalty
		}
	}

	return score
}

// overlapCount returns how many elements of a also appear in b.
func overlapCount(a, b []ToneTag) int {
	n := 0
	for _, x := range a {
		for _, y := range b {
			if x == y {
				n++
				break
			}
		}
	}
	return n
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
