// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package catalog

import "strings"

// Category is the fixed content-category vocabulary shared by prompts and
// date ideas. Unknown categories are rejected during normalization.
type Category string

// Content categories.
const (
	CategoryRomance   Category = "romance"
	CategoryEmotional Category = "emotional"
	CategoryPlayful   Category = "playful"
	CategoryDeep      Category = "deep"
	CategorySpicy     Category = "spicy"
	CategoryGratitude Category = "gratitude"
	CategoryFuture    Category = "future"
	CategoryAdventure Category = "adventure"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryRomance,
	CategoryEmotional,
	CategoryPlayful,
	CategoryDeep,
	CategorySpicy,
	CategoryGratitude,
	CategoryFuture,
	CategoryAdventure,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Style describes how a date idea is primarily spent.
type Style string

// Date styles.
const (
	StyleTalking Style = "talking"
	StyleDoing   Style = "doing"
	StyleMixed   Style = "mixed"
)

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	return s == StyleTalking || s == StyleDoing || s == StyleMixed
}

// Location describes where a date idea takes place.
type Location string

// Date locations.
const (
	LocationHome   Location = "home"
	LocationOut    Location = "out"
	LocationEither Location = "either"
)

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	return l == LocationHome || l == LocationOut || l == LocationEither
}

// Stage buckets a relationship by how long the couple has been together.
// StageUniversal means duration filtering is bypassed entirely.
type Stage string

// Relationship stages.
const (
	StageUniversal   Stage = "universal"
	StageNew         Stage = "new"
	StageDeveloping  Stage = "developing"
	StageEstablished Stage = "established"
	StageMature      Stage = "mature"
	StageLongTerm    Stage = "long_term"
)

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	switch s {
	case StageUniversal, StageNew, StageDeveloping, StageEstablished, StageMature, StageLongTerm:
		return true
	}
	return false
}

// Rating is a user's reaction to a previously shown item.
type Rating string

// Item ratings.
const (
	RatingLove    Rating = "love"
	RatingNeutral Rating = "neutral"
	RatingHate    Rating = "hate"
)

// Valid reports whether r is a known rating.
func (r Rating) Valid() bool {
	return r == RatingLove || r == RatingNeutral || r == RatingHate
}

// Heat bounds per item kind.
const (
	promptHeatMin = 1
	promptHeatMax = 5
	dateHeatMin   = 1
	dateHeatMax   = 3
	dateLoadMin   = 1
	dateLoadMax   = 3
)

// Prompt is a single conversation prompt shown to a couple.
type Prompt struct {
	// ID is a stable identifier, unique within the prompt catalog.
	ID string `json:"id"`

	// Text is the prompt itself. Never empty after normalization.
	Text string `json:"text"`

	// Category tags the prompt within the fixed vocabulary.
	Category Category `json:"category"`

	// Heat is the intensity level, clamped to 1-5 on ingestion.
	Heat int `json:"heat"`

	// Stages optionally restricts the prompt to relationship stages.
	// Empty means the prompt suits any stage. A list containing
	// StageUniversal also bypasses stage filtering.
	Stages []Stage `json:"stages,omitempty"`
}

// Valid reports whether the prompt carries everything scoring relies on.
// Invalid prompts are excluded fail-closed, never surfaced to callers.
func (p Prompt) Valid() bool {
	return p.ID != "" &&
		strings.TrimSpace(p.Text) != "" &&
		p.Category.Valid() &&
		p.Heat >= promptHeatMin && p.Heat <= promptHeatMax
}

// AllowsStage reports whether the prompt is compatible with the given
// relationship stage. StageUniversal always passes, as does a prompt with no
// declared stage list or one that declares StageUniversal.
func (p Prompt) AllowsStage(stage Stage) bool {
	if stage == StageUniversal || len(p.Stages) == 0 {
		return true
	}
	for _, s := range p.Stages {
		if s == StageUniversal || s == stage {
			return true
		}
	}
	return false
}

// DateIdea is a suggested activity for a couple.
type DateIdea struct {
	// ID is a stable identifier, unique within the date catalog.
	ID string `json:"id"`

	// Title is the short display name. Never empty after normalization.
	Title string `json:"title"`

	// Category tags the idea within the fixed vocabulary.
	Category Category `json:"category"`

	// Heat is the intensity level, clamped to 1-3 on ingestion.
	Heat int `json:"heat"`

	// Load is the effort/energy level, clamped to 1-3 on ingestion.
	Load int `json:"load"`

	// Style is how the date is primarily spent.
	Style Style `json:"style"`

	// Location is where the date takes place.
	Location Location `json:"location"`

	// Minutes is the estimated duration. Never negative after normalization.
	Minutes int `json:"minutes"`
}

// Valid reports whether the date idea carries everything scoring relies on.
func (d DateIdea) Valid() bool {
	return d.ID != "" &&
		strings.TrimSpace(d.Title) != "" &&
		d.Category.Valid() &&
		d.Heat >= dateHeatMin && d.Heat <= dateHeatMax &&
		d.Load >= dateLoadMin && d.Load <= dateLoadMax &&
		d.Style.Valid() &&
		d.Location.Valid() &&
		d.Minutes >= 0
}

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizePrompt clamps numeric dimensions and trims text. It returns false
// if the prompt is unusable (missing ID, empty text, unknown category) and
// must be dropped.
func NormalizePrompt(p *Prompt) bool {
	p.Text = strings.TrimSpace(p.Text)
	if p.ID == "" || p.Text == "" || !p.Category.Valid() {
		return false
	}
	p.Heat = clampInt(p.Heat, promptHeatMin, promptHeatMax)

	// Drop unknown stage tags rather than failing the whole prompt.
	if len(p.Stages) > 0 {
		kept := p.Stages[:0]
		for _, s := range p.Stages {
			if s.Valid() {
				kept = append(kept, s)
			}
		}
		p.Stages = kept
	}
	return true
}

// NormalizeDateIdea clamps numeric dimensions and fills enum defaults. It
// returns false if the idea is unusable and must be dropped.
func NormalizeDateIdea(d *DateIdea) bool {
	d.Title = strings.TrimSpace(d.Title)
	if d.ID == "" || d.Title == "" || !d.Category.Valid() {
		return false
	}
	d.Heat = clampInt(d.Heat, dateHeatMin, dateHeatMax)
	d.Load = clampInt(d.Load, dateLoadMin, dateLoadMax)
	if !d.Style.Valid() {
		d.Style = StyleMixed
	}
	if !d.Location.Valid() {
		d.Location = LocationEither
	}
	if d.Minutes < 0 {
		d.Minutes = 0
	}
	return true
}
