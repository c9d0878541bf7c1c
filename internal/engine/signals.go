// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import (
	"fmt"
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

// Season is the couple's self-declared relationship season. It shapes what
// kind of content feels right: a couple in full_plate mode gets short,
// low-effort suggestions; a celebration season leans bold and fun.
type Season string

// Relationship seasons.
const (
	SeasonCozy        Season = "cozy"
	SeasonAdventure   Season = "adventure"
	SeasonReconnect   Season = "reconnect"
	SeasonFullPlate   Season = "full_plate"
	SeasonHealing     Season = "healing"
	SeasonCelebration Season = "celebration"
)

// EnergyLevel is the couple's current energy/load capacity.
type EnergyLevel string

// Energy levels.
const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// Climate is the couple's current emotional weather.
type Climate string

// Emotional climates. ClimateNone means no climate signal is available.
const (
	ClimateNone    Climate = ""
	ClimateCalm    Climate = "calm"
	ClimateTender  Climate = "tender"
	ClimateStormy  Climate = "stormy"
	ClimateDistant Climate = "distant"
	ClimatePlayful Climate = "playful"
)

// Tone is the user's preferred voice for content.
type Tone string

// Content tones.
const (
	ToneWarm     Tone = "warm"
	TonePlayful  Tone = "playful"
	ToneIntimate Tone = "intimate"
	ToneMinimal  Tone = "minimal"
)

// ToneTag is a mood tag attached to categories, seasons, and energy levels.
// Overlap between an item's category tags and the profile's season/energy
// tags contributes to prompt relevance.
type ToneTag string

// Tone tags.
const (
	TagWarm       ToneTag = "warm"
	TagSoft       ToneTag = "soft"
	TagReflective ToneTag = "reflective"
	TagLight      ToneTag = "light"
	TagFun        ToneTag = "fun"
	TagBold       ToneTag = "bold"
	TagCurious    ToneTag = "curious"
	TagGrounding  ToneTag = "grounding"
)

// SeasonParams describes how a season shapes content selection.
type SeasonParams struct {
	PreferShort bool           `json:"prefer_short"`
	PromptTones []ToneTag      `json:"prompt_tones"`
	PreferLoad  int            `json:"prefer_load"`
	PreferStyle catalog.Style  `json:"prefer_style"`
	MaxDuration int            `json:"max_duration"` // minutes; 0 = no cap
}

// EnergyParams describes how an energy level caps and colors content.
type EnergyParams struct {
	MaxHeat     int       `json:"max_heat"`
	PreferShort bool      `json:"prefer_short"`
	Tones       []ToneTag `json:"tones"`
}

// ClimateParams describes how an emotional climate steers content.
type ClimateParams struct {
	PreferredCategories []catalog.Category `json:"preferred_categories"`
	PreferLoad          int                `json:"prefer_load"`
	PreferStyle         catalog.Style      `json:"prefer_style"`
}

// seasonParams is the fixed season vocabulary, validated at startup.
var seasonParams = map[Season]SeasonParams{
	SeasonCozy: {
		PromptTones: []ToneTag{TagWarm, TagSoft, TagReflective},
		PreferLoad:  1,
		PreferStyle: catalog.StyleTalking,
	},
	SeasonAdventure: {
		PromptTones: []ToneTag{TagBold, TagFun, TagCurious},
		PreferLoad:  3,
		PreferStyle: catalog.StyleDoing,
	},
	SeasonReconnect: {
		PromptTones: []ToneTag{TagReflective, TagWarm, TagCurious},
		PreferLoad:  2,
		PreferStyle: catalog.StyleTalking,
	},
	SeasonFullPlate: {
		PreferShort: true,
		PromptTones: []ToneTag{TagLight, TagWarm},
		PreferLoad:  1,
		PreferStyle: catalog.StyleMixed,
		MaxDuration: 60,
	},
	SeasonHealing: {
		PreferShort: true,
		PromptTones: []ToneTag{TagSoft, TagGrounding, TagReflective},
		PreferLoad:  1,
		PreferStyle: catalog.StyleTalking,
		MaxDuration: 90,
	},
	SeasonCelebration: {
		PromptTones: []ToneTag{TagFun, TagBold, TagLight},
		PreferLoad:  2,
		PreferStyle: catalog.StyleMixed,
	},
}

// energyParams is the fixed energy vocabulary, validated at startup.
var energyParams = map[EnergyLevel]EnergyParams{
	EnergyLow: {
		MaxHeat:     2,
		PreferShort: true,
		Tones:       []ToneTag{TagSoft, TagGrounding},
	},
	EnergyMedium: {
		MaxHeat: 4,
		Tones:   []ToneTag{TagWarm, TagLight},
	},
	EnergyHigh: {
		MaxHeat: 5,
		Tones:   []ToneTag{TagBold, TagFun, TagCurious},
	},
}

// climateParams is the fixed climate vocabulary, validated at startup.
// ClimateNone deliberately has no entry; an absent climate contributes nothing.
var climateParams = map[Climate]ClimateParams{
	ClimateCalm: {
		PreferredCategories: []catalog.Category{catalog.CategoryGratitude, catalog.CategoryPlayful},
		PreferLoad:          2,
		PreferStyle:         catalog.StyleMixed,
	},
	ClimateTender: {
		PreferredCategories: []catalog.Category{catalog.CategoryEmotional, catalog.CategoryRomance},
		PreferLoad:          1,
		PreferStyle:         catalog.StyleTalking,
	},
	ClimateStormy: {
		PreferredCategories: []catalog.Category{catalog.CategoryEmotional, catalog.CategoryDeep},
		PreferLoad:          1,
		PreferStyle:         catalog.StyleTalking,
	},
	ClimateDistant: {
		PreferredCategories: []catalog.Category{catalog.CategoryDeep, catalog.CategoryRomance},
		PreferLoad:          2,
		PreferStyle:         catalog.StyleTalking,
	},
	ClimatePlayful: {
		PreferredCategories: []catalog.Category{catalog.CategoryPlayful, catalog.CategoryAdventure},
		PreferLoad:          2,
		PreferStyle:         catalog.StyleDoing,
	},
}

// categoryTones maps every content category to the tone tags it carries.
// Overlap with season/energy tones feeds the prompt scorer.
var categoryTones = map[catalog.Category][]ToneTag{
	catalog.CategoryRomance:   {TagWarm, TagSoft, TagReflective},
	catalog.CategoryEmotional: {TagSoft, TagReflective, TagGrounding},
	catalog.CategoryPlayful:   {TagLight, TagFun},
	catalog.CategoryDeep:      {TagReflective, TagCurious},
	catalog.CategorySpicy:     {TagBold},
	catalog.CategoryGratitude: {TagWarm, TagGrounding},
	catalog.CategoryFuture:    {TagCurious, TagReflective},
	catalog.CategoryAdventure: {TagBold, TagFun, TagCurious},
}

// ValidateVocab checks the constant lookup tables at startup so a missing
// entry fails construction instead of silently scoring zero forever.
func ValidateVocab() error {
	for _, season := range []Season{SeasonCozy, SeasonAdventure, SeasonReconnect, SeasonFullPlate, SeasonHealing, SeasonCelebration} {
		p, ok := seasonParams[season]
		if !ok {
			return fmt.Errorf("season %q has no params", season)
		}
		if p.PreferLoad < 1 || p.PreferLoad > 3 {
			return fmt.Errorf("season %q prefer_load %d out of range", season, p.PreferLoad)
		}
		if !p.PreferStyle.Valid() {
			return fmt.Errorf("season %q prefer_style %q invalid", season, p.PreferStyle)
		}
	}

	for _, level := range []EnergyLevel{EnergyLow, EnergyMedium, EnergyHigh} {
		p, ok := energyParams[level]
		if !ok {
			return fmt.Errorf("energy level %q has no params", level)
		}
		if p.MaxHeat < 1 || p.MaxHeat > 5 {
			return fmt.Errorf("energy level %q max_heat %d out of range", level, p.MaxHeat)
		}
	}

	for climate, p := range climateParams {
		if len(p.PreferredCategories) == 0 {
			return fmt.Errorf("climate %q has no preferred categories", climate)
		}
		for _, cat := range p.PreferredCategories {
			if !cat.Valid() {
				return fmt.Errorf("climate %q references unknown category %q", climate, cat)
			}
		}
	}

	for _, cat := range catalog.Categories {
		if len(categoryTones[cat]) == 0 {
			return fmt.Errorf("category %q has no tone tags", cat)
		}
	}

	return nil
}

// Boundaries are the user's soft limits. They always win: a boundary cap is
// applied after every other signal, and hidden/paused content never surfaces
// regardless of score.
type Boundaries struct {
	// HideSpicy caps prompt heat at 3 and hides explicitly spicy content.
	HideSpicy bool `json:"hide_spicy"`

	// HiddenCategories excludes whole categories from prompts.
	HiddenCategories []catalog.Category `json:"hidden_categories,omitempty"`

	// PausedPrompts excludes individual prompt IDs.
	PausedPrompts []string `json:"paused_prompts,omitempty"`

	// PausedDates excludes individual date idea IDs.
	PausedDates []string `json:"paused_dates,omitempty"`

	// MaxHeatOverride caps heat when > 0.
	MaxHeatOverride int `json:"max_heat_override,omitempty"`
}

// Signals gathers the raw per-user preference inputs that external
// collaborators supply. Zero values mean "signal unavailable" and are
// replaced by documented neutral defaults during profile building:
// season=cozy, energy=medium, climate=none, tone=warm, intensity=5 (no
// explicit cap), start date absent = universal stage.
type Signals struct {
	IntensityPref int         `json:"intensity_pref"`
	Season        Season      `json:"season"`
	Energy        EnergyLevel `json:"energy"`
	Climate       Climate     `json:"climate"`
	Tone          Tone        `json:"tone"`
	Boundaries    Boundaries  `json:"boundaries"`
	StartDate     *time.Time  `json:"start_date,omitempty"`
}
