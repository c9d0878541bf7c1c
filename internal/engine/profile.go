// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import (
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

// Profile is the single immutable snapshot of every preference signal,
// rebuilt per request. MaxHeat is always the minimum across all contributing
// caps; downstream code must never recompute caps from individual signals.
type Profile struct {
	// MaxHeat is min(intensity pref, energy cap, boundary override, spicy cap).
	MaxHeat int `json:"max_heat"`

	// PreferShort is true when either season or energy prefers short content.
	PreferShort bool `json:"prefer_short"`

	Season   Season       `json:"season"`
	SeasonP  SeasonParams `json:"season_params"`
	Energy   EnergyLevel  `json:"energy"`
	EnergyP  EnergyParams `json:"energy_params"`
	Climate  Climate      `json:"climate"`
	ClimateP ClimateParams `json:"climate_params"`

	Boundaries Boundaries    `json:"boundaries"`
	Tone       Tone          `json:"tone"`
	Stage      catalog.Stage `json:"stage"`
}

// Relationship stage thresholds in days.
const (
	stageNewDays         = 30
	stageDevelopingDays  = 365
	stageEstablishedDays = 1095
	stageMatureDays      = 1825
)

// promptHeatCeiling is the highest prompt heat; an absent intensity
// preference means no explicit cap.
const promptHeatCeiling = 5

// spicyCap is the heat ceiling applied when boundaries hide spicy content.
const spicyCap = 3

// BuildProfile combines the raw signals into one profile snapshot. It is
// pure and deterministic given its inputs; missing signals fall back to
// neutral defaults and never block selection.
func BuildProfile(sig Signals, now time.Time) Profile {
	season := sig.Season
	if _, ok := seasonParams[season]; !ok {
		season = SeasonCozy
	}
	energy := sig.Energy
	if _, ok := energyParams[energy]; !ok {
		energy = EnergyMedium
	}
	climate := sig.Climate
	climateP, ok := climateParams[climate]
	if !ok {
		climate = ClimateNone
		climateP = ClimateParams{}
	}
	tone := sig.Tone
	switch tone {
	case ToneWarm, TonePlayful, ToneIntimate, ToneMinimal:
	default:
		tone = ToneWarm
	}

	seasonP := seasonParams[season]
	energyP := energyParams[energy]

	maxHeat := sig.IntensityPref
	if maxHeat < 1 || maxHeat > promptHeatCeiling {
		maxHeat = promptHeatCeiling
	}
	if energyP.MaxHeat < maxHeat {
		maxHeat = energyP.MaxHeat
	}
	if o := sig.Boundaries.MaxHeatOverride; o > 0 && o < maxHeat {
		maxHeat = o
	}
	if sig.Boundaries.HideSpicy && spicyCap < maxHeat {
		maxHeat = spicyCap
	}

	return Profile{
		MaxHeat:     maxHeat,
		PreferShort: seasonP.PreferShort || energyP.PreferShort,
		Season:      season,
		SeasonP:     seasonP,
		Energy:      energy,
		EnergyP:     energyP,
		Climate:     climate,
		ClimateP:    climateP,
		Boundaries:  sig.Boundaries,
		Tone:        tone,
		Stage:       stageFor(sig.StartDate, now),
	}
}

// stageFor buckets days-since-start into a relationship stage. An absent
// start date yields StageUniversal, which bypasses stage filtering.
func stageFor(start *time.Time, now time.Time) catalog.Stage {
	if start == nil {
		return catalog.StageUniversal
	}

	days := int(now.Sub(*start).Hours() / 24)
	if days < 0 {
		days = -days
	}

	switch {
	case days < stageNewDays:
		return catalog.StageNew
	case days < stageDevelopingDays:
		return catalog.StageDeveloping
	case days < stageEstablishedDays:
		return catalog.StageEstablished
	case days < stageMatureDays:
		return catalog.StageMature
	default:
		return catalog.StageLongTerm
	}
}

// hiddenCategory reports whether the profile hides the given category.
func (p Profile) hiddenCategory(cat catalog.Category) bool {
	for _, h := range p.Boundaries.HiddenCategories {
		if h == cat {
			return true
		}
	}
	return false
}

// pausedPrompt reports whether the prompt ID is paused.
func (p Profile) pausedPrompt(id string) bool {
	for _, h := range p.Boundaries.PausedPrompts {
		if h == id {
			return true
		}
	}
	return false
}

// pausedDate reports whether the date idea ID is paused.
func (p Profile) pausedDate(id string) bool {
	for _, h := range p.Boundaries.PausedDates {
		if h == id {
			return true
		}
	}
	return false
}
