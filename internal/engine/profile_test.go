// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import (
	"testing"
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

func TestValidateVocab(t *testing.T) {
	if err := ValidateVocab(); err != nil {
		t.Fatalf("ValidateVocab() error: %v", err)
	}
}

func TestBuildProfileMaxHeat(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sig  Signals
		want int
	}{
		{
			name: "intensity preference caps",
			sig:  Signals{IntensityPref: 2, Energy: EnergyHigh},
			want: 2,
		},
		{
			name: "energy cap wins when lower",
			sig:  Signals{IntensityPref: 5, Energy: EnergyLow},
			want: 2,
		},
		{
			name: "hide spicy caps at 3",
			sig: Signals{
				IntensityPref: 5,
				Energy:        EnergyHigh,
				Boundaries:    Boundaries{HideSpicy: true},
			},
			want: 3,
		},
		{
			name: "boundary override always wins when lower",
			sig: Signals{
				IntensityPref: 5,
				Energy:        EnergyHigh,
				Boundaries:    Boundaries{MaxHeatOverride: 1},
			},
			want: 1,
		},
		{
			name: "unset intensity means no explicit cap",
			sig:  Signals{Energy: EnergyHigh},
			want: 5,
		},
		{
			name: "defaults: medium energy caps at 4",
			sig:  Signals{},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildProfile(tt.sig, now)
			if p.MaxHeat != tt.want {
				t.Errorf("MaxHeat = %d, want %d", p.MaxHeat, tt.want)
			}
		})
	}
}

func TestBuildProfileDefaults(t *testing.T) {
	p := BuildProfile(Signals{}, time.Now())

	if p.Season != SeasonCozy {
		t.Errorf("Season = %q, want default %q", p.Season, SeasonCozy)
	}
	if p.Energy != EnergyMedium {
		t.Errorf("Energy = %q, want default %q", p.Energy, EnergyMedium)
	}
	if p.Climate != ClimateNone {
		t.Errorf("Climate = %q, want none", p.Climate)
	}
	if p.Tone != ToneWarm {
		t.Errorf("Tone = %q, want default %q", p.Tone, ToneWarm)
	}
	if p.Stage != catalog.StageUniversal {
		t.Errorf("Stage = %q, want %q", p.Stage, catalog.StageUniversal)
	}
	if len(p.ClimateP.PreferredCategories) != 0 {
		t.Error("absent climate should contribute no preferred categories")
	}
}

func TestBuildProfileUnknownSignalsFallBack(t *testing.T) {
	p := BuildProfile(Signals{
		Season:  "mercury_retrograde",
		Energy:  "cosmic",
		Climate: "hailstorm",
		Tone:    "sarcastic",
	}, time.Now())

	if p.Season != SeasonCozy || p.Energy != EnergyMedium || p.Climate != ClimateNone || p.Tone != ToneWarm {
		t.Errorf("unknown signals did not fall back to defaults: %+v", p)
	}
}

func TestBuildProfilePreferShort(t *testing.T) {
	tests := []struct {
		name   string
		season Season
		energy EnergyLevel
		want   bool
	}{
		{"neither", SeasonCozy, EnergyMedium, false},
		{"season prefers short", SeasonFullPlate, EnergyMedium, true},
		{"energy prefers short", SeasonCozy, EnergyLow, true},
		{"both", SeasonHealing, EnergyLow, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildProfile(Signals{Season: tt.season, Energy: tt.energy}, time.Now())
			if p.PreferShort != tt.want {
				t.Errorf("PreferShort = %v, want %v", p.PreferShort, tt.want)
			}
		})
	}
}

func TestStageFor(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		ts := now.AddDate(0, 0, -d)
		return &ts
	}

	tests := []struct {
		name  string
		start *time.Time
		want  catalog.Stage
	}{
		{"absent start date", nil, catalog.StageUniversal},
		{"ten days", daysAgo(10), catalog.StageNew},
		{"just under a month", daysAgo(29), catalog.StageNew},
		{"one month", daysAgo(30), catalog.StageDeveloping},
		{"half a year", daysAgo(182), catalog.StageDeveloping},
		{"one year", daysAgo(365), catalog.StageEstablished},
		{"three years", daysAgo(1095), catalog.StageMature},
		{"five years", daysAgo(1825), catalog.StageLongTerm},
		{"a decade", daysAgo(3650), catalog.StageLongTerm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stageFor(tt.start, now); got != tt.want {
				t.Errorf("stageFor() = %q, want %q", got, tt.want)
			}
		})
	}

	// A start date in the future is treated by distance, not sign.
	future := now.AddDate(0, 0, 10)
	if got := stageFor(&future, now); got != catalog.StageNew {
		t.Errorf("stageFor(future) = %q, want %q", got, catalog.StageNew)
	}
}

func TestBuildProfileDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(-2, 0, 0)
	sig := Signals{
		IntensityPref: 4,
		Season:        SeasonReconnect,
		Energy:        EnergyHigh,
		Climate:       ClimateTender,
		Tone:          ToneIntimate,
		StartDate:     &start,
		Boundaries: Boundaries{
			HiddenCategories: []catalog.Category{catalog.CategorySpicy},
			PausedPrompts:    []string{"pr-001"},
		},
	}

	a := BuildProfile(sig, now)
	b := BuildProfile(sig, now)

	if a.MaxHeat != b.MaxHeat || a.Season != b.Season || a.Stage != b.Stage || a.Climate != b.Climate {
		t.Errorf("BuildProfile not deterministic: %+v vs %+v", a, b)
	}
	if a.Stage != catalog.StageEstablished {
		t.Errorf("Stage = %q, want %q", a.Stage, catalog.StageEstablished)
	}
}
