// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

func testDay() time.Time {
	return time.Date(2026, time.March, 14, 19, 0, 0, 0, time.UTC)
}

func dateFixtures(n int) []catalog.DateIdea {
	items := make([]catalog.DateIdea, 0, n)
	styles := []catalog.Style{catalog.StyleTalking, catalog.StyleDoing, catalog.StyleMixed}
	locations := []catalog.Location{catalog.LocationHome, catalog.LocationOut, catalog.LocationEither}
	for i := 0; i < n; i++ {
		items = append(items, catalog.DateIdea{
			ID:       fmt.Sprintf("dt-%03d", i+1),
			Title:    fmt.Sprintf("date %d", i+1),
			Category: catalog.CategoryRomance,
			Heat:     i%3 + 1,
			Load:     i%3 + 1,
			Style:    styles[i%3],
			Location: locations[i%3],
			Minutes:  30 + 15*(i%4),
		})
	}
	return items
}

func TestTimeOfDayFor(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Night}, {4, Night}, {5, Morning}, {11, Morning},
		{12, Afternoon}, {16, Afternoon}, {17, Evening}, {21, Evening},
		{22, Night}, {23, Night},
	}
	for _, tc := range tests {
		if got := TimeOfDayFor(tc.hour); got != tc.want {
			t.Errorf("TimeOfDayFor(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

func TestSurpriseDateEmptyCatalog(t *testing.T) {
	e := newTestEngine(t, newMemHistory(), nil)
	p := BuildProfile(Signals{}, testDay())

	if got := e.SurpriseDate(nil, p, SurpriseContext{TimeOfDay: Evening}, 0); got != nil {
		t.Errorf("SurpriseDate() = %v, want nil for empty catalog", got)
	}
}

func TestSurpriseDateRelaxesDims(t *testing.T) {
	// When the requested dimensions eliminate everything, surprise widens to
	// the profile-eligible set rather than returning nothing.
	items := dateFixtures(6)
	for i := range items {
		items[i].Heat = 1
		items[i].Load = 1
		items[i].Style = catalog.StyleTalking
	}
	e := newTestEngine(t, newMemHistory(), nil)

	p := BuildProfile(Signals{Season: SeasonHealing, Energy: EnergyLow}, testDay())
	dims := &DateDims{Heat: 3, Load: 3, Style: catalog.StyleDoing}

	got := e.SurpriseDate(items, p, SurpriseContext{Dims: dims, TimeOfDay: Evening}, 0)
	if got == nil {
		t.Fatal("SurpriseDate() = nil, want a relaxed-dims pick")
	}
}

func TestSurpriseDateBoundariesHoldInFallback(t *testing.T) {
	// Relaxing dims never relaxes boundaries: if pauses exclude the whole
	// catalog, the result is nil, not a paused item.
	items := []catalog.DateIdea{
		{ID: "", Title: "broken", Category: catalog.CategoryRomance, Heat: 1, Load: 1, Style: catalog.StyleTalking, Location: catalog.LocationHome, Minutes: 30},
		{ID: "paused", Title: "fine", Category: catalog.CategoryRomance, Heat: 1, Load: 1, Style: catalog.StyleTalking, Location: catalog.LocationHome, Minutes: 30},
	}
	e := newTestEngine(t, newMemHistory(), nil)
	p := BuildProfile(Signals{Boundaries: Boundaries{PausedDates: []string{"paused"}}}, testDay())

	dims := &DateDims{Heat: 3, Load: 3, Style: catalog.StyleDoing}
	if got := e.SurpriseDate(items, p, SurpriseContext{Dims: dims, TimeOfDay: Evening}, 0); got != nil {
		t.Errorf("SurpriseDate() = %v, want nil when only paused content remains", got)
	}
}

func TestSurpriseDateSkipsMalformed(t *testing.T) {
	items := []catalog.DateIdea{
		{ID: "", Title: "broken", Category: catalog.CategoryRomance, Heat: 1, Load: 1, Style: catalog.StyleTalking, Location: catalog.LocationHome, Minutes: 30},
		{ID: "ok", Title: "fine", Category: catalog.CategoryRomance, Heat: 1, Load: 1, Style: catalog.StyleTalking, Location: catalog.LocationHome, Minutes: 30},
	}
	e := newTestEngine(t, newMemHistory(), nil)
	p := BuildProfile(Signals{}, testDay())

	for i := 0; i < 50; i++ {
		got := e.SurpriseDate(items, p, SurpriseContext{TimeOfDay: Evening}, 0)
		if got == nil || got.ID != "ok" {
			t.Fatalf("SurpriseDate() = %v, want the only well-formed item", got)
		}
	}
}

func TestSurpriseDateRecentPenalty(t *testing.T) {
	// A recently shown item carries a penalty larger than the jitter bound,
	// so with fresh alternatives it never makes the top slice.
	items := dateFixtures(10)
	e := newTestEngine(t, newMemHistory(), nil)
	p := BuildProfile(Signals{Energy: EnergyHigh}, testDay())

	recent := []string{"dt-001", "dt-002"}
	sctx := SurpriseContext{RecentIDs: recent, TimeOfDay: Afternoon}

	for i := 0; i < 500; i++ {
		got := e.SurpriseDate(items, p, sctx, 0)
		if got == nil {
			t.Fatal("SurpriseDate() = nil with non-empty pool")
		}
		for _, id := range recent {
			if got.ID == id {
				t.Fatalf("trial %d picked recently shown %q", i, id)
			}
		}
	}
}

func TestSurpriseDatePreferenceBias(t *testing.T) {
	// A load+style match is worth 1.0, well above the 0.3 jitter bound, so
	// the matching item should win a clear majority of draws against
	// non-matching peers over many trials.
	items := []catalog.DateIdea{
		{ID: "match", Title: "t", Category: catalog.CategoryRomance, Heat: 1, Load: 2, Style: catalog.StyleDoing, Location: catalog.LocationEither, Minutes: 45},
		{ID: "miss1", Title: "t", Category: catalog.CategoryRomance, Heat: 1, Load: 1, Style: catalog.StyleTalking, Location: catalog.LocationEither, Minutes: 45},
		{ID: "miss2", Title: "t", Category: catalog.CategoryRomance, Heat: 1, Load: 1, Style: catalog.StyleTalking, Location: catalog.LocationEither, Minutes: 45},
	}
	e := newTestEngine(t, newMemHistory(), nil)
	p := BuildProfile(Signals{Energy: EnergyHigh}, testDay())
	sctx := SurpriseContext{PreferredLoad: 2, PreferredStyle: catalog.StyleDoing, TimeOfDay: Evening}

	const trials = 3000
	hits := 0
	for i := 0; i < trials; i++ {
		got := e.SurpriseDate(items, p, sctx, 0)
		if got == nil {
			t.Fatal("SurpriseDate() = nil")
		}
		if got.ID == "match" {
			hits++
		}
	}

	// Uniform would be ~1/3; the weighting should push well past half.
	if hits < trials/2 {
		t.Errorf("matched item won %d/%d draws, expected a clear majority", hits, trials)
	}
}

func TestSurpriseDateTimeOfDayBias(t *testing.T) {
	// Evening favors low-load at-home ideas; mornings favor high-load
	// out-of-house ones.
	items := []catalog.DateIdea{
		{ID: "cozy", Title: "t", Category: catalog.CategoryRomance, Heat: 1, Load: 1, Style: catalog.StyleMixed, Location: catalog.LocationHome, Minutes: 30},
		{ID: "outing", Title: "t", Category: catalog.CategoryAdventure, Heat: 1, Load: 3, Style: catalog.StyleMixed, Location: catalog.LocationOut, Minutes: 30},
	}
	e := newTestEngine(t, newMemHistory(), nil)
	p := BuildProfile(Signals{Energy: EnergyHigh}, testDay())

	const trials = 3000
	count := func(tod TimeOfDay, id string) int {
		n := 0
		for i := 0; i < trials; i++ {
			if got := e.SurpriseDate(items, p, SurpriseContext{TimeOfDay: tod}, 0); got != nil && got.ID == id {
				n++
			}
		}
		return n
	}

	if n := count(Evening, "cozy"); n <= trials/2 {
		t.Errorf("evening picked the cozy idea %d/%d times, expected a majority", n, trials)
	}
	if n := count(Morning, "outing"); n <= trials/2 {
		t.Errorf("morning picked the outing %d/%d times, expected a majority", n, trials)
	}
}

func TestSurpriseDateEveryCandidateReachable(t *testing.T) {
	// The weight floor keeps even the lowest-scored top-N candidate drawable.
	items := dateFixtures(4)
	e := newTestEngine(t, newMemHistory(), nil)
	p := BuildProfile(Signals{Energy: EnergyHigh}, testDay())

	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		got := e.SurpriseDate(items, p, SurpriseContext{TimeOfDay: Night}, 0)
		if got == nil {
			t.Fatal("SurpriseDate() = nil")
		}
		seen[got.ID] = true
	}
	for _, item := range items {
		if !seen[item.ID] {
			t.Errorf("item %q never drawn in 2000 trials", item.ID)
		}
	}
}

func TestSurpriseDateRespectsTopN(t *testing.T) {
	// topN=1 collapses the draw to the single best-scored candidate; with a
	// dominant preference match that is always the same item.
	items := []catalog.DateIdea{
		{ID: "best", Title: "t", Category: catalog.CategoryRomance, Heat: 1, Load: 2, Style: catalog.StyleDoing, Location: catalog.LocationOut, Minutes: 30},
		{ID: "rest", Title: "t", Category: catalog.CategoryRomance, Heat: 1, Load: 1, Style: catalog.StyleTalking, Location: catalog.LocationHome, Minutes: 30},
	}
	e := newTestEngine(t, newMemHistory(), nil)
	p := BuildProfile(Signals{Energy: EnergyHigh}, testDay())
	sctx := SurpriseContext{PreferredLoad: 2, PreferredStyle: catalog.StyleDoing, TimeOfDay: Afternoon}

	for i := 0; i < 200; i++ {
		got := e.SurpriseDate(items, p, sctx, 1)
		if got == nil || got.ID != "best" {
			t.Fatalf("trial %d: got %v, want the dominant candidate", i, got)
		}
	}
}
