// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

// stableStringHash is the 32-bit shift-and-subtract string hash used for
// per-item tie-breaking. The formula (h<<5 - h + byte, wrapping at 32 bits)
// must not change: stored expectations and cross-session ordering depend on
// bit-identical outputs.
func stableStringHash(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = (h << 5) - h + int32(s[i])
	}
	return h
}

// tieBreak derives a stable per-item score nudge in [0, 0.3) from the item
// ID. Stable, not random: repeated scoring of the same catalog yields the
// same order absent profile changes.
func tieBreak(id string) float64 {
	return float64(mod(int(stableStringHash(id)), 100)) * 0.003
}

// dateSeed mixes a calendar date into a deterministic selection seed.
// The exact arithmetic is load-bearing: the same date must index the same
// pool slot across sessions and processes.
func dateSeed(year, month, day int) int {
	return ((year*31+month)*31 + day) ^ (year*7 + month*13 + day*37)
}

// mod returns the non-negative remainder of a/b.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
