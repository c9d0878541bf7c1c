// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import (
	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

// DateDims are explicit user-chosen dimensions for a date request. Zero
// values mean "not specified"; a supplied dimension must match exactly.
type DateDims struct {
	Heat  int           `json:"heat,omitempty"`
	Load  int           `json:"load,omitempty"`
	Style catalog.Style `json:"style,omitempty"`
}

// ShouldShowPrompt is the hard-constraint predicate for a single prompt.
// It is cheap and synchronous so callers can re-check already-fetched items
// after boundaries change. Malformed items fail closed.
func ShouldShowPrompt(item catalog.Prompt, p Profile) bool {
	if !item.Valid() {
		return false
	}
	if item.Heat > p.MaxHeat {
		return false
	}
	if p.hiddenCategory(item.Category) {
		return false
	}
	if p.pausedPrompt(item.ID) {
		return false
	}
	return item.AllowsStage(p.Stage)
}

// ShouldShowDate is the hard-constraint predicate for a single date idea.
func ShouldShowDate(item catalog.DateIdea, p Profile) bool {
	if !item.Valid() {
		return false
	}
	if p.pausedDate(item.ID) {
		return false
	}
	if cap := p.SeasonP.MaxDuration; cap > 0 && item.Minutes > cap {
		return false
	}
	return item.Heat <= p.MaxHeat
}

// FilterPrompts returns prompts that pass every hard constraint. Order is
// not significant; callers re-sort after scoring.
func FilterPrompts(items []catalog.Prompt, p Profile) []catalog.Prompt {
	out := make([]catalog.Prompt, 0, len(items))
	for _, item := range items {
		if ShouldShowPrompt(item, p) {
			out = append(out, item)
		}
	}
	return out
}

// FilterDates returns date ideas that pass every hard constraint, plus an
// exact match on any explicitly supplied dimension.
func FilterDates(items []catalog.DateIdea, p Profile, dims *DateDims) []catalog.DateIdea {
	out := make([]catalog.DateIdea, 0, len(items))
	for _, item := range items {
		if !ShouldShowDate(item, p) {
			continue
		}
		if dims != nil {
			if dims.Heat > 0 && item.Heat != dims.Heat {
				continue
			}
			if dims.Load > 0 && item.Load != dims.Load {
				continue
			}
			if dims.Style != "" && item.Style != dims.Style {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}
