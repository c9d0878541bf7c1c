// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

// Package catalog holds the in-memory content catalog for Between Us.
//
// The catalog is loaded once at startup, normalized, and from then on treated
// as immutable. It is safe to share across concurrent readers without locking.
// Selectors receive it by reference; nothing downstream ever sees raw or
// partially-populated records.
package catalog

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Catalog is an immutable collection of prompts and date ideas.
// Construct with New or Load; do not mutate after construction.
type Catalog struct {
	prompts []Prompt
	dates   []DateIdea

	promptByID map[string]int
	dateByID   map[string]int

	dropped int
}

// Stats summarizes catalog contents for diagnostics.
type Stats struct {
	Prompts            int              `json:"prompts"`
	DateIdeas          int              `json:"date_ideas"`
	PromptsByCategory  map[Category]int `json:"prompts_by_category"`
	DatesByCategory    map[Category]int `json:"dates_by_category"`
	DroppedOnIngestion int              `json:"dropped_on_ingestion"`
}

// New builds a catalog from raw records, normalizing each and dropping the
// unusable ones. Malformed records are logged and excluded, never surfaced.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(prompts []Prompt, dates []DateIdea, logger zerolog.Logger) (*Catalog, error) {
	c := &Catalog{
		promptByID: make(map[string]int, len(prompts)),
		dateByID:   make(map[string]int, len(dates)),
	}

	dropped := 0
	for _, p := range prompts {
		if !NormalizePrompt(&p) {
			dropped++
			logger.Warn().Str("id", p.ID).Msg("dropping malformed prompt")
			continue
		}
		if _, dup := c.promptByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate prompt id %q", p.ID)
		}
		c.promptByID[p.ID] = len(c.prompts)
		c.prompts = append(c.prompts, p)
	}

	for _, d := range dates {
		if !NormalizeDateIdea(&d) {
			dropped++
			logger.Warn().Str("id", d.ID).Msg("dropping malformed date idea")
			continue
		}
		if _, dup := c.dateByID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate date idea id %q", d.ID)
		}
		c.dateByID[d.ID] = len(c.dates)
		c.dates = append(c.dates, d)
	}

	if dropped > 0 {
		logger.Info().Int("dropped", dropped).Msg("catalog normalization dropped records")
	}
	c.dropped = dropped

	return c, nil
}

// Prompts returns a copy of all prompts.
func (c *Catalog) Prompts() []Prompt {
	out := make([]Prompt, len(c.prompts))
	copy(out, c.prompts)
	return out
}

// DateIdeas returns a copy of all date ideas.
func (c *Catalog) DateIdeas() []DateIdea {
	out := make([]DateIdea, len(c.dates))
	copy(out, c.dates)
	return out
}

// PromptsByCategory returns prompts tagged with the given category.
func (c *Catalog) PromptsByCategory(cat Category) []Prompt {
	var out []Prompt
	for _, p := range c.prompts {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// PromptsByMaxHeat returns prompts at or below the given intensity.
func (c *Catalog) PromptsByMaxHeat(maxHeat int) []Prompt {
	var out []Prompt
	for _, p := range c.prompts {
		if p.Heat <= maxHeat {
			out = append(out, p)
		}
	}
	return out
}

// DateIdeasByCategory returns date ideas tagged with the given category.
func (c *Catalog) DateIdeasByCategory(cat Category) []DateIdea {
	var out []DateIdea
	for _, d := range c.dates {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}

// Prompt returns the prompt with the given ID, if present.
func (c *Catalog) Prompt(id string) (Prompt, bool) {
	i, ok := c.promptByID[id]
	if !ok {
		return Prompt{}, false
	}
	return c.prompts[i], true
}

// DateIdea returns the date idea with the given ID, if present.
func (c *Catalog) DateIdea(id string) (DateIdea, bool) {
	i, ok := c.dateByID[id]
	if !ok {
		return DateIdea{}, false
	}
	return c.dates[i], true
}

// Stats returns catalog counts for the stats endpoint.
func (c *Catalog) Stats() Stats {
	s := Stats{
		Prompts:            len(c.prompts),
		DateIdeas:          len(c.dates),
		PromptsByCategory:  make(map[Category]int),
		DatesByCategory:    make(map[Category]int),
		DroppedOnIngestion: c.dropped,
	}
	for _, p := range c.prompts {
		s.PromptsByCategory[p.Category]++
	}
	for _, d := range c.dates {
		s.DatesByCategory[d.Category]++
	}
	return s
}
