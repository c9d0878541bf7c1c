// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package catalog

import (
	"embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

//go:embed data/prompts.json data/dates.json
var seedFS embed.FS

// Load builds the catalog from the embedded seed data.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Load(logger zerolog.Logger) (*Catalog, error) {
	prompts, err := readSeed[Prompt]("data/prompts.json")
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	dates, err := readSeed[DateIdea]("data/dates.json")
	if err != nil {
		return nil, fmt.Errorf("load date ideas: %w", err)
	}

	c, err := New(prompts, dates, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("prompts", len(c.prompts)).
		Int("date_ideas", len(c.dates)).
		Msg("catalog loaded")

	return c, nil
}

// LoadFromFiles builds the catalog from external JSON files, overriding the
// embedded seed data. Either path may be empty to fall back to the seed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadFromFiles(promptsPath, datesPath string, logger zerolog.Logger) (*Catalog, error) {
	prompts, err := readSeed[Prompt]("data/prompts.json")
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}
	if promptsPath != "" {
		prompts, err = readFile[Prompt](promptsPath)
		if err != nil {
			return nil, fmt.Errorf("load prompts from %s: %w", promptsPath, err)
		}
	}

	dates, err := readSeed[DateIdea]("data/dates.json")
	if err != nil {
		return nil, fmt.Errorf("load date ideas: %w", err)
	}
	if datesPath != "" {
		dates, err = readFile[DateIdea](datesPath)
		if err != nil {
			return nil, fmt.Errorf("load date ideas from %s: %w", datesPath, err)
		}
	}

	return New(prompts, dates, logger)
}

func readSeed[T any](name string) ([]T, error) {
	raw, err := seedFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func readFile[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
