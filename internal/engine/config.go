// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package engine

import "fmt"

// Config contains tunables for the selection engine.
type Config struct {
	// Seed fixes the surprise-selection random source when non-zero.
	// Leave zero in production so surprise picks stay surprising; set in
	// tests for reproducibility.
	Seed int64 `koanf:"seed" json:"seed"`

	// SurpriseTopN is how many top-scored candidates enter the weighted
	// surprise draw.
	SurpriseTopN int `koanf:"surprise_top_n" json:"surprise_top_n"`

	// PoolMinSize is the minimum daily quality-pool size.
	PoolMinSize int `koanf:"pool_min_size" json:"pool_min_size"`

	// PoolRatio is the fraction of the ranked list admitted to the daily
	// quality pool.
	PoolRatio float64 `koanf:"pool_ratio" json:"pool_ratio"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		SurpriseTopN: defaultSurpriseTopN,
		PoolMinSize:  defaultPoolMinSize,
		PoolRatio:    defaultPoolRatio,
	}
}

// Validate checks config invariants.
func (c Config) Validate() error {
	if c.SurpriseTopN < 1 {
		return fmt.Errorf("surprise_top_n must be >= 1, got %d", c.SurpriseTopN)
	}
	if c.PoolMinSize < 1 {
		return fmt.Errorf("pool_min_size must be >= 1, got %d", c.PoolMinSize)
	}
	if c.PoolRatio <= 0 || c.PoolRatio > 1 {
		return fmt.Errorf("pool_ratio must be in (0, 1], got %f", c.PoolRatio)
	}
	return nil
}
