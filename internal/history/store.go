// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

// Package history persists per-user selection history and content ratings in
// BadgerDB. Month buckets back the daily selector's anti-repeat behavior;
// ratings feed the prompt scorer.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/engine"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/metrics"
)

// Key prefixes for BadgerDB storage.
const (
	histKeyPrefix   = "hist:"
	ratingKeyPrefix = "rating:"
)

// Config controls where and how the store keeps its data.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `koanf:"path" json:"path"`

	// InMemory keeps everything in RAM. Used by tests and ephemeral deploys.
	InMemory bool `koanf:"in_memory" json:"in_memory"`

	// GCInterval is how often the value-log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval" json:"gc_interval"`

	// RetentionMonths is how many month buckets to keep per user. Zero
	// disables pruning.
	RetentionMonths int `koanf:"retention_months" json:"retention_months"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Path:            "data/history",
		GCInterval:      10 * time.Minute,
		RetentionMonths: 3,
	}
}

// Validate checks config invariants.
func (c Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return fmt.Errorf("history path is required for on-disk storage")
	}
	if c.RetentionMonths < 0 {
		return fmt.Errorf("retention_months must be >= 0, got %d", c.RetentionMonths)
	}
	return nil
}

// Rating cache sizing. Entries are tiny; capacity mostly bounds pathological
// catalogs.
const (
	ratingCacheCapacity = 4096
	ratingCacheTTL      = 5 * time.Minute
)

// Store is a BadgerDB-backed history and rating store. Rating reads go
// through an in-process LRU so a daily selection pass does not hit badger
// once per catalog item.
type Store struct {
	db        *badger.DB
	logger    zerolog.Logger
	retention int
	ratings   *ratingCache
}

// Compile-time interface assertions.
var (
	_ engine.HistoryStore   = (*Store)(nil)
	_ engine.RatingProvider = (*Store)(nil)
)

// Open opens (or creates) the store at the configured location.
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("history config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for history: %w", err)
	}

	return &Store{
		db:        db,
		logger:    logger.With().Str("component", "history").Logger(),
		retention: cfg.RetentionMonths,
		ratings:   newRatingCache(ratingCacheCapacity, ratingCacheTTL),
	}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func histKey(userID, kind, month string) []byte {
	return []byte(histKeyPrefix + userID + ":" + kind + ":" + month)
}

func ratingKey(userID, itemID string) []byte {
	return []byte(ratingKeyPrefix + userID + ":" + itemID)
}

// LoadMonth returns the month bucket for (user, kind, month). A missing or
// unparseable bucket comes back empty rather than as an error: selection must
// keep working when history is damaged, at worst repeating content.
func (s *Store) LoadMonth(_ context.Context, userID, kind, month string) (engine.History, error) {
	out := engine.History{Month: month}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(histKey(userID, kind, month))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get history bucket: %w", err)
		}

		return item.Value(func(val []byte) error {
			var h engine.History
			if err := json.Unmarshal(val, &h); err != nil {
				s.logger.Warn().Err(err).
					Str("user", userID).
					Str("kind", kind).
					Str("month", month).
					Msg("corrupt history bucket, treating as empty")
				return nil
			}
			out = h
			return nil
		})
	})
	metrics.RecordHistoryOperation("load", err)
	if err != nil {
		return engine.History{Month: month}, err
	}

	out.Month = month
	return out, nil
}

// AppendShown records an item as shown for (user, kind, month). Appending an
// ID already in the bucket is a no-op.
func (s *Store) AppendShown(_ context.Context, userID, kind, month, itemID string) error {
	key := histKey(userID, kind, month)

	err := s.db.Update(func(txn *badger.Txn) error {
		h := engine.History{Month: month}

		item, err := txn.Get(key)
		if err == nil {
			verr := item.Value(func(val []byte) error {
				if uerr := json.Unmarshal(val, &h); uerr != nil {
					// Corrupt bucket: start over rather than fail the write.
					h = engine.History{Month: month}
				}
				return nil
			})
			if verr != nil {
				return fmt.Errorf("read history bucket: %w", verr)
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get history bucket: %w", err)
		}

		if h.Contains(itemID) {
			return nil
		}
		h.Month = month
		h.ShownIDs = append(h.ShownIDs, itemID)

		data, err := json.Marshal(h)
		if err != nil {
			return fmt.Errorf("marshal history bucket: %w", err)
		}
		return txn.Set(key, data)
	})
	metrics.RecordHistoryOperation("append", err)
	return err
}

// SetRating stores the user's reaction to a prompt or date idea.
func (s *Store) SetRating(_ context.Context, userID, itemID string, rating catalog.Rating) error {
	if !rating.Valid() {
		return fmt.Errorf("invalid rating %q", rating)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(ratingKey(userID, itemID), []byte(rating))
	})
	if err != nil {
		return err
	}

	s.ratings.put(string(ratingKey(userID, itemID)), rating, true)
	return nil
}

// Rating returns the stored reaction for an item, if any.
func (s *Store) Rating(_ context.Context, userID, itemID string) (catalog.Rating, bool, error) {
	cacheKey := string(ratingKey(userID, itemID))
	if rating, rated, hit := s.ratings.get(cacheKey); hit {
		return rating, rated, nil
	}

	var rating catalog.Rating

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(ratingKey(userID, itemID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rating = catalog.Rating(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		s.ratings.put(cacheKey, "", false)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get rating: %w", err)
	}
	if !rating.Valid() {
		return "", false, nil
	}
	s.ratings.put(cacheKey, rating, true)
	return rating, true, nil
}

// PromptRatings returns the stored rating for each of the given item IDs.
// Lookup failures are treated as unrated: a damaged rating never blocks a
// scoring pass.
func (s *Store) PromptRatings(userID string, ids []string) map[string]catalog.Rating {
	metrics.RatingLookups.Inc()
	out := make(map[string]catalog.Rating, len(ids))

	var misses []string
	for _, id := range ids {
		rating, rated, hit := s.ratings.get(string(ratingKey(userID, id)))
		if !hit {
			misses = append(misses, id)
			continue
		}
		if rated {
			out[id] = rating
		}
	}
	if len(misses) == 0 {
		return out
	}

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range misses {
			cacheKey := string(ratingKey(userID, id))

			item, err := txn.Get(ratingKey(userID, id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				s.ratings.put(cacheKey, "", false)
				continue
			}
			if err != nil {
				continue
			}

			var rating catalog.Rating
			if verr := item.Value(func(val []byte) error {
				rating = catalog.Rating(val)
				return nil
			}); verr != nil {
				continue
			}
			if rating.Valid() {
				out[id] = rating
				s.ratings.put(cacheKey, rating, true)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("rating lookup failed, scoring unrated")
		return nil
	}

	return out
}

// PruneMonths deletes history buckets older than the retention window,
// measured back from now. Returns how many buckets were removed.
func (s *Store) PruneMonths(_ context.Context, now time.Time) (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	// Month keys sort lexicographically, so a string cutoff suffices.
	cutoff := engine.MonthKey(now.AddDate(0, -s.retention, 0))

	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(histKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			parts := strings.Split(string(key), ":")
			month := parts[len(parts)-1]
			if month < cutoff {
				stale = append(stale, key)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan history buckets: %w", err)
	}

	count := 0
	for _, key := range stale {
		derr := s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		})
		if derr != nil {
			s.logger.Warn().Err(derr).Str("key", string(key)).Msg("prune delete failed")
			continue
		}
		count++
	}

	if count > 0 {
		metrics.HistoryBucketsPruned.Add(float64(count))
		s.logger.Info().Int("pruned", count).Str("cutoff", cutoff).Msg("pruned stale history buckets")
	}
	return count, nil
}

// RunGC runs BadgerDB value-log garbage collection. badger.ErrNoRewrite
// (nothing to reclaim) is normal and reported as nil.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}
