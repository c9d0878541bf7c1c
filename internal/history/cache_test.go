// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package history

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

func TestRatingCachePutGet(t *testing.T) {
	c := newRatingCache(10, time.Minute)

	if _, _, hit := c.get("k1"); hit {
		t.Fatal("unexpected hit on empty cache")
	}

	c.put("k1", catalog.RatingLove, true)
	rating, rated, hit := c.get("k1")
	if !hit || !rated || rating != catalog.RatingLove {
		t.Errorf("get = (%q, %v, %v), want (love, true, true)", rating, rated, hit)
	}
}

func TestRatingCacheNegativeEntry(t *testing.T) {
	c := newRatingCache(10, time.Minute)
	c.put("k1", "", false)

	rating, rated, hit := c.get("k1")
	if !hit {
		t.Fatal("expected hit for cached absence")
	}
	if rated || rating != "" {
		t.Errorf("get = (%q, %v), want unrated", rating, rated)
	}
}

func TestRatingCacheOverwrite(t *testing.T) {
	c := newRatingCache(10, time.Minute)
	c.put("k1", catalog.RatingLove, true)
	c.put("k1", catalog.RatingHate, true)

	rating, _, _ := c.get("k1")
	if rating != catalog.RatingHate {
		t.Errorf("rating = %q, want hate after overwrite", rating)
	}
	if c.len() != 1 {
		t.Errorf("len = %d, want 1", c.len())
	}
}

func TestRatingCacheEvictsLRU(t *testing.T) {
	c := newRatingCache(2, time.Minute)
	c.put("a", catalog.RatingLove, true)
	c.put("b", catalog.RatingNeutral, true)

	// Touch "a" so "b" becomes least recently used.
	c.get("a")
	c.put("c", catalog.RatingHate, true)

	if _, _, hit := c.get("b"); hit {
		t.Error("expected b to be evicted")
	}
	if _, _, hit := c.get("a"); !hit {
		t.Error("expected a to survive eviction")
	}
	if _, _, hit := c.get("c"); !hit {
		t.Error("expected c to be present")
	}
	if c.len() != 2 {
		t.Errorf("len = %d, want 2", c.len())
	}
}

func TestRatingCacheTTLExpiry(t *testing.T) {
	c := newRatingCache(10, 10*time.Millisecond)
	c.put("k1", catalog.RatingLove, true)

	time.Sleep(25 * time.Millisecond)
	if _, _, hit := c.get("k1"); hit {
		t.Error("expected entry to expire")
	}
}

func TestStoreServesRatingFromCache(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	if err := s.SetRating(ctx, "u1", "pr-001", catalog.RatingLove); err != nil {
		t.Fatalf("SetRating: %v", err)
	}

	// Delete behind the cache's back; the read should still hit the cache.
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(ratingKey("u1", "pr-001"))
	})
	if err != nil {
		t.Fatalf("raw delete: %v", err)
	}

	rating, ok, err := s.Rating(ctx, "u1", "pr-001")
	if err != nil {
		t.Fatalf("Rating: %v", err)
	}
	if !ok || rating != catalog.RatingLove {
		t.Errorf("Rating = (%q, %v), want cached love", rating, ok)
	}
}

func TestPromptRatingsPopulatesCache(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	if err := s.SetRating(ctx, "u1", "pr-001", catalog.RatingHate); err != nil {
		t.Fatalf("SetRating: %v", err)
	}

	got := s.PromptRatings("u1", []string{"pr-001", "pr-002"})
	if got["pr-001"] != catalog.RatingHate {
		t.Fatalf("PromptRatings = %v", got)
	}

	// Absence of pr-002 is now cached too.
	if _, _, hit := s.ratings.get(string(ratingKey("u1", "pr-002"))); !hit {
		t.Error("expected negative cache entry for pr-002")
	}
}
