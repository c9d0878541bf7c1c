// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package history

import (
	"sync"
	"time"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
)

// ratingEntry is a node in the rating cache's doubly-linked LRU list.
// rated=false entries cache the absence of a rating, which matters because
// every daily selection looks up the whole eligible pool and most items are
// unrated.
type ratingEntry struct {
	key       string
	rating    catalog.Rating
	rated     bool
	prev      *ratingEntry
	next      *ratingEntry
	expiresAt time.Time
}

// ratingCache is a thread-safe LRU with TTL in front of the badger rating
// keys. O(1) get, put, and eviction via a hashmap plus a doubly-linked list
// with sentinel head/tail. Writes go through SetRating, which updates the
// cache in place, so in-process reads never see stale ratings; the TTL only
// bounds staleness across multiple processes sharing one database.
type ratingCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*ratingEntry
	head     *ratingEntry
	tail     *ratingEntry
}

func newRatingCache(capacity int, ttl time.Duration) *ratingCache {
	if capacity <= 0 {
		capacity = 4096
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c := &ratingCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*ratingEntry, capacity),
		head:     &ratingEntry{},
		tail:     &ratingEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// get returns (rating, rated, hit). A hit with rated=false means "known
// unrated".
func (c *ratingCache) get(key string) (catalog.Rating, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return "", false, false
	}
	if time.Now().After(e.expiresAt) {
		c.unlink(e)
		delete(c.items, key)
		return "", false, false
	}
	c.moveToFront(e)
	return e.rating, e.rated, true
}

func (c *ratingCache) put(key string, rating catalog.Rating, rated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.rating = rating
		e.rated = rated
		e.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(e)
		return
	}

	e := &ratingEntry{
		key:       key,
		rating:    rating,
		rated:     rated,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.items[key] = e
	c.pushFront(e)

	if len(c.items) > c.capacity {
		lru := c.tail.prev
		c.unlink(lru)
		delete(c.items, lru.key)
	}
}

func (c *ratingCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *ratingCache) pushFront(e *ratingEntry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *ratingCache) unlink(e *ratingEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (c *ratingCache) moveToFront(e *ratingEntry) {
	c.unlink(e)
	c.pushFront(e)
}
