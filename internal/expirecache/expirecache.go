// Copyright (c) 2026 The NNAnalyzer Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expirecache is the host-reusable expiring cache provider spec §5 describes as "out of
// scope" for the analyzer core itself: a conventional TTL map with a purge timer, offered here so
// a host embedding nnanalyzer (e.g. an IDE integration holding one Cache per open document) can
// reuse the same cache shape the rest of this repo's per-semantic-model memoization is built on,
// without pulling in the full `flow`/`classify` dependency graph. It is not wired into the
// analyzer's own Run path - per-pass memoization there is unbounded-lifetime and needs no TTL,
// see flow.Analysis and annotation.Reader's own caches.
package expirecache

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// lockTimeout is how long Get/Set will wait to acquire the cache mutex before giving up.
const lockTimeout = 1000 * time.Millisecond

// touchTimeout is how long Touch (a sliding-expiry refresh) will wait to acquire the mutex before
// giving up - shorter than lockTimeout because a missed touch merely ages an entry out sooner, it
// does not lose data.
const touchTimeout = 500 * time.Millisecond

// slider holds the sliding-expiry bookkeeping for one key, kept in its own map (rather than
// alongside the value) so that Touch need not know the value's type.
type slider struct {
	deadline time.Time
	ttl      time.Duration
}

// Cache is a TTL map guarded by a try-acquire mutex: every operation gives up rather than
// blocking indefinitely if it cannot acquire the lock within its timeout, so a wedged purge tick
// never stalls a caller.
type Cache[K comparable, V any] struct {
	// id uniquely identifies this Cache instance, so a host embedding several (e.g. one per open
	// document) can tell them apart in logs and debug dumps without relying on pointer addresses.
	id      uuid.UUID
	mu      chan struct{} // capacity-1 semaphore used as a try-lockable mutex
	values  map[K]V
	sliders map[K]*slider

	stop chan struct{}
	once sync.Once
}

// New returns a Cache whose purge goroutine wakes every interval to remove entries whose sliding
// deadline has passed. Call Close to stop the purge goroutine.
func New[K comparable, V any](interval time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		id:      uuid.New(),
		mu:      make(chan struct{}, 1),
		values:  make(map[K]V),
		sliders: make(map[K]*slider),
		stop:    make(chan struct{}),
	}
	c.mu <- struct{}{}

	go c.purgeLoop(interval)
	return c
}

// ID returns the Cache's unique identifier, for host logging/debugging.
func (c *Cache[K, V]) ID() uuid.UUID { return c.id }

// tryLock attempts to acquire the mutex within timeout, returning false if it could not.
func (c *Cache[K, V]) tryLock(timeout time.Duration) bool {
	select {
	case <-c.mu:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (c *Cache[K, V]) unlock() {
	c.mu <- struct{}{}
}

// Set inserts key with the given value and time-to-live. Returns false if the mutex could not be
// acquired within lockTimeout, in which case the cache is left unchanged.
func (c *Cache[K, V]) Set(key K, value V, ttl time.Duration) bool {
	if !c.tryLock(lockTimeout) {
		return false
	}
	defer c.unlock()

	c.values[key] = value
	c.sliders[key] = &slider{deadline: time.Now().Add(ttl), ttl: ttl}
	return true
}

// Get returns the value for key and whether it was present and the lock was acquired in time.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	if !c.tryLock(lockTimeout) {
		return zero, false
	}
	defer c.unlock()

	v, ok := c.values[key]
	if !ok {
		return zero, false
	}
	return v, true
}

// Touch slides key's expiry deadline forward by its original TTL, proving the entry is still
// live. It uses the shorter touchTimeout: a missed touch only makes the entry expire sooner, so
// it is not worth blocking as long as Set/Get will.
func (c *Cache[K, V]) Touch(key K) bool {
	if !c.tryLock(touchTimeout) {
		return false
	}
	defer c.unlock()

	s, ok := c.sliders[key]
	if !ok {
		return false
	}
	s.deadline = time.Now().Add(s.ttl)
	return true
}

// Remove deletes key from the cache, returning false only if the mutex could not be acquired.
func (c *Cache[K, V]) Remove(key K) bool {
	if !c.tryLock(lockTimeout) {
		return false
	}
	defer c.unlock()

	delete(c.values, key)
	delete(c.sliders, key)
	return true
}

// Close stops the purge goroutine. Safe to call more than once.
func (c *Cache[K, V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// purgeLoop fires every interval and removes entries whose slider deadline has passed. If the
// mutex cannot be acquired within the tick, the purge is skipped entirely and retried next
// interval - per spec §5, there is no catch-up accumulation of missed purges.
func (c *Cache[K, V]) purgeLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.purgeOnce()
		}
	}
}

// purgeOnce removes every entry whose slider deadline has passed. Deletion happens directly
// inside the probing loop rather than through a separately accumulated list of keys-to-remove -
// spec §9's "Open questions" calls out the teacher's unused removal-keys list as dead code that
// should not be carried forward, so this does not build one.
func (c *Cache[K, V]) purgeOnce() {
	if !c.tryLock(lockTimeout) {
		return
	}
	defer c.unlock()

	now := time.Now()
	for key, s := range c.sliders {
		if now.After(s.deadline) {
			delete(c.values, key)
			delete(c.sliders, key)
		}
	}
}
