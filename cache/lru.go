// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache keeps decoded records in memory in front of the kv store.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// Stats counts lookups served by GetOrLoad.
type Stats struct {
	Hits, Misses int64
}

// HitRate is in per mille.
func (s Stats) HitRate() int64 {
	if lookups := s.Hits + s.Misses; lookups > 0 {
		return s.Hits * 1000 / lookups
	}
	return 0
}

// LRU is a typed view over golang-lru that tracks its hit rate.
type LRU[K comparable, V any] struct {
	inner        *lru.Cache
	hits, misses atomic.Int64
	lastRate     atomic.Int64
}

// NewLRU creates a cache holding at most maxSize entries, maxSize must be positive.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	inner, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{inner: inner}, nil
}

// GetOrLoad returns the cached value of key, calling load on a miss.
// Failed loads are not cached.
func (l *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if v, ok := l.inner.Get(key); ok {
		l.hits.Add(1)
		return v.(V), nil
	}
	l.misses.Add(1)

	v, err := load(key)
	if err != nil {
		var zero V
		return zero, err
	}
	l.inner.Add(key, v)
	return v, nil
}

func (l *LRU[K, V]) Add(key K, value V)  { l.inner.Add(key, value) }
func (l *LRU[K, V]) Remove(key K)        { l.inner.Remove(key) }
func (l *LRU[K, V]) Contains(key K) bool { return l.inner.Contains(key) }
func (l *LRU[K, V]) Len() int            { return l.inner.Len() }
func (l *LRU[K, V]) Purge()              { l.inner.Purge() }

// Stats returns the lookup counters, and whether the hit rate moved since the previous call.
func (l *LRU[K, V]) Stats() (Stats, bool) {
	s := Stats{Hits: l.hits.Load(), Misses: l.misses.Load()}
	rate := s.HitRate()
	return s, l.lastRate.Swap(rate) != rate
}
