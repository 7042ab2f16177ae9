// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package store persists the reward pool and its positions in a kv store.
package store

import (
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/rewards/accrual"
	"github.com/vechain/rewards/cache"
	"github.com/vechain/rewards/kv"
	"github.com/vechain/rewards/log"
	"github.com/vechain/rewards/metrics"
	"github.com/vechain/rewards/types"
)

var (
	logger = log.WithContext("pkg", "store")

	metricCommitDuration = metrics.LazyLoadHistogram("store_commit_duration_ms", metrics.BucketOps)
	metricCacheStats     = metrics.LazyLoadGaugeVec("store_cache_hit_miss_count", []string{"cache", "type"})

	poolBucket     = kv.Bucket("p")
	positionBucket = kv.Bucket("m")
	poolKey        = []byte("pool")
)

var errNotFound = errors.New("not found")

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Cause(err) == errNotFound
}

// Store reads and writes accrual records. Reads always return private copies.
type Store struct {
	db            kv.Store
	pool          kv.Store
	positions     kv.Store
	poolCache     *cache.LRU[struct{}, *accrual.Pool]
	positionCache *cache.LRU[types.Address, *accrual.Position]
}

// New creates a store over db caching up to cacheSize decoded positions.
func New(db kv.Store, cacheSize int) (*Store, error) {
	poolCache, err := cache.NewLRU[struct{}, *accrual.Pool](1)
	if err != nil {
		return nil, errors.Wrap(err, "create pool cache")
	}
	positionCache, err := cache.NewLRU[types.Address, *accrual.Position](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create position cache")
	}
	return &Store{
		db:            db,
		pool:          poolBucket.NewStore(db),
		positions:     positionBucket.NewStore(db),
		poolCache:     poolCache,
		positionCache: positionCache,
	}, nil
}

// decode reads key from src into a fresh T.
func decode[T any](src kv.Getter, key []byte) (*T, error) {
	data, err := src.Get(key)
	if err != nil {
		if src.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, err
	}
	v := new(T)
	if err := rlp.DecodeBytes(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

func reportCacheStats(name string, stats cache.Stats, changed bool) {
	if !changed {
		return
	}
	metricCacheStats().SetWithLabel(stats.Hits, map[string]string{"cache": name, "type": "hit"})
	metricCacheStats().SetWithLabel(stats.Misses, map[string]string{"cache": name, "type": "miss"})
}

// Pool loads the pool.
func (s *Store) Pool() (*accrual.Pool, error) {
	p, err := s.poolCache.GetOrLoad(struct{}{}, func(struct{}) (*accrual.Pool, error) {
		return decode[accrual.Pool](s.pool, poolKey)
	})
	if err != nil {
		return nil, errors.Wrap(err, "load pool")
	}
	return p.Clone(), nil
}

// HasPool reports whether the pool was initialized.
func (s *Store) HasPool() (bool, error) {
	if s.poolCache.Contains(struct{}{}) {
		return true, nil
	}
	return s.pool.Has(poolKey)
}

// Position loads the position of addr.
func (s *Store) Position(addr types.Address) (*accrual.Position, error) {
	m, err := s.positionCache.GetOrLoad(addr, func(addr types.Address) (*accrual.Position, error) {
		return decode[accrual.Position](s.positions, addr.Bytes())
	})
	stats, changed := s.positionCache.Stats()
	reportCacheStats("position", stats, changed)
	if err != nil {
		return nil, errors.Wrapf(err, "load position %v", addr)
	}
	return m.Clone(), nil
}

// HasPosition reports whether addr has an open position.
func (s *Store) HasPosition(addr types.Address) (bool, error) {
	if s.positionCache.Contains(addr) {
		return true, nil
	}
	return s.positions.Has(addr.Bytes())
}

// Positions visits every stored position in address order until fn returns false.
func (s *Store) Positions(fn func(types.Address, *accrual.Position) bool) error {
	iter := s.positions.Iterate(kv.Range{})
	defer iter.Release()

	for iter.Next() {
		var m accrual.Position
		if err := rlp.DecodeBytes(iter.Value(), &m); err != nil {
			return errors.Wrap(err, "decode position")
		}
		if !fn(types.BytesToAddress(iter.Key()), &m) {
			break
		}
	}
	return iter.Error()
}

// Commit writes every change in one atomic batch.
func (s *Store) Commit(c *Changes) error {
	start := time.Now()
	batch := s.db.NewBatch()
	poolPutter := poolBucket.NewPutter(batch)
	positionPutter := positionBucket.NewPutter(batch)

	if c.pool != nil {
		data, err := rlp.EncodeToBytes(c.pool)
		if err != nil {
			return errors.Wrap(err, "encode pool")
		}
		if err := poolPutter.Put(poolKey, data); err != nil {
			return err
		}
	}
	for _, addr := range c.order {
		m := c.positions[addr]
		if m == nil {
			if err := positionPutter.Delete(addr.Bytes()); err != nil {
				return err
			}
			continue
		}
		data, err := rlp.EncodeToBytes(m)
		if err != nil {
			return errors.Wrapf(err, "encode position %v", addr)
		}
		if err := positionPutter.Put(addr.Bytes(), data); err != nil {
			return err
		}
	}

	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write batch")
	}

	if c.pool != nil {
		s.poolCache.Add(struct{}{}, c.pool.Clone())
	}
	for _, addr := range c.order {
		if m := c.positions[addr]; m != nil {
			s.positionCache.Add(addr, m.Clone())
		} else {
			s.positionCache.Remove(addr)
		}
	}

	metricCommitDuration().Observe(time.Since(start).Milliseconds())
	logger.Trace("committed", "positions", len(c.order), "ops", batch.Len())
	return nil
}
