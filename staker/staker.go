// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staker hosts a reward pool: it serializes operations, supplies the time,
// and loads and commits the records each operation touches.
package staker

import (
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/vechain/rewards/accrual"
	"github.com/vechain/rewards/accrual/lockup"
	"github.com/vechain/rewards/accrual/reverts"
	"github.com/vechain/rewards/log"
	"github.com/vechain/rewards/metrics"
	"github.com/vechain/rewards/store"
	"github.com/vechain/rewards/types"
)

var (
	logger = log.WithContext("pkg", "staker")

	metricOps             = metrics.LazyLoadCounterVec("staker_operations_count", []string{"op", "status"})
	metricOpDuration      = metrics.LazyLoadHistogramVec("staker_operation_duration_ms", []string{"op"}, metrics.BucketOps)
	metricTotalShare      = metrics.LazyLoadGauge("pool_total_share")
	metricTokensAvailable = metrics.LazyLoadGauge("pool_tokens_available")
	metricDistributed     = metrics.LazyLoadCounter("rewards_distributed_count")
	metricClaimed         = metrics.LazyLoadCounter("rewards_claimed_count")
)

var (
	ErrAlreadyInitialized = errors.New("pool already initialized")
	ErrPositionExists     = errors.New("position already exists")
)

// Staker runs accrual operations against stored records.
type Staker struct {
	mu    sync.Mutex
	store *store.Store
	clock clockwork.Clock
}

// New creates a staker over the store, reading the time from clock.
func New(s *store.Store, clock clockwork.Clock) *Staker {
	return &Staker{store: s, clock: clock}
}

func (s *Staker) now() uint64 {
	return uint64(s.clock.Now().Unix())
}

// session is the scope of a single operation.
type session struct {
	store   *store.Store
	pool    *accrual.Pool
	now     uint64
	changes *store.Changes
	loaded  map[types.Address]*accrual.Position
}

// position loads addr once per session and schedules it for commit.
func (x *session) position(addr types.Address) (*accrual.Position, error) {
	if m, ok := x.loaded[addr]; ok {
		return m, nil
	}
	m, err := x.store.Position(addr)
	if err != nil {
		return nil, err
	}
	x.loaded[addr] = m
	x.changes.SetPosition(addr, m)
	return m, nil
}

func (x *session) delegate(addr *types.Address) (*accrual.Position, error) {
	if addr == nil {
		return nil, nil
	}
	return x.position(*addr)
}

func status(err error) string {
	if err == nil {
		return "ok"
	}
	if reverts.IsRevertErr(err) {
		return reverts.KindOf(err).String()
	}
	return "error"
}

// gaugeValue narrows v for metrics, saturating at the largest int64.
func gaugeValue(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// apply runs fn on freshly loaded records and commits them if it succeeds.
func (s *Staker) apply(op string, fn func(x *session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	x := &session{
		store:   s.store,
		now:     s.now(),
		changes: store.NewChanges(),
		loaded:  make(map[types.Address]*accrual.Position),
	}
	err := func() error {
		pool, err := s.store.Pool()
		if err != nil {
			return err
		}
		x.pool = pool
		x.changes.SetPool(pool)
		if err := fn(x); err != nil {
			return err
		}
		return s.store.Commit(x.changes)
	}()

	metricOps().AddWithLabel(1, map[string]string{"op": op, "status": status(err)})
	metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	if err != nil {
		logger.Warn("operation failed", "op", op, "err", err)
		return errors.Wrap(err, op)
	}

	metricTotalShare().Set(gaugeValue(x.pool.TotalShare()))
	metricTokensAvailable().Set(gaugeValue(x.pool.TokensAvailableForDistribution()))
	logger.Debug("operation applied", "op", op, "now", x.now, "positions", len(x.loaded))
	return nil
}

// Init creates an empty pool.
func (s *Staker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	has, err := s.store.HasPool()
	if err != nil {
		return err
	}
	if has {
		return ErrAlreadyInitialized
	}
	if err := s.store.Commit(store.NewChanges().SetPool(accrual.NewPool())); err != nil {
		return err
	}
	logger.Info("pool initialized")
	return nil
}

// OpenPosition creates an empty position for addr.
func (s *Staker) OpenPosition(addr types.Address) error {
	return s.apply("open", func(x *session) error {
		has, err := x.store.HasPosition(addr)
		if err != nil {
			return err
		}
		if has {
			return ErrPositionExists
		}
		x.changes.SetPosition(addr, accrual.NewPosition())
		return nil
	})
}

// Deposit stakes amount for addr, optionally delegating its earning power.
func (s *Staker) Deposit(addr types.Address, amount uint64, period lockup.Period, delegate *types.Address) error {
	return s.apply("deposit", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		d, err := x.delegate(delegate)
		if err != nil {
			return err
		}
		return x.pool.Deposit(m, amount, period, x.now, d)
	})
}

// Withdraw removes amount of weighted stake from addr.
func (s *Staker) Withdraw(addr types.Address, amount uint64, delegate *types.Address) error {
	return s.apply("withdraw", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		d, err := x.delegate(delegate)
		if err != nil {
			return err
		}
		return x.pool.Withdraw(m, amount, x.now, d)
	})
}

// ExtendStake restakes a lockup of addr.
func (s *Staker) ExtendStake(addr types.Address, ext accrual.Extension, delegate *types.Address) error {
	return s.apply("extend", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		d, err := x.delegate(delegate)
		if err != nil {
			return err
		}
		return x.pool.ExtendStake(m, ext, x.now, d)
	})
}

// Slash penalises addr, see accrual.Pool.Slash for the meaning of expiry.
func (s *Staker) Slash(addr types.Address, weighted, native, expiry uint64) error {
	return s.apply("slash", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		return x.pool.Slash(m, weighted, native, expiry, x.now)
	})
}

// DecreaseRewards lowers the earning power of addr.
func (s *Staker) DecreaseRewards(addr types.Address, amount uint64) error {
	return s.apply("decrease", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		return x.pool.DecreaseRewards(m, amount, x.now)
	})
}

// ChangeDelegate moves the delegated stake of addr between delegates.
func (s *Staker) ChangeDelegate(addr types.Address, amount uint64, oldDelegate, newDelegate *types.Address) error {
	return s.apply("delegate", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		from, err := x.delegate(oldDelegate)
		if err != nil {
			return err
		}
		to, err := x.delegate(newDelegate)
		if err != nil {
			return err
		}
		return x.pool.ChangeDelegate(m, amount, from, to, x.now)
	})
}

// Refresh settles addr without any other change.
func (s *Staker) Refresh(addr types.Address) error {
	return s.apply("refresh", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		return x.pool.Refresh(m, x.now)
	})
}

// Claim pays out everything addr has accrued and returns the amount.
func (s *Staker) Claim(addr types.Address) (amount uint64, err error) {
	err = s.apply("claim", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		amount, err = x.pool.Claim(m, x.now)
		return err
	})
	if err != nil {
		return 0, err
	}
	metricClaimed().Add(gaugeValue(amount))
	return amount, nil
}

// ClosePosition removes an emptied position.
func (s *Staker) ClosePosition(addr types.Address) error {
	return s.apply("close", func(x *session) error {
		m, err := x.position(addr)
		if err != nil {
			return err
		}
		if err := x.pool.ClosePosition(m, x.now); err != nil {
			return err
		}
		x.changes.DeletePosition(addr)
		return nil
	})
}

// FillVault funds the pool and sets the distribution end.
func (s *Staker) FillVault(amount uint64, endsAt uint64) error {
	return s.apply("fill", func(x *session) error {
		return x.pool.FillVault(amount, endsAt, x.now)
	})
}

// Distribute folds today's slice of the vault into the index and returns it.
// A repeated call on the same day distributes nothing but still consumes due decays.
func (s *Staker) Distribute() (amount uint64, err error) {
	err = s.apply("distribute", func(x *session) error {
		var rewards uint64
		_, done := x.pool.IndexAt(x.now)
		if !done {
			r, err := x.pool.RewardsToDistribute(x.now)
			if err != nil {
				return err
			}
			rewards = r
		}
		if err := x.pool.Distribute(rewards, x.now); err != nil {
			return err
		}
		if _, recorded := x.pool.IndexAt(x.now); recorded && !done {
			amount = rewards
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	metricDistributed().Add(gaugeValue(amount))
	if amount > 0 {
		logger.Info("rewards distributed", "amount", amount)
	}
	return amount, nil
}

// RewardsToDistribute returns what Distribute would hand out now.
func (s *Staker) RewardsToDistribute() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.store.Pool()
	if err != nil {
		return 0, err
	}
	return pool.RewardsToDistribute(s.now())
}

// Pool returns a copy of the stored pool.
func (s *Staker) Pool() (*accrual.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Pool()
}

// Position returns a copy of the stored position of addr together with the
// rewards it could claim now.
func (s *Staker) Position(addr types.Address) (*accrual.Position, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.store.Pool()
	if err != nil {
		return nil, 0, err
	}
	m, err := s.store.Position(addr)
	if err != nil {
		return nil, 0, err
	}
	pending, err := pool.PendingRewards(m, s.now())
	if err != nil {
		return nil, 0, err
	}
	return m, pending, nil
}

// Positions visits every stored position in address order.
func (s *Staker) Positions(fn func(types.Address, *accrual.Position) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Positions(fn)
}
