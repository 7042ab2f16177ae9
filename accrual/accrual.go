// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual computes time weighted staking rewards without iterating over participants.
//
// A Pool folds every funded distribution into a cumulative fixed-point index recorded per
// day. A Position settles lazily against that history: whenever it is touched, the index
// delta since its last sync is multiplied by the weight it held over that delta. Lockup
// bonuses expire through day keyed decay schedules kept both on the pool and on each
// position.
//
// The package never authenticates callers, moves tokens or persists anything. The caller
// serializes access to a pool and its positions and stores them after each operation.
package accrual

import (
	"github.com/holiman/uint256"
)

const (
	// PoolDecayCapacity bounds the live decay days of a pool. Lockups last at most 365 days
	// and decays due today are consumed before new ones are scheduled.
	PoolDecayCapacity = 365
	// IndexHistoryCapacity bounds the number of distribution days a pool can record.
	IndexHistoryCapacity = 1095
	// PositionDecayCapacity bounds the live decay days of a single position.
	PositionDecayCapacity = 50
)

var precision = uint256.NewInt(10_000_000_000_000_000)

// Precision returns the fixed-point scale of the cumulative index.
func Precision() *uint256.Int {
	return new(uint256.Int).Set(precision)
}

// snapshot captures a pool and the positions an operation touches so a failed
// operation leaves no partial mutation behind.
type snapshot struct {
	pool      *Pool
	poolCopy  *Pool
	positions []*Position
	copies    []*Position
}

func (p *Pool) snapshot(positions ...*Position) *snapshot {
	s := &snapshot{pool: p, poolCopy: p.Clone()}
	for _, m := range positions {
		if m == nil {
			continue
		}
		s.positions = append(s.positions, m)
		s.copies = append(s.copies, m.Clone())
	}
	return s
}

func (s *snapshot) restore() {
	*s.pool = *s.poolCopy
	for i, m := range s.positions {
		*m = *s.copies[i]
	}
}

// atomically runs fn and rolls back the pool and positions if it fails.
func (p *Pool) atomically(fn func() error, positions ...*Position) error {
	snap := p.snapshot(positions...)
	if err := fn(); err != nil {
		snap.restore()
		return err
	}
	return nil
}

// distinct drops a delegate that is the position itself.
func distinct(m, delegate *Position) *Position {
	if delegate == m {
		return nil
	}
	return delegate
}
