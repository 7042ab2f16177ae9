// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewards/accrual/lockup"
	"github.com/vechain/rewards/accrual/reverts"
)

type fuzzOp struct {
	Kind    uint8
	Who     uint8
	Other   uint8
	Amount  uint16
	Period  uint8
	Advance uint32
}

// lot is a lockup as the staking contract tracks it. delegate is -1 when the lot
// is not delegated.
type lot struct {
	owner    int
	delegate int
	period   lockup.Period
	start    uint64
	amount   uint64
}

func (l *lot) expiry(t *testing.T) uint64 {
	if l.period == lockup.Flex {
		return 0
	}
	end, err := l.period.EndTimestamp(l.start)
	require.NoError(t, err)
	return end
}

// locked reports whether the lot still carries its bonus at now.
func (l *lot) locked(t *testing.T, now uint64) bool { return now < l.expiry(t) }

func (l *lot) weight(t *testing.T, now uint64) uint64 {
	if l.locked(t, now) {
		return l.amount * l.period.Multiplier()
	}
	return l.amount
}

func pickLot(lots []*lot, owner int, n uint8, keep func(*lot) bool) *lot {
	var mine []*lot
	for _, l := range lots {
		if l.owner == owner && l.amount > 0 && keep(l) {
			mine = append(mine, l)
		}
	}
	if len(mine) == 0 {
		return nil
	}
	return mine[int(n)%len(mine)]
}

// checkBalance settles copies of everything at now and verifies the pool
// total matches the positions and the pool schedule mirrors theirs.
func checkBalance(t *testing.T, p *Pool, positions []*Position, now uint64) {
	pool := p.Clone()
	require.NoError(t, pool.consumeDecays(lockup.DayFloor(now)))

	var (
		sum    uint64
		decays = map[uint64]uint64{}
	)
	for _, m := range positions {
		c := m.Clone()
		require.NoError(t, c.refresh(pool.indexHistory, now))
		sum += c.share + c.stakeFromOthers
		for _, e := range c.Decays() {
			decays[e.Day] += e.Value
		}
	}
	assert.Equal(t, pool.totalShare, sum)

	pooled := map[uint64]uint64{}
	for _, e := range pool.ScheduledDecays() {
		pooled[e.Day] = e.Value
	}
	assert.Equal(t, pooled, decays)
}

// checkLots verifies every settled position holds the weight of its own lots and
// the native amount of the lots delegated to it.
func checkLots(t *testing.T, p *Pool, positions []*Position, lots []*lot, now uint64) {
	pool := p.Clone()
	require.NoError(t, pool.consumeDecays(lockup.DayFloor(now)))

	for i, m := range positions {
		c := m.Clone()
		require.NoError(t, c.refresh(pool.indexHistory, now))

		var share, others uint64
		for _, l := range lots {
			if l.owner == i {
				share += l.weight(t, now)
			}
			if l.delegate == i {
				others += l.amount
			}
		}
		assert.Equal(t, share, c.share, "position %d share", i)
		assert.Equal(t, others, c.stakeFromOthers, "position %d stake from others", i)
	}
}

func TestRandomOperationsKeepBalance(t *testing.T) {
	const funded = 1_000_000

	for seed := int64(0); seed < 20; seed++ {
		var ops []fuzzOp
		fuzz.NewWithSeed(seed).NilChance(0).NumElements(50, 200).Fuzz(&ops)

		p := fundedPool(t, funded, 400)
		positions := []*Position{NewPosition(), NewPosition(), NewPosition()}
		at := func(i int) *Position {
			if i < 0 {
				return nil
			}
			return positions[i]
		}
		var (
			lots    []*lot
			claimed uint64
			now     = t0
		)

		for _, op := range ops {
			now += uint64(op.Advance) % (3 * day)
			who := int(op.Who) % len(positions)
			m := positions[who]
			amount := uint64(op.Amount%1000) + 1
			period := lockup.Periods[int(op.Period)%len(lockup.Periods)]
			delegate := int(op.Other)%(len(positions)+1) - 1
			if delegate == who {
				delegate = -1
			}

			switch op.Kind % 7 {
			case 0:
				err := p.Deposit(m, amount, period, now, at(delegate))
				if err != nil {
					require.ErrorIs(t, err, reverts.ErrCapacityExceeded)
					break
				}
				lots = append(lots, &lot{owner: who, delegate: delegate, period: period, start: now, amount: amount})
			case 1:
				l := pickLot(lots, who, op.Other, func(l *lot) bool { return !l.locked(t, now) })
				if l == nil {
					break
				}
				x := min(amount, l.amount)
				require.NoError(t, p.Withdraw(m, x, now, at(l.delegate)))
				l.amount -= x
			case 2:
				if rewards, err := p.RewardsToDistribute(now); err == nil && p.totalShare > 0 {
					_ = p.Distribute(rewards, now)
				}
			case 3:
				got, err := p.Claim(m, now)
				require.NoError(t, err)
				claimed += got
			case 4:
				// slashing leaves delegated power untouched, so only own lots are slashed
				l := pickLot(lots, who, op.Other, func(l *lot) bool { return l.delegate < 0 })
				if l == nil {
					break
				}
				x := min(amount, l.amount)
				if l.locked(t, now) {
					require.NoError(t, p.Slash(m, x*l.period.Multiplier(), x, l.expiry(t), now))
				} else {
					require.NoError(t, p.Slash(m, x, x, 0, now))
				}
				l.amount -= x
			case 5:
				l := pickLot(lots, who, op.Other, func(*lot) bool { return true })
				if l == nil {
					break
				}
				extra := amount % 3 * amount
				err := p.ExtendStake(m, Extension{
					OldPeriod:   l.period,
					NewPeriod:   period,
					OldStart:    l.start,
					BaseAmount:  l.amount,
					ExtraAmount: extra,
				}, now, at(l.delegate))
				if err != nil {
					require.ErrorIs(t, err, reverts.ErrCapacityExceeded)
					break
				}
				l.period, l.start, l.amount = period, now, l.amount+extra
			case 6:
				l := pickLot(lots, who, op.Period, func(l *lot) bool { return l.delegate != delegate })
				if l == nil {
					break
				}
				require.NoError(t, p.ChangeDelegate(m, l.amount, at(l.delegate), at(delegate), now))
				l.delegate = delegate
			}
			checkBalance(t, p, positions, now)
			checkLots(t, p, positions, lots, now)
		}

		var owed uint64
		for _, m := range positions {
			pending, err := p.PendingRewards(m, now+day)
			require.NoError(t, err)
			owed += pending
		}
		assert.LessOrEqual(t, claimed+owed+p.TokensAvailableForDistribution(), uint64(funded), "seed %d", seed)
	}
}
