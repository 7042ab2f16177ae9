// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewards/accrual/checked"
	"github.com/vechain/rewards/accrual/lockup"
	"github.com/vechain/rewards/accrual/reverts"
	"github.com/vechain/rewards/accrual/timeline"
)

// Pool is the aggregate accrual state shared by all positions.
type Pool struct {
	totalShare         uint64 // sum of live weighted stake plus delegated-in stake
	cumulativeIndex    *uint256.Int
	tokensAvailable    uint64
	distributionEndsAt uint64
	scheduledDecays    *timeline.Timeline[uint64]
	indexHistory       *timeline.Timeline[*uint256.Int]
}

func NewPool() *Pool {
	return &Pool{
		cumulativeIndex: new(uint256.Int),
		scheduledDecays: timeline.New[uint64](PoolDecayCapacity),
		indexHistory:    timeline.New[*uint256.Int](IndexHistoryCapacity),
	}
}

func (p *Pool) TotalShare() uint64 { return p.totalShare }

// CumulativeIndex returns a copy of the latest recorded index.
func (p *Pool) CumulativeIndex() *uint256.Int {
	return new(uint256.Int).Set(p.cumulativeIndex)
}

func (p *Pool) TokensAvailableForDistribution() uint64 { return p.tokensAvailable }

func (p *Pool) DistributionEndsAt() uint64 { return p.distributionEndsAt }

// ScheduledDecays returns the pending pool decays in ascending day order.
func (p *Pool) ScheduledDecays() []timeline.Entry[uint64] {
	return p.scheduledDecays.Entries()
}

// IndexHistory returns the recorded index per distribution day in ascending order.
func (p *Pool) IndexHistory() []timeline.Entry[*uint256.Int] {
	entries := p.indexHistory.Entries()
	for i := range entries {
		entries[i].Value = new(uint256.Int).Set(entries[i].Value)
	}
	return entries
}

// IndexAt returns the index recorded on exactly the given day.
func (p *Pool) IndexAt(day uint64) (*uint256.Int, bool) {
	v, ok := p.indexHistory.Get(lockup.DayFloor(day))
	if !ok {
		return nil, false
	}
	return new(uint256.Int).Set(v), true
}

// DecayAt returns the pool decay scheduled for the given day.
func (p *Pool) DecayAt(day uint64) (uint64, bool) {
	return p.scheduledDecays.Get(day)
}

func (p *Pool) Clone() *Pool {
	return &Pool{
		totalShare:         p.totalShare,
		cumulativeIndex:    new(uint256.Int).Set(p.cumulativeIndex),
		tokensAvailable:    p.tokensAvailable,
		distributionEndsAt: p.distributionEndsAt,
		scheduledDecays:    p.scheduledDecays.Clone(),
		indexHistory:       p.indexHistory.Clone(),
	}
}

// consumeDecays drops every pool decay due on or before day from the total share.
func (p *Pool) consumeDecays(day uint64) error {
	return p.scheduledDecays.ConsumeUpTo(day, func(_ uint64, amount uint64) (err error) {
		p.totalShare, err = checked.Sub(p.totalShare, amount)
		return
	})
}

// Distribute records rewards spread over the current total share as today's index.
// Only the first distribution of a day counts, later ones succeed without effect.
func (p *Pool) Distribute(rewards uint64, now uint64) error {
	return p.atomically(func() error {
		if p.totalShare == 0 {
			return reverts.ErrNoDeposits
		}
		day := lockup.DayFloor(now)
		if err := p.consumeDecays(day); err != nil {
			return err
		}
		if p.totalShare == 0 {
			return reverts.ErrNoDeposits
		}
		if p.indexHistory.Has(day) {
			return nil
		}

		delta, err := checked.MulDiv(uint256.NewInt(rewards), precision, uint256.NewInt(p.totalShare))
		if err != nil {
			return err
		}
		index, err := checked.Add128(p.cumulativeIndex, delta)
		if err != nil {
			return err
		}
		if err := p.indexHistory.Set(day, index); err != nil {
			return err
		}
		p.cumulativeIndex = index
		p.tokensAvailable, err = checked.Sub(p.tokensAvailable, rewards)
		return err
	})
}

// RewardsToDistribute returns the even daily slice of the vault left until the
// distribution end. Once the end is reached the whole vault is due.
func (p *Pool) RewardsToDistribute(now uint64) (uint64, error) {
	if p.distributionEndsAt <= now {
		return p.tokensAvailable, nil
	}
	daysLeft := (p.distributionEndsAt - now) / lockup.SecondsPerDay
	if daysLeft == 0 {
		daysLeft = 1
	}

	perDay, err := checked.MulDiv(uint256.NewInt(p.tokensAvailable), precision, uint256.NewInt(daysLeft))
	if err != nil {
		return 0, err
	}
	rewards, err := checked.Div128(perDay, precision)
	if err != nil {
		return 0, err
	}
	return checked.ToUint64(rewards)
}

// FillVault adds amount to the vault and moves the distribution end to the day of
// newEndsAt. The end never moves backwards.
func (p *Pool) FillVault(amount uint64, newEndsAt uint64, now uint64) error {
	return p.atomically(func() error {
		if amount == 0 {
			return reverts.ErrRewardsMustBeGreaterThanZero
		}
		end := lockup.DayFloor(newEndsAt)
		if end < lockup.DayFloor(now) {
			return reverts.ErrDistributionInThePast
		}
		if _, err := checked.Sub(end, p.distributionEndsAt); err != nil {
			return err
		}

		var err error
		if p.tokensAvailable, err = checked.Add(p.tokensAvailable, amount); err != nil {
			return err
		}
		p.distributionEndsAt = end
		return nil
	})
}

// Refresh consumes due pool decays and settles the position up to now.
func (p *Pool) Refresh(m *Position, now uint64) error {
	return p.atomically(func() error {
		if err := p.consumeDecays(lockup.DayFloor(now)); err != nil {
			return err
		}
		return m.refresh(p.indexHistory, now)
	}, m)
}

// PendingRewards returns what the position could claim at now without mutating it.
func (p *Pool) PendingRewards(m *Position, now uint64) (uint64, error) {
	preview := m.Clone()
	if err := preview.refresh(p.indexHistory, now); err != nil {
		return 0, err
	}
	return preview.unclaimedRewards, nil
}
