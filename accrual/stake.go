// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"github.com/vechain/rewards/accrual/checked"
	"github.com/vechain/rewards/accrual/lockup"
	"github.com/vechain/rewards/accrual/reverts"
	"github.com/vechain/rewards/accrual/timeline"
)

// Extension describes a restake of an existing lockup.
type Extension struct {
	OldPeriod   lockup.Period
	NewPeriod   lockup.Period
	OldStart    uint64 // start timestamp of the lockup being extended
	BaseAmount  uint64 // native amount already staked
	ExtraAmount uint64 // native amount added by the restake
}

// settle consumes due pool decays and refreshes every touched position once.
func (p *Pool) settle(now uint64, positions ...*Position) error {
	if err := p.consumeDecays(lockup.DayFloor(now)); err != nil {
		return err
	}
	for i, m := range positions {
		if m == nil || seen(positions[:i], m) {
			continue
		}
		if err := m.refresh(p.indexHistory, now); err != nil {
			return err
		}
	}
	return nil
}

func seen(list []*Position, m *Position) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}

// Deposit stakes amount with the given lockup starting at now. A delegate, if any,
// gains the native amount as earning power.
func (p *Pool) Deposit(m *Position, amount uint64, period lockup.Period, now uint64, delegate *Position) error {
	delegate = distinct(m, delegate)
	return p.atomically(func() error {
		if !period.Valid() {
			return reverts.ErrInvalidLockupPeriod
		}
		if err := p.settle(now, m, delegate); err != nil {
			return err
		}
		if err := p.stake(m, amount, period, now); err != nil {
			return err
		}
		return p.delegateIn(delegate, amount)
	}, m, delegate)
}

// stake adds weighted stake and schedules its bonus to expire with the lockup.
func (p *Pool) stake(m *Position, amount uint64, period lockup.Period, now uint64) error {
	weighted, err := checked.Mul(amount, period.Multiplier())
	if err != nil {
		return err
	}
	flex, err := checked.Mul(amount, lockup.Flex.Multiplier())
	if err != nil {
		return err
	}
	bonus, err := checked.Sub(weighted, flex)
	if err != nil {
		return err
	}
	expiry, err := period.EndTimestamp(now)
	if err != nil {
		return err
	}

	if p.totalShare, err = checked.Add(p.totalShare, weighted); err != nil {
		return err
	}
	if m.share, err = checked.Add(m.share, weighted); err != nil {
		return err
	}
	if err := timeline.InsertOrAdd(p.scheduledDecays, expiry, bonus); err != nil {
		return err
	}
	return timeline.InsertOrAdd(m.localDecays, expiry, bonus)
}

func (p *Pool) delegateIn(delegate *Position, amount uint64) (err error) {
	if delegate == nil {
		return nil
	}
	if delegate.stakeFromOthers, err = checked.Add(delegate.stakeFromOthers, amount); err != nil {
		return err
	}
	p.totalShare, err = checked.Add(p.totalShare, amount)
	return err
}

func (p *Pool) delegateOut(delegate *Position, amount uint64) (err error) {
	if delegate == nil {
		return nil
	}
	if delegate.stakeFromOthers, err = checked.Sub(delegate.stakeFromOthers, amount); err != nil {
		return err
	}
	p.totalShare, err = checked.Sub(p.totalShare, amount)
	return err
}

// Withdraw removes amount of weighted stake. The caller decides which part of the
// stake is unlocked.
func (p *Pool) Withdraw(m *Position, amount uint64, now uint64, delegate *Position) error {
	delegate = distinct(m, delegate)
	return p.atomically(func() error {
		if err := p.settle(now, m, delegate); err != nil {
			return err
		}
		if err := p.unstake(m, amount); err != nil {
			return err
		}
		return p.delegateOut(delegate, amount)
	}, m, delegate)
}

func (p *Pool) unstake(m *Position, amount uint64) (err error) {
	if p.totalShare, err = checked.Sub(p.totalShare, amount); err != nil {
		return err
	}
	m.share, err = checked.Sub(m.share, amount)
	return err
}

// Slash removes weighted stake as a penalty. When expiry is not zero the bonus part of
// the slashed stake is also dropped from the decays of that expiry day.
func (p *Pool) Slash(m *Position, weighted, native uint64, expiry uint64, now uint64) error {
	return p.atomically(func() error {
		if err := p.settle(now, m); err != nil {
			return err
		}
		if err := p.unstake(m, weighted); err != nil {
			return err
		}
		if expiry == 0 {
			return nil
		}
		bonus, err := checked.Sub(weighted, native)
		if err != nil {
			return err
		}
		day := lockup.DayFloor(expiry)
		if err := reduceDecay(m.localDecays, day, bonus); err != nil {
			return err
		}
		return reduceDecay(p.scheduledDecays, day, bonus)
	}, m)
}

// reduceDecay subtracts amount from an existing decay entry.
func reduceDecay(t *timeline.Timeline[uint64], day, amount uint64) error {
	v, ok := t.Get(day)
	if !ok {
		return reverts.ErrNoWeightedStakeModifiersAtADate
	}
	v, err := checked.Sub(v, amount)
	if err != nil {
		return err
	}
	return t.Set(day, v)
}

// DecreaseRewards lowers the earning power of the position without touching the pool.
// The penalised power stays in the total share so its part of every later distribution
// remains in the vault. Scheduled decays are clamped from the latest day backwards so
// they can never take the share below zero.
func (p *Pool) DecreaseRewards(m *Position, amount uint64, now uint64) error {
	if amount == 0 {
		return nil
	}
	return p.atomically(func() error {
		if err := p.settle(now, m); err != nil {
			return err
		}
		if amount > m.share {
			return reverts.ErrDecreaseTooLarge
		}
		m.share -= amount

		var (
			left    = amount
			updates []timeline.Entry[uint64]
		)
		m.localDecays.Descend(func(day uint64, v uint64) bool {
			if v >= left {
				updates = append(updates, timeline.Entry[uint64]{Day: day, Value: v - left})
				return false
			}
			left -= v
			updates = append(updates, timeline.Entry[uint64]{Day: day, Value: 0})
			return true
		})
		for _, u := range updates {
			if err := m.localDecays.Set(u.Day, u.Value); err != nil {
				return err
			}
		}
		return nil
	}, m)
}

// ExtendStake restakes an existing lockup from scratch with a new period and an
// optional top up. The outstanding bonus of the old lockup is unwound first.
func (p *Pool) ExtendStake(m *Position, ext Extension, now uint64, delegate *Position) error {
	delegate = distinct(m, delegate)
	return p.atomically(func() error {
		if !ext.OldPeriod.Valid() || !ext.NewPeriod.Valid() {
			return reverts.ErrInvalidLockupPeriod
		}
		if err := p.settle(now, m, delegate); err != nil {
			return err
		}

		var oldExpiry uint64
		if ext.OldPeriod != lockup.Flex {
			var err error
			if oldExpiry, err = ext.OldPeriod.EndTimestamp(ext.OldStart); err != nil {
				return err
			}
		}
		flex, err := checked.Mul(ext.BaseAmount, lockup.Flex.Multiplier())
		if err != nil {
			return err
		}

		if now < oldExpiry {
			weighted, err := checked.Mul(ext.BaseAmount, ext.OldPeriod.Multiplier())
			if err != nil {
				return err
			}
			bonus, err := checked.Sub(weighted, flex)
			if err != nil {
				return err
			}
			if err := reduceDecay(m.localDecays, oldExpiry, bonus); err != nil {
				return err
			}
			if err := reduceDecay(p.scheduledDecays, oldExpiry, bonus); err != nil {
				return err
			}
			if err := p.unstake(m, weighted); err != nil {
				return err
			}
		} else if err := p.unstake(m, flex); err != nil {
			return err
		}

		if err := p.delegateOut(delegate, ext.BaseAmount); err != nil {
			return err
		}
		total, err := checked.Add(ext.BaseAmount, ext.ExtraAmount)
		if err != nil {
			return err
		}
		if err := p.stake(m, total, ext.NewPeriod, now); err != nil {
			return err
		}
		return p.delegateIn(delegate, total)
	}, m, delegate)
}

// ChangeDelegate moves amount of delegated earning power from one delegate to another.
// A nil delegate, or the position itself, stands for no delegate.
func (p *Pool) ChangeDelegate(m *Position, amount uint64, oldDelegate, newDelegate *Position, now uint64) error {
	oldDelegate = distinct(m, oldDelegate)
	newDelegate = distinct(m, newDelegate)
	if oldDelegate == newDelegate {
		return reverts.ErrDelegatesIdentical
	}
	return p.atomically(func() error {
		if err := p.settle(now, m, oldDelegate, newDelegate); err != nil {
			return err
		}
		if err := p.delegateOut(oldDelegate, amount); err != nil {
			return err
		}
		return p.delegateIn(newDelegate, amount)
	}, m, oldDelegate, newDelegate)
}

// Claim settles the position and hands out everything it has accrued.
func (p *Pool) Claim(m *Position, now uint64) (uint64, error) {
	var amount uint64
	err := p.atomically(func() error {
		if err := p.settle(now, m); err != nil {
			return err
		}
		amount = m.unclaimedRewards
		m.unclaimedRewards = 0
		return nil
	}, m)
	return amount, err
}

// ClosePosition checks that a settled position holds nothing anymore. The caller
// removes it from storage on success.
func (p *Pool) ClosePosition(m *Position, now uint64) error {
	return p.atomically(func() error {
		if err := p.settle(now, m); err != nil {
			return err
		}
		switch {
		case m.unclaimedRewards != 0:
			return reverts.ErrRewardsMustBeClaimed
		case m.stakeFromOthers != 0:
			return reverts.ErrStakeFromOthersMustBeZero
		case m.share != 0:
			return reverts.ErrShareMustBeZero
		}
		return nil
	}, m)
}
