// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewards/accrual/checked"
	"github.com/vechain/rewards/accrual/lockup"
	"github.com/vechain/rewards/accrual/timeline"
)

// Position is the accrual state of a single participant.
type Position struct {
	share            uint64 // own active weighted stake
	unclaimedRewards uint64
	stakeFromOthers  uint64 // delegated-in earning power
	lastSyncedIndex  *uint256.Int
	// localDecays mirrors the part of the pool schedule that belongs to this position.
	localDecays *timeline.Timeline[uint64]
}

func NewPosition() *Position {
	return &Position{
		lastSyncedIndex: new(uint256.Int),
		localDecays:     timeline.New[uint64](PositionDecayCapacity),
	}
}

func (m *Position) Share() uint64 { return m.share }

func (m *Position) UnclaimedRewards() uint64 { return m.unclaimedRewards }

func (m *Position) StakeFromOthers() uint64 { return m.stakeFromOthers }

// LastSyncedIndex returns a copy of the index the position was last settled at.
func (m *Position) LastSyncedIndex() *uint256.Int {
	return new(uint256.Int).Set(m.lastSyncedIndex)
}

// Decays returns the scheduled decays of the position in ascending day order.
func (m *Position) Decays() []timeline.Entry[uint64] {
	return m.localDecays.Entries()
}

// DecayAt returns the decay scheduled for the given day.
func (m *Position) DecayAt(day uint64) (uint64, bool) {
	return m.localDecays.Get(day)
}

// Closable reports whether nothing is left in the position.
func (m *Position) Closable() bool {
	return m.share == 0 && m.stakeFromOthers == 0 && m.unclaimedRewards == 0
}

func (m *Position) Clone() *Position {
	return &Position{
		share:            m.share,
		unclaimedRewards: m.unclaimedRewards,
		stakeFromOthers:  m.stakeFromOthers,
		lastSyncedIndex:  new(uint256.Int).Set(m.lastSyncedIndex),
		localDecays:      m.localDecays.Clone(),
	}
}

// RefreshRewards settles everything accrued up to now against the index history.
// On failure the position is left untouched.
func (m *Position) RefreshRewards(history *timeline.Timeline[*uint256.Int], now uint64) error {
	saved := m.Clone()
	if err := m.refresh(history, now); err != nil {
		*m = *saved
		return err
	}
	return nil
}

// refresh applies due decays one by one, settling the weight held before each, and then
// settles the remaining weight up to now. The index recorded for a decay day itself is
// only picked up by the trailing settlement, so a day's accrual is attributed once.
func (m *Position) refresh(history *timeline.Timeline[*uint256.Int], now uint64) error {
	day := lockup.DayFloor(now)
	weight, err := checked.Add(m.share, m.stakeFromOthers)
	if err != nil {
		return err
	}

	if err := m.localDecays.ConsumeUpTo(day, func(decayDay uint64, amount uint64) error {
		if err := m.updateIndex(history, decayDay, weight); err != nil {
			return err
		}
		weight, err = checked.Sub(weight, amount)
		return err
	}); err != nil {
		return err
	}

	if err := m.updateIndex(history, now, weight); err != nil {
		return err
	}
	m.share, err = checked.Sub(weight, m.stakeFromOthers)
	return err
}

func (m *Position) updateIndex(history *timeline.Timeline[*uint256.Int], at uint64, weight uint64) error {
	index, ok := history.FloorStrict(at)
	if !ok {
		index = new(uint256.Int)
	}

	delta, err := checked.Sub128(index, m.lastSyncedIndex)
	if err != nil {
		return err
	}
	scaled, err := checked.MulDiv(delta, uint256.NewInt(weight), precision)
	if err != nil {
		return err
	}
	reward, err := checked.ToUint64(scaled)
	if err != nil {
		return err
	}

	if reward > 0 {
		if m.unclaimedRewards, err = checked.Add(m.unclaimedRewards, reward); err != nil {
			return err
		}
	}
	// the watermark moves even without a reward, otherwise the delta is counted again later
	m.lastSyncedIndex = new(uint256.Int).Set(index)
	return nil
}
