// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewards/accrual/checked"
	"github.com/vechain/rewards/accrual/timeline"
)

type decayEntry struct {
	Day    uint64
	Amount uint64
}

type indexEntry struct {
	Day   uint64
	Index *uint256.Int
}

type poolBody struct {
	TotalShare         uint64
	CumulativeIndex    *uint256.Int
	TokensAvailable    uint64
	DistributionEndsAt uint64
	ScheduledDecays    []decayEntry
	IndexHistory       []indexEntry
}

type positionBody struct {
	Share            uint64
	UnclaimedRewards uint64
	StakeFromOthers  uint64
	LastSyncedIndex  *uint256.Int
	LocalDecays      []decayEntry
}

func encodeDecays(t *timeline.Timeline[uint64]) []decayEntry {
	entries := t.Entries()
	out := make([]decayEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, decayEntry{e.Day, e.Value})
	}
	return out
}

func decodeDecays(capacity int, list []decayEntry) (*timeline.Timeline[uint64], error) {
	entries := make([]timeline.Entry[uint64], 0, len(list))
	for _, e := range list {
		entries = append(entries, timeline.Entry[uint64]{Day: e.Day, Value: e.Amount})
	}
	return timeline.FromEntries(capacity, entries)
}

func checkIndex(v *uint256.Int) error {
	if v == nil {
		return errors.New("missing index")
	}
	if v.Gt(checked.MaxUint128) {
		return errors.New("index exceeds 128 bits")
	}
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (p *Pool) EncodeRLP(w io.Writer) error {
	history := p.indexHistory.Entries()
	indexes := make([]indexEntry, 0, len(history))
	for _, e := range history {
		indexes = append(indexes, indexEntry{e.Day, e.Value})
	}
	return rlp.Encode(w, &poolBody{
		TotalShare:         p.totalShare,
		CumulativeIndex:    p.cumulativeIndex,
		TokensAvailable:    p.tokensAvailable,
		DistributionEndsAt: p.distributionEndsAt,
		ScheduledDecays:    encodeDecays(p.scheduledDecays),
		IndexHistory:       indexes,
	})
}

// DecodeRLP implements rlp.Decoder.
func (p *Pool) DecodeRLP(s *rlp.Stream) error {
	var body poolBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	if err := checkIndex(body.CumulativeIndex); err != nil {
		return errors.Wrap(err, "decode pool")
	}

	decays, err := decodeDecays(PoolDecayCapacity, body.ScheduledDecays)
	if err != nil {
		return errors.Wrap(err, "decode pool decays")
	}
	entries := make([]timeline.Entry[*uint256.Int], 0, len(body.IndexHistory))
	for _, e := range body.IndexHistory {
		if err := checkIndex(e.Index); err != nil {
			return errors.Wrap(err, "decode pool history")
		}
		entries = append(entries, timeline.Entry[*uint256.Int]{Day: e.Day, Value: e.Index})
	}
	history, err := timeline.FromEntries(IndexHistoryCapacity, entries)
	if err != nil {
		return errors.Wrap(err, "decode pool history")
	}

	*p = Pool{
		totalShare:         body.TotalShare,
		cumulativeIndex:    body.CumulativeIndex,
		tokensAvailable:    body.TokensAvailable,
		distributionEndsAt: body.DistributionEndsAt,
		scheduledDecays:    decays,
		indexHistory:       history,
	}
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (m *Position) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &positionBody{
		Share:            m.share,
		UnclaimedRewards: m.unclaimedRewards,
		StakeFromOthers:  m.stakeFromOthers,
		LastSyncedIndex:  m.lastSyncedIndex,
		LocalDecays:      encodeDecays(m.localDecays),
	})
}

// DecodeRLP implements rlp.Decoder.
func (m *Position) DecodeRLP(s *rlp.Stream) error {
	var body positionBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	if err := checkIndex(body.LastSyncedIndex); err != nil {
		return errors.Wrap(err, "decode position")
	}
	decays, err := decodeDecays(PositionDecayCapacity, body.LocalDecays)
	if err != nil {
		return errors.Wrap(err, "decode position decays")
	}

	*m = Position{
		share:            body.Share,
		unclaimedRewards: body.UnclaimedRewards,
		stakeFromOthers:  body.StakeFromOthers,
		lastSyncedIndex:  body.LastSyncedIndex,
		localDecays:      decays,
	}
	return nil
}
