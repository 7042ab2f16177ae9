// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/rewards/accrual"
	"github.com/vechain/rewards/accrual/timeline"
)

type Decay struct {
	Day    uint64 `json:"day"`
	Amount uint64 `json:"amount"`
}

type Index struct {
	Day   uint64 `json:"day"`
	Index string `json:"index"`
}

// Pool is the JSON view of the reward pool. 128-bit values are decimal strings.
type Pool struct {
	TotalShare                     uint64  `json:"totalShare"`
	CumulativeIndex                string  `json:"cumulativeIndex"`
	TokensAvailableForDistribution uint64  `json:"tokensAvailableForDistribution"`
	DistributionEndsAt             uint64  `json:"distributionEndsAt"`
	ScheduledDecays                []Decay `json:"scheduledDecays"`
	LastIndex                      *Index  `json:"lastIndex"`
	IndexHistoryLength             int     `json:"indexHistoryLength"`
}

type Rewards struct {
	Rewards uint64 `json:"rewards"`
}

// ConvertDecays converts decay entries into their JSON view.
func ConvertDecays(entries []timeline.Entry[uint64]) []Decay {
	decays := make([]Decay, 0, len(entries))
	for _, e := range entries {
		decays = append(decays, Decay{Day: e.Day, Amount: e.Value})
	}
	return decays
}

// ConvertPool converts the pool into its JSON view.
func ConvertPool(p *accrual.Pool) *Pool {
	history := p.IndexHistory()
	view := &Pool{
		TotalShare:                     p.TotalShare(),
		CumulativeIndex:                p.CumulativeIndex().Dec(),
		TokensAvailableForDistribution: p.TokensAvailableForDistribution(),
		DistributionEndsAt:             p.DistributionEndsAt(),
		ScheduledDecays:                ConvertDecays(p.ScheduledDecays()),
		IndexHistoryLength:             len(history),
	}
	if n := len(history); n > 0 {
		view.LastIndex = &Index{Day: history[n-1].Day, Index: history[n-1].Value.Dec()}
	}
	return view
}
