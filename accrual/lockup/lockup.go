// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockup

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/vechain/rewards/accrual/reverts"
)

// SecondsPerDay is the settlement granularity.
const SecondsPerDay uint64 = 86400

// DayFloor truncates ts to the beginning of its day.
func DayFloor(ts uint64) uint64 {
	return ts - ts%SecondsPerDay
}

// Period is the lockup chosen for a deposit. The zero value is unset and invalid.
type Period uint8

const (
	None Period = iota
	Flex
	ThreeMonths
	SixMonths
	OneYear
)

// Periods lists every valid period, shortest first.
var Periods = []Period{Flex, ThreeMonths, SixMonths, OneYear}

// Valid reports whether p is one of the selectable periods.
func (p Period) Valid() bool {
	return p >= Flex && p <= OneYear
}

// Multiplier converts the period into the weight applied to the staked amount.
func (p Period) Multiplier() uint64 {
	switch p {
	case Flex:
		return 1
	case ThreeMonths:
		return 2
	case SixMonths:
		return 4
	case OneYear:
		return 6
	default:
		return 0
	}
}

// Days returns the length of the lockup.
func (p Period) Days() (uint64, error) {
	switch p {
	case Flex:
		return 5, nil
	case ThreeMonths:
		return 90, nil
	case SixMonths:
		return 180, nil
	case OneYear:
		return 365, nil
	default:
		return 0, reverts.ErrInvalidLockupPeriod
	}
}

// EndTimestamp returns the day on which a lockup started at start expires.
func (p Period) EndTimestamp(start uint64) (uint64, error) {
	days, err := p.Days()
	if err != nil {
		return 0, err
	}
	return DayFloor(start) + days*SecondsPerDay, nil
}

func (p Period) String() string {
	switch p {
	case Flex:
		return "flex"
	case ThreeMonths:
		return "three-months"
	case SixMonths:
		return "six-months"
	case OneYear:
		return "one-year"
	default:
		return "none"
	}
}

// ParsePeriod accepts the names produced by String, case insensitive.
func ParsePeriod(s string) (Period, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Periods {
		if p.String() == name {
			return p, nil
		}
	}
	return None, errors.Errorf("unknown lockup period %q", s)
}

func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
