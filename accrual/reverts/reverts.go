// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind classifies why an accrual operation was reverted.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindArithmeticOverflow
	KindDomainViolation
	KindMissingScheduleEntry
	KindCapacityExceeded
)

func (k Kind) String() string {
	switch k {
	case KindArithmeticOverflow:
		return "arithmetic-overflow"
	case KindDomainViolation:
		return "domain-violation"
	case KindMissingScheduleEntry:
		return "missing-schedule-entry"
	case KindCapacityExceeded:
		return "capacity-exceeded"
	default:
		return "unknown"
	}
}

// ErrRevert aborts the whole operation that returned it.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

var (
	ErrMathOverflow      = New(KindArithmeticOverflow, "math operation overflow")
	ErrInvalidConversion = New(KindArithmeticOverflow, "invalid conversion between primitive types")

	ErrNoDeposits                   = New(KindDomainViolation, "rewards: no deposits")
	ErrDistributionInThePast        = New(KindDomainViolation, "rewards: distribution_ends_at date is lower than current date")
	ErrRewardsMustBeGreaterThanZero = New(KindDomainViolation, "rewards: rewards amount must be positive")
	ErrDecreaseTooLarge             = New(KindDomainViolation, "rewards: penalty is bigger than the position's weighted stake")
	ErrDelegatesIdentical           = New(KindDomainViolation, "passed delegates are the same")
	ErrInvalidLockupPeriod          = New(KindDomainViolation, "rewards: lockup period invalid")
	ErrRewardsMustBeClaimed         = New(KindDomainViolation, "rewards: unclaimed rewards must be claimed")
	ErrStakeFromOthersMustBeZero    = New(KindDomainViolation, "rewards: stake from others must be zero")
	ErrShareMustBeZero              = New(KindDomainViolation, "rewards: weighted stake must be withdrawn")

	ErrNoWeightedStakeModifiersAtADate = New(KindMissingScheduleEntry, "no changes at the date in weighted stake modifiers while they're expected")

	ErrCapacityExceeded = New(KindCapacityExceeded, "timeline capacity exceeded")
)

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert wrapped in err, or KindUnknown.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return KindUnknown
}
