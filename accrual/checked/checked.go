// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package checked implements overflow checked unsigned arithmetic.
// 64-bit amounts use math/bits, 128-bit indexes are carried in uint256.Int and
// must never exceed 2^128-1.
package checked

import (
	"math/bits"

	"github.com/holiman/uint256"

	"github.com/vechain/rewards/accrual/reverts"
)

// MaxUint128 is the largest value an index may hold.
var MaxUint128 = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, reverts.ErrMathOverflow
	}
	return sum, nil
}

func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, reverts.ErrMathOverflow
	}
	return diff, nil
}

func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, reverts.ErrMathOverflow
	}
	return lo, nil
}

func Div(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, reverts.ErrMathOverflow
	}
	return a / b, nil
}

func bound(z *uint256.Int, overflow bool) (*uint256.Int, error) {
	if overflow || z.Gt(MaxUint128) {
		return nil, reverts.ErrMathOverflow
	}
	return z, nil
}

// Add128 returns a+b in a new value.
func Add128(a, b *uint256.Int) (*uint256.Int, error) {
	return bound(new(uint256.Int).AddOverflow(a, b))
}

// Sub128 returns a-b in a new value.
func Sub128(a, b *uint256.Int) (*uint256.Int, error) {
	return bound(new(uint256.Int).SubOverflow(a, b))
}

// Mul128 returns a*b in a new value.
func Mul128(a, b *uint256.Int) (*uint256.Int, error) {
	return bound(new(uint256.Int).MulOverflow(a, b))
}

// Div128 returns floor(a/b) in a new value.
func Div128(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, reverts.ErrMathOverflow
	}
	return bound(new(uint256.Int).Div(a, b), false)
}

// MulDiv returns floor(a*b/c), failing if the intermediate product leaves 128 bits.
func MulDiv(a, b, c *uint256.Int) (*uint256.Int, error) {
	prod, err := Mul128(a, b)
	if err != nil {
		return nil, err
	}
	return Div128(prod, c)
}

// ToUint64 narrows x, failing if it does not fit.
func ToUint64(x *uint256.Int) (uint64, error) {
	if !x.IsUint64() {
		return 0, reverts.ErrInvalidConversion
	}
	return x.Uint64(), nil
}
