// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package types holds the identifiers shared by storage, the API and the CLI.
package types

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const AddressLength = common.AddressLength

// Address identifies a participant of the reward pool.
// It is printed as 0x prefixed lower case hex and stored as its raw bytes.
type Address common.Address

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }
func (a Address) Bytes() []byte  { return a[:] }
func (a Address) IsZero() bool   { return a == Address{} }

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// ParseAddress accepts 40 hex digits, optionally prefixed by 0x or 0X.
func ParseAddress(s string) (*Address, error) {
	digits := s
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		digits = s[2:]
	}
	if len(digits) != 2*AddressLength {
		return nil, errors.Errorf("address %q: want %d hex digits", s, 2*AddressLength)
	}

	var addr Address
	if _, err := hex.Decode(addr[:], []byte(digits)); err != nil {
		return nil, errors.Wrapf(err, "address %q", s)
	}
	return &addr, nil
}

func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return *addr
}

// BytesToAddress keeps the trailing AddressLength bytes of b, left padding shorter input with zeros.
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToAddress(b))
}
