// Copyright (c) 2019 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the byte level storage the reward records are persisted in.
package kv

// Getter reads values. Get fails for absent keys, IsNotFound recognizes that failure.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Batch collects writes and applies them atomically on Write.
type Batch interface {
	Putter
	Len() int
	Write() error
}

type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Range selects keys in [Start, Limit). An empty Limit means no upper bound.
type Range struct {
	Start []byte
	Limit []byte
}

type Store interface {
	Getter
	Putter
	NewBatch() Batch
	Iterate(r Range) Iterator
}
