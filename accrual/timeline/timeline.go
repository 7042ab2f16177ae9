// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package timeline provides a bounded map ordered by day.
//
// The tree is a copy-on-write btree, so Clone is cheap and a clone can be used to
// restore a timeline after a failed operation.
package timeline

import (
	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/vechain/rewards/accrual/checked"
	"github.com/vechain/rewards/accrual/reverts"
)

const degree = 8

// Entry is a single day keyed value.
type Entry[V any] struct {
	Day   uint64
	Value V
}

func byDay[V any](a, b Entry[V]) bool {
	return a.Day < b.Day
}

// Timeline is an ordered day -> value map holding at most capacity keys.
// Inserting a new key into a full timeline fails with reverts.ErrCapacityExceeded.
type Timeline[V any] struct {
	capacity int
	tree     *btree.BTreeG[Entry[V]]
}

func New[V any](capacity int) *Timeline[V] {
	return &Timeline[V]{
		capacity: capacity,
		tree:     btree.NewG[Entry[V]](degree, byDay[V]),
	}
}

// FromEntries rebuilds a timeline from entries in strictly ascending day order.
func FromEntries[V any](capacity int, entries []Entry[V]) (*Timeline[V], error) {
	t := New[V](capacity)
	for i, e := range entries {
		if i > 0 && entries[i-1].Day >= e.Day {
			return nil, errors.Errorf("timeline entries out of order at day %d", e.Day)
		}
		if err := t.Set(e.Day, e.Value); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Timeline[V]) Len() int { return t.tree.Len() }

func (t *Timeline[V]) Cap() int { return t.capacity }

func (t *Timeline[V]) Get(day uint64) (V, bool) {
	e, ok := t.tree.Get(Entry[V]{Day: day})
	return e.Value, ok
}

func (t *Timeline[V]) Has(day uint64) bool {
	return t.tree.Has(Entry[V]{Day: day})
}

// Set stores v at day, replacing any existing value.
func (t *Timeline[V]) Set(day uint64, v V) error {
	if !t.Has(day) && t.tree.Len() >= t.capacity {
		return reverts.ErrCapacityExceeded
	}
	t.tree.ReplaceOrInsert(Entry[V]{Day: day, Value: v})
	return nil
}

func (t *Timeline[V]) Remove(day uint64) (V, bool) {
	e, ok := t.tree.Delete(Entry[V]{Day: day})
	return e.Value, ok
}

// FloorStrict returns the value of the greatest key strictly less than day.
func (t *Timeline[V]) FloorStrict(day uint64) (V, bool) {
	var (
		found Entry[V]
		ok    bool
	)
	if day == 0 {
		return found.Value, false
	}
	t.tree.DescendLessOrEqual(Entry[V]{Day: day - 1}, func(e Entry[V]) bool {
		found, ok = e, true
		return false
	})
	return found.Value, ok
}

// ConsumeUpTo visits every entry with key <= day in ascending order and removes them.
// Nothing is removed if fn fails.
func (t *Timeline[V]) ConsumeUpTo(day uint64, fn func(day uint64, v V) error) error {
	var due []Entry[V]
	t.tree.Ascend(func(e Entry[V]) bool {
		if e.Day > day {
			return false
		}
		due = append(due, e)
		return true
	})
	for _, e := range due {
		if err := fn(e.Day, e.Value); err != nil {
			return err
		}
	}
	for _, e := range due {
		t.tree.Delete(e)
	}
	return nil
}

// Entries returns all entries in ascending day order.
func (t *Timeline[V]) Entries() []Entry[V] {
	entries := make([]Entry[V], 0, t.tree.Len())
	t.tree.Ascend(func(e Entry[V]) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}

// Descend visits entries from the farthest day backward until fn returns false.
func (t *Timeline[V]) Descend(fn func(day uint64, v V) bool) {
	t.tree.Descend(func(e Entry[V]) bool {
		return fn(e.Day, e.Value)
	})
}

// Clone returns an independent copy. Stored values are shared, so values of
// pointer type must be replaced rather than mutated in place.
func (t *Timeline[V]) Clone() *Timeline[V] {
	return &Timeline[V]{
		capacity: t.capacity,
		tree:     t.tree.Clone(),
	}
}

// InsertOrAdd merges delta into the value stored at day.
func InsertOrAdd(t *Timeline[uint64], day, delta uint64) error {
	current, _ := t.Get(day)
	sum, err := checked.Add(current, delta)
	if err != nil {
		return err
	}
	return t.Set(day, sum)
}

// Sum returns the sum of all values.
func Sum(t *Timeline[uint64]) (uint64, error) {
	var (
		total uint64
		err   error
	)
	t.tree.Ascend(func(e Entry[uint64]) bool {
		total, err = checked.Add(total, e.Value)
		return err == nil
	})
	return total, err
}
