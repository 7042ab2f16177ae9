// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package timeline

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewards/accrual/reverts"
)

func TestFloorStrict(t *testing.T) {
	tl := New[uint64](300)
	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, tl.Set(i, i*10))
	}

	v, ok := tl.FloorStrict(3)
	assert.True(t, ok)
	assert.Equal(t, uint64(20), v, "the key equal to the pivot is not visible")

	v, ok = tl.FloorStrict(6)
	assert.True(t, ok)
	assert.Equal(t, uint64(50), v)

	_, ok = tl.FloorStrict(1)
	assert.False(t, ok)
	_, ok = tl.FloorStrict(0)
	assert.False(t, ok)

	v, ok = tl.FloorStrict(math.MaxUint64)
	assert.True(t, ok)
	assert.Equal(t, uint64(50), v)
}

func TestInsertOrAdd(t *testing.T) {
	tl := New[uint64](10)
	require.NoError(t, InsertOrAdd(tl, 100, 5))
	require.NoError(t, InsertOrAdd(tl, 100, 7))
	require.NoError(t, InsertOrAdd(tl, 50, 1))

	v, ok := tl.Get(100)
	assert.True(t, ok)
	assert.Equal(t, uint64(12), v)
	assert.Equal(t, 2, tl.Len())

	require.NoError(t, tl.Set(7, math.MaxUint64))
	assert.ErrorIs(t, InsertOrAdd(tl, 7, 1), reverts.ErrMathOverflow)

	sum, err := Sum(tl)
	assert.ErrorIs(t, err, reverts.ErrMathOverflow)
	assert.Equal(t, uint64(0), sum)

	tl.Remove(7)
	sum, err = Sum(tl)
	require.NoError(t, err)
	assert.Equal(t, uint64(13), sum)
}

func TestConsumeUpTo(t *testing.T) {
	tl := New[uint64](10)
	for _, day := range []uint64{40, 10, 30, 20} {
		require.NoError(t, tl.Set(day, day+1))
	}

	var visited []uint64
	require.NoError(t, tl.ConsumeUpTo(30, func(day uint64, v uint64) error {
		assert.Equal(t, day+1, v)
		visited = append(visited, day)
		return nil
	}))
	assert.Equal(t, []uint64{10, 20, 30}, visited)
	assert.Equal(t, 1, tl.Len())
	assert.True(t, tl.Has(40))

	boom := errors.New("boom")
	err := tl.ConsumeUpTo(100, func(uint64, uint64) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, tl.Has(40), "failed consumption removes nothing")
}

func TestCapacity(t *testing.T) {
	tl := New[uint64](2)
	require.NoError(t, tl.Set(1, 1))
	require.NoError(t, tl.Set(2, 2))
	assert.ErrorIs(t, tl.Set(3, 3), reverts.ErrCapacityExceeded)
	assert.Equal(t, reverts.KindCapacityExceeded, reverts.KindOf(InsertOrAdd(tl, 4, 1)))

	// existing keys stay writable when full
	require.NoError(t, InsertOrAdd(tl, 2, 5))
	v, _ := tl.Get(2)
	assert.Equal(t, uint64(7), v)
	assert.Equal(t, 2, tl.Cap())
}

func TestCloneIsIndependent(t *testing.T) {
	tl := New[uint64](10)
	require.NoError(t, tl.Set(1, 1))

	cp := tl.Clone()
	require.NoError(t, tl.Set(2, 2))
	require.NoError(t, tl.Set(1, 100))

	assert.Equal(t, 1, cp.Len())
	v, _ := cp.Get(1)
	assert.Equal(t, uint64(1), v)
}

func TestEntriesAndDescend(t *testing.T) {
	tl, err := FromEntries(5, []Entry[uint64]{{1, 10}, {2, 20}, {3, 30}})
	require.NoError(t, err)
	assert.Equal(t, []Entry[uint64]{{1, 10}, {2, 20}, {3, 30}}, tl.Entries())

	var days []uint64
	tl.Descend(func(day uint64, _ uint64) bool {
		days = append(days, day)
		return day > 2
	})
	assert.Equal(t, []uint64{3, 2}, days)

	_, err = FromEntries(5, []Entry[uint64]{{2, 1}, {1, 1}})
	assert.Error(t, err)
	_, err = FromEntries(1, []Entry[uint64]{{1, 1}, {2, 1}})
	assert.ErrorIs(t, err, reverts.ErrCapacityExceeded)
}
