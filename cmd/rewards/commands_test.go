// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewards/accrual/lockup"
	"github.com/vechain/rewards/api/pool"
	"github.com/vechain/rewards/api/positions"
	"github.com/vechain/rewards/types"
)

var (
	alice = types.BytesToAddress([]byte("alice")).String()
	bob   = types.BytesToAddress([]byte("bob")).String()
)

type runner struct {
	t       *testing.T
	dataDir string
}

// run executes the app at the unix time at and returns what it printed.
func (r *runner) run(at uint64, args ...string) ([]byte, error) {
	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	full := append([]string{"rewards", "--data-dir", r.dataDir, "--verbosity", "0", "--at", strconv.FormatUint(at, 10)}, args...)
	err := app.Run(full)
	return out.Bytes(), err
}

func (r *runner) must(at uint64, args ...string) []byte {
	out, err := r.run(at, args...)
	require.NoError(r.t, err, args)
	return out
}

func TestCommandsLifecycle(t *testing.T) {
	r := &runner{t: t, dataDir: t.TempDir()}
	t0 := uint64(1000 * lockup.SecondsPerDay)
	day := lockup.SecondsPerDay

	r.must(t0, "init")
	_, err := r.run(t0, "init")
	assert.ErrorContains(t, err, "pool already initialized")

	r.must(t0, "open", alice)
	r.must(t0, "open", bob)
	r.must(t0, "fill", "1000", "--days", "10")
	r.must(t0, "deposit", alice, "100")
	r.must(t0, "deposit", bob, "100", "--period", "flex")

	var distributed map[string]uint64
	require.NoError(t, json.Unmarshal(r.must(t0, "distribute"), &distributed))
	assert.Equal(t, uint64(100), distributed["distributed"])

	var p pool.Pool
	require.NoError(t, json.Unmarshal(r.must(t0+1, "pool"), &p))
	assert.Equal(t, uint64(200), p.TotalShare)
	assert.Equal(t, uint64(900), p.TokensAvailableForDistribution)

	var m positions.Position
	require.NoError(t, json.Unmarshal(r.must(t0+1, "position", alice), &m))
	assert.Equal(t, uint64(50), m.PendingRewards)

	var claimed map[string]uint64
	require.NoError(t, json.Unmarshal(r.must(t0+day, "claim", alice), &claimed))
	assert.Equal(t, uint64(50), claimed["claimed"])

	r.must(t0+day, "withdraw", alice, "100")
	r.must(t0+day, "close", alice)
	_, err = r.run(t0+day, "position", alice)
	assert.ErrorContains(t, err, "not found")

	dump := r.must(t0+day, "dump")
	assert.Contains(t, string(dump), "TotalShare: (uint64) 100")
}

func TestCommandsArguments(t *testing.T) {
	r := &runner{t: t, dataDir: t.TempDir()}
	t0 := uint64(1000 * lockup.SecondsPerDay)
	r.must(t0, "init")
	r.must(t0, "open", alice)
	r.must(t0, "open", bob)

	_, err := r.run(t0, "deposit", alice)
	assert.ErrorContains(t, err, "missing argument #2: amount")

	_, err = r.run(t0, "deposit", "0x1234", "10")
	assert.ErrorContains(t, err, "argument #1")

	_, err = r.run(t0, "deposit", alice, "10", "--period", "forever")
	assert.ErrorContains(t, err, "unknown lockup period")

	_, err = r.run(t0, "fill", "10")
	assert.ErrorContains(t, err, "one of --ends-at or --days is required")

	_, err = r.run(t0, "delegate", alice, "10", "--from", bob, "--to", bob)
	assert.ErrorContains(t, err, "passed delegates are the same")
}
