// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, lvl slog.Level) *bytes.Buffer {
	old := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(old) })

	var level slog.LevelVar
	level.Set(lvl)
	buf := &bytes.Buffer{}
	SetDefault(NewHandler(buf, &level, true))
	return buf
}

func TestWithContextFollowsDefault(t *testing.T) {
	logger := WithContext("pkg", "test")
	buf := capture(t, FromLegacyLevel(LegacyLevelInfo))

	logger.With("op", "deposit").Info("applied", "amount", 10)
	logger.Debug("hidden")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "applied", record["msg"])
	assert.Equal(t, "test", record["pkg"])
	assert.Equal(t, "deposit", record["op"])
	assert.Equal(t, float64(10), record["amount"])
}

func TestLegacyLevels(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, slog.LevelDebug, FromLegacyLevel(LegacyLevelDebug))
	assert.Equal(t, slog.LevelWarn, FromLegacyLevel(LegacyLevelWarn))
}

func TestLevelVarChangesAtRuntime(t *testing.T) {
	old := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(old) })

	var lvl slog.LevelVar
	lvl.Set(LevelWarn)
	buf := &bytes.Buffer{}
	SetDefault(NewHandler(buf, &lvl, true))

	logger := WithContext("pkg", "test")
	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	lvl.Set(LevelDebug)
	logger.Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestJSONRecordLayout(t *testing.T) {
	buf := capture(t, LevelInfo)

	WithContext("pkg", "test").Warn("distributed", "index", uint256.NewInt(12345), "nil", (*uint256.Int)(nil))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "warn", record["lvl"])
	assert.Contains(t, record, "t")
	assert.NotContains(t, record, "level")
	assert.Equal(t, "12345", record["index"])
	assert.Equal(t, "<nil>", record["nil"])
}

func TestTerminalLevelChangesAtRuntime(t *testing.T) {
	old := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(old) })

	var lvl slog.LevelVar
	lvl.Set(LevelError)
	buf := &bytes.Buffer{}
	SetDefault(NewHandler(buf, &lvl, false))

	logger := WithContext("pkg", "test")
	logger.Warn("dropped")
	assert.Zero(t, buf.Len())

	lvl.Set(LevelTrace)
	logger.Trace("kept", "amount", 7)
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "amount=7")
	assert.Contains(t, buf.String(), "pkg=test")
}
