// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	app := newApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}
	for _, f := range []cli.Flag{distributeScheduleFlag, apiAddrFlag, enableMetricsFlag, enableAdminFlag} {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(app, set, nil)
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := makeConfig(newContext(t))
	require.NoError(t, err)

	assert.Equal(t, defaultDataDir(), cfg.DataDir)
	assert.Equal(t, "@daily", cfg.DistributeSchedule)
	assert.Equal(t, "localhost:8680", cfg.API.Addr)
	assert.Equal(t, uint64(10000), cfg.API.TimeoutMs)
	assert.Equal(t, uint64(3), cfg.Verbosity)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Zero(t, cfg.At)
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data-dir: /var/lib/rewards
verbosity: 4
distribute-schedule: "0 0 * * *"
api:
  addr: 0.0.0.0:8680
  cors: "*"
metrics:
  enabled: true
`), 0o600))

	cfg, err := makeConfig(newContext(t, "--config", path, "--verbosity", "1", "--at", "86400"))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/rewards", cfg.DataDir)
	assert.Equal(t, uint64(1), cfg.Verbosity)
	assert.Equal(t, "0 0 * * *", cfg.DistributeSchedule)
	assert.Equal(t, "0.0.0.0:8680", cfg.API.Addr)
	assert.Equal(t, "*", cfg.API.Cors)
	assert.Equal(t, uint64(10000), cfg.API.TimeoutMs)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "localhost:2112", cfg.Metrics.Addr)
	assert.Equal(t, uint64(86400), cfg.At)
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	cfg := defaultConfig()
	err := decodeConfig(strings.NewReader("data_dir: /tmp\n"), cfg)
	assert.ErrorContains(t, err, "field data_dir not found")
}

func TestConfigEmptyFile(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, decodeConfig(strings.NewReader(""), cfg))
	assert.Equal(t, defaultConfig(), cfg)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"no data dir", func(c *Config) { c.DataDir = "" }, "data dir must be set"},
		{"verbosity", func(c *Config) { c.Verbosity = 6 }, "verbosity 6 out of range"},
		{"schedule", func(c *Config) { c.DistributeSchedule = "every day" }, "distribute schedule"},
		{"descriptor", func(c *Config) { c.DistributeSchedule = "@every 12h" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.DataDir = "/tmp/rewards"
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.errMsg)
			}
		})
	}
}
