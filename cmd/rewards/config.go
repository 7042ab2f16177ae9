// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

const configMetaKey = "config"

// Config is the resolved configuration of a command. Defaults come from the flags,
// the YAML file overrides them and explicitly set flags override the file.
type Config struct {
	DataDir            string    `yaml:"data-dir"`
	CacheSize          int       `yaml:"cache-size"`
	Verbosity          uint64    `yaml:"verbosity"`
	JSONLogs           bool      `yaml:"json-logs"`
	DistributeSchedule string    `yaml:"distribute-schedule"`
	API                APIConfig `yaml:"api"`
	Metrics            Listener  `yaml:"metrics"`
	Admin              Listener  `yaml:"admin"`

	// At pins the clock of a single invocation, zero means the wall clock.
	At uint64 `yaml:"-"`
}

type APIConfig struct {
	Addr                   string `yaml:"addr"`
	Cors                   string `yaml:"cors"`
	TimeoutMs              uint64 `yaml:"timeout-ms"`
	EnableLogs             bool   `yaml:"enable-logs"`
	SlowQueriesThresholdMs uint64 `yaml:"slow-queries-threshold-ms"`
	Log5xxErrors           bool   `yaml:"log-5xx-errors"`
}

type Listener struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

func defaultConfig() *Config {
	return &Config{
		DataDir:            dataDirFlag.Value,
		CacheSize:          cacheSizeFlag.Value,
		Verbosity:          verbosityFlag.Value,
		DistributeSchedule: distributeScheduleFlag.Value,
		API: APIConfig{
			Addr:      apiAddrFlag.Value,
			Cors:      apiCorsFlag.Value,
			TimeoutMs: apiTimeoutFlag.Value,
		},
		Metrics: Listener{Addr: metricsAddrFlag.Value},
		Admin:   Listener{Addr: adminAddrFlag.Value},
	}
}

// decodeConfig overlays the YAML document in r onto cfg. Unknown keys are rejected.
func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return errors.Wrap(err, "decode config")
	}
	return nil
}

// overrideFromFlags copies every explicitly set flag into cfg.
func overrideFromFlags(ctx *cli.Context, cfg *Config) {
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.String(dataDirFlag.Name)
	}
	if ctx.IsSet(atFlag.Name) {
		cfg.At = ctx.Uint64(atFlag.Name)
	}
	if ctx.IsSet(cacheSizeFlag.Name) {
		cfg.CacheSize = ctx.Int(cacheSizeFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.Uint64(verbosityFlag.Name)
	}
	if ctx.IsSet(jsonLogsFlag.Name) {
		cfg.JSONLogs = ctx.Bool(jsonLogsFlag.Name)
	}
	if ctx.IsSet(distributeScheduleFlag.Name) {
		cfg.DistributeSchedule = ctx.String(distributeScheduleFlag.Name)
	}
	if ctx.IsSet(apiAddrFlag.Name) {
		cfg.API.Addr = ctx.String(apiAddrFlag.Name)
	}
	if ctx.IsSet(apiCorsFlag.Name) {
		cfg.API.Cors = ctx.String(apiCorsFlag.Name)
	}
	if ctx.IsSet(apiTimeoutFlag.Name) {
		cfg.API.TimeoutMs = ctx.Uint64(apiTimeoutFlag.Name)
	}
	if ctx.IsSet(enableAPILogsFlag.Name) {
		cfg.API.EnableLogs = ctx.Bool(enableAPILogsFlag.Name)
	}
	if ctx.IsSet(apiSlowQueriesThresholdFlag.Name) {
		cfg.API.SlowQueriesThresholdMs = ctx.Uint64(apiSlowQueriesThresholdFlag.Name)
	}
	if ctx.IsSet(apiLog5xxErrorsFlag.Name) {
		cfg.API.Log5xxErrors = ctx.Bool(apiLog5xxErrorsFlag.Name)
	}
	if ctx.IsSet(enableMetricsFlag.Name) {
		cfg.Metrics.Enabled = ctx.Bool(enableMetricsFlag.Name)
	}
	if ctx.IsSet(metricsAddrFlag.Name) {
		cfg.Metrics.Addr = ctx.String(metricsAddrFlag.Name)
	}
	if ctx.IsSet(enableAdminFlag.Name) {
		cfg.Admin.Enabled = ctx.Bool(enableAdminFlag.Name)
	}
	if ctx.IsSet(adminAddrFlag.Name) {
		cfg.Admin.Addr = ctx.String(adminAddrFlag.Name)
	}
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return errors.New("data dir must be set")
	}
	if c.Verbosity > 5 {
		return errors.Errorf("verbosity %d out of range 0-5", c.Verbosity)
	}
	if _, err := cron.ParseStandard(c.DistributeSchedule); err != nil {
		return errors.Wrap(err, "distribute schedule")
	}
	return nil
}

// makeConfig resolves the configuration of the app level context.
func makeConfig(ctx *cli.Context) (*Config, error) {
	cfg := defaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := decodeConfig(bytes.NewReader(data), cfg); err != nil {
			return nil, err
		}
	}
	overrideFromFlags(ctx, cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFrom(ctx *cli.Context) *Config {
	if cfg, ok := ctx.App.Metadata[configMetaKey].(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
