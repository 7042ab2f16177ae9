// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewards/log"
	"github.com/vechain/rewards/lvldb"
	"github.com/vechain/rewards/staker"
	"github.com/vechain/rewards/store"
	"github.com/vechain/rewards/types"
)

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".org.vechain.rewards")
	}
	return ""
}

// initLogger installs the root handler and returns its level, adjustable at runtime.
func initLogger(cfg *Config) *slog.LevelVar {
	lvl := new(slog.LevelVar)
	lvl.Set(log.FromLegacyLevel(int(cfg.Verbosity)))
	log.SetDefault(log.NewHandler(os.Stderr, lvl, cfg.JSONLogs))
	return lvl
}

func makeClock(cfg *Config) clockwork.Clock {
	if cfg.At != 0 {
		return clockwork.NewFakeClockAt(time.Unix(int64(cfg.At), 0))
	}
	return clockwork.NewRealClock()
}

func openStaker(cfg *Config, clock clockwork.Clock) (*staker.Staker, func(), error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(err, "create data dir [%v]", cfg.DataDir)
	}
	path := filepath.Join(cfg.DataDir, "rewards.db")
	db, err := lvldb.Open(path, lvldb.Options{CacheMiB: 64, OpenFiles: 64})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open database [%v]", path)
	}
	st, err := store.New(db, cfg.CacheSize)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return staker.New(st, clock), func() {
		logger.Debug("closing database...")
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "err", err)
		}
	}, nil
}

// withStaker opens the database around a command action.
func withStaker(fn func(ctx *cli.Context, s *staker.Staker) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg := configFrom(ctx)
		s, closeDB, err := openStaker(cfg, makeClock(cfg))
		if err != nil {
			return err
		}
		defer closeDB()
		return fn(ctx, s)
	}
}

func argAddress(ctx *cli.Context, i int) (types.Address, error) {
	if ctx.NArg() <= i {
		return types.Address{}, errors.Errorf("missing argument #%d: address", i+1)
	}
	addr, err := types.ParseAddress(ctx.Args().Get(i))
	if err != nil {
		return types.Address{}, errors.Wrapf(err, "argument #%d", i+1)
	}
	return *addr, nil
}

func argUint64(ctx *cli.Context, i int, name string) (uint64, error) {
	if ctx.NArg() <= i {
		return 0, errors.Errorf("missing argument #%d: %s", i+1, name)
	}
	v, err := strconv.ParseUint(ctx.Args().Get(i), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "argument #%d: %s", i+1, name)
	}
	return v, nil
}

// optAddress parses an optional address flag, nil when unset.
func optAddress(ctx *cli.Context, name string) (*types.Address, error) {
	s := ctx.String(name)
	if s == "" {
		return nil, nil
	}
	addr, err := types.ParseAddress(s)
	if err != nil {
		return nil, errors.Wrapf(err, "flag --%s", name)
	}
	return addr, nil
}

func printJSON(ctx *cli.Context, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(append(data, '\n'))
	return err
}
