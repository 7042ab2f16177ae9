// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewards/log"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "rewards")
)

const logLevelMetaKey = "loglevel"

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "rewards"
	app.Usage = "Staking rewards accrual engine"
	app.Copyright = "2026 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		configFlag,
		dataDirFlag,
		cacheSizeFlag,
		verbosityFlag,
		jsonLogsFlag,
		atFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		ctx.App.Metadata = map[string]interface{}{
			configMetaKey:   cfg,
			logLevelMetaKey: initLogger(cfg),
		}
		return nil
	}
	app.Commands = commands()
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logLevelFrom(ctx *cli.Context) *slog.LevelVar {
	if lvl, ok := ctx.App.Metadata[logLevelMetaKey].(*slog.LevelVar); ok {
		return lvl
	}
	return new(slog.LevelVar)
}
