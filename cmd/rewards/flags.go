// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewards/log"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file, explicitly set flags take precedence",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the rewards database",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache-size",
		Value: 4096,
		Usage: "number of decoded positions kept in memory",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	atFlag = cli.Uint64Flag{
		Name:  "at",
		Usage: "unix timestamp the command runs at, defaults to the current time",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8680",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with duration longer than this threshold (in milliseconds) will be logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log every request answered with a 5xx status",
	}
	distributeScheduleFlag = cli.StringFlag{
		Name:  "distribute-schedule",
		Value: "@daily",
		Usage: "cron spec of the periodic distribution",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}

	periodFlag = cli.StringFlag{
		Name:  "period",
		Value: "flex",
		Usage: "lockup period (flex|three-months|six-months|one-year)",
	}
	delegateFlag = cli.StringFlag{
		Name:  "delegate",
		Usage: "address receiving the delegated earning power",
	}
	oldPeriodFlag = cli.StringFlag{
		Name:  "old-period",
		Usage: "lockup period being replaced",
	}
	newPeriodFlag = cli.StringFlag{
		Name:  "new-period",
		Usage: "new lockup period",
	}
	oldStartFlag = cli.Uint64Flag{
		Name:  "old-start",
		Usage: "unix timestamp the replaced lockup started at",
	}
	baseAmountFlag = cli.Uint64Flag{
		Name:  "base",
		Usage: "native amount currently locked",
	}
	extraAmountFlag = cli.Uint64Flag{
		Name:  "extra",
		Usage: "native amount added to the lockup",
	}
	weightedFlag = cli.Uint64Flag{
		Name:  "weighted",
		Usage: "weighted amount removed from the position",
	}
	nativeFlag = cli.Uint64Flag{
		Name:  "native",
		Usage: "native amount behind the weighted amount",
	}
	expiryFlag = cli.Uint64Flag{
		Name:  "expiry",
		Usage: "unix timestamp the slashed lockup expires at, 0 for an unlocked stake",
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "current delegate",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "new delegate",
	}
	endsAtFlag = cli.Uint64Flag{
		Name:  "ends-at",
		Usage: "unix timestamp the distribution window ends at",
	}
	daysFlag = cli.Uint64Flag{
		Name:  "days",
		Usage: "length of the distribution window in days from now, used when --ends-at is unset",
	}
)
