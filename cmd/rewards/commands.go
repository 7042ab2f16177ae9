// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewards/accrual"
	"github.com/vechain/rewards/accrual/lockup"
	"github.com/vechain/rewards/api/pool"
	"github.com/vechain/rewards/api/positions"
	"github.com/vechain/rewards/staker"
	"github.com/vechain/rewards/types"
)

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:   "init",
			Usage:  "create an empty reward pool",
			Action: withStaker(initAction),
		},
		{
			Name:      "open",
			Usage:     "open an empty position",
			ArgsUsage: "<address>",
			Action:    withStaker(openAction),
		},
		{
			Name:      "deposit",
			Usage:     "stake an amount for a lockup period",
			ArgsUsage: "<address> <amount>",
			Flags:     []cli.Flag{periodFlag, delegateFlag},
			Action:    withStaker(depositAction),
		},
		{
			Name:      "withdraw",
			Usage:     "remove weighted stake",
			ArgsUsage: "<address> <amount>",
			Flags:     []cli.Flag{delegateFlag},
			Action:    withStaker(withdrawAction),
		},
		{
			Name:      "extend",
			Usage:     "restake a lockup, optionally adding to it",
			ArgsUsage: "<address>",
			Flags:     []cli.Flag{oldPeriodFlag, newPeriodFlag, oldStartFlag, baseAmountFlag, extraAmountFlag, delegateFlag},
			Action:    withStaker(extendAction),
		},
		{
			Name:      "slash",
			Usage:     "remove weighted stake as a penalty",
			ArgsUsage: "<address>",
			Flags:     []cli.Flag{weightedFlag, nativeFlag, expiryFlag},
			Action:    withStaker(slashAction),
		},
		{
			Name:      "decrease",
			Usage:     "lower the earning power of a position",
			ArgsUsage: "<address> <amount>",
			Action:    withStaker(decreaseAction),
		},
		{
			Name:      "delegate",
			Usage:     "move delegated stake between delegates",
			ArgsUsage: "<address> <amount>",
			Flags:     []cli.Flag{fromFlag, toFlag},
			Action:    withStaker(delegateAction),
		},
		{
			Name:      "refresh",
			Usage:     "settle the accrued rewards of a position",
			ArgsUsage: "<address>",
			Action:    withStaker(refreshAction),
		},
		{
			Name:      "claim",
			Usage:     "pay out the accrued rewards of a position",
			ArgsUsage: "<address>",
			Action:    withStaker(claimAction),
		},
		{
			Name:      "close",
			Usage:     "remove an emptied position",
			ArgsUsage: "<address>",
			Action:    withStaker(closeAction),
		},
		{
			Name:      "fill",
			Usage:     "fund the vault and set the end of the distribution window",
			ArgsUsage: "<amount>",
			Flags:     []cli.Flag{endsAtFlag, daysFlag},
			Action:    withStaker(fillAction),
		},
		{
			Name:   "distribute",
			Usage:  "distribute the rewards of the day",
			Action: withStaker(distributeAction),
		},
		{
			Name:   "pool",
			Usage:  "print the reward pool",
			Action: withStaker(poolAction),
		},
		{
			Name:      "position",
			Usage:     "print a position and its pending rewards",
			ArgsUsage: "<address>",
			Action:    withStaker(positionAction),
		},
		{
			Name:   "dump",
			Usage:  "dump the pool and every position for debugging",
			Action: withStaker(dumpAction),
		},
		{
			Name:  "serve",
			Usage: "run the scheduled distribution and the HTTP API",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				apiTimeoutFlag,
				enableAPILogsFlag,
				apiSlowQueriesThresholdFlag,
				apiLog5xxErrorsFlag,
				distributeScheduleFlag,
				enableMetricsFlag,
				metricsAddrFlag,
				enableAdminFlag,
				adminAddrFlag,
			},
			Before: func(ctx *cli.Context) error {
				cfg := configFrom(ctx)
				overrideFromFlags(ctx, cfg)
				return cfg.validate()
			},
			Action: serveAction,
		},
	}
}

func initAction(_ *cli.Context, s *staker.Staker) error {
	return s.Init()
}

func openAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	return s.OpenPosition(addr)
}

func depositAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	amount, err := argUint64(ctx, 1, "amount")
	if err != nil {
		return err
	}
	period, err := lockup.ParsePeriod(ctx.String(periodFlag.Name))
	if err != nil {
		return err
	}
	delegate, err := optAddress(ctx, delegateFlag.Name)
	if err != nil {
		return err
	}
	return s.Deposit(addr, amount, period, delegate)
}

func withdrawAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	amount, err := argUint64(ctx, 1, "amount")
	if err != nil {
		return err
	}
	delegate, err := optAddress(ctx, delegateFlag.Name)
	if err != nil {
		return err
	}
	return s.Withdraw(addr, amount, delegate)
}

func extendAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	oldPeriod, err := lockup.ParsePeriod(ctx.String(oldPeriodFlag.Name))
	if err != nil {
		return errors.WithMessage(err, "old period")
	}
	newPeriod, err := lockup.ParsePeriod(ctx.String(newPeriodFlag.Name))
	if err != nil {
		return errors.WithMessage(err, "new period")
	}
	delegate, err := optAddress(ctx, delegateFlag.Name)
	if err != nil {
		return err
	}
	return s.ExtendStake(addr, accrual.Extension{
		OldPeriod:   oldPeriod,
		NewPeriod:   newPeriod,
		OldStart:    ctx.Uint64(oldStartFlag.Name),
		BaseAmount:  ctx.Uint64(baseAmountFlag.Name),
		ExtraAmount: ctx.Uint64(extraAmountFlag.Name),
	}, delegate)
}

func slashAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	return s.Slash(addr,
		ctx.Uint64(weightedFlag.Name),
		ctx.Uint64(nativeFlag.Name),
		ctx.Uint64(expiryFlag.Name),
	)
}

func decreaseAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	amount, err := argUint64(ctx, 1, "amount")
	if err != nil {
		return err
	}
	return s.DecreaseRewards(addr, amount)
}

func delegateAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	amount, err := argUint64(ctx, 1, "amount")
	if err != nil {
		return err
	}
	from, err := optAddress(ctx, fromFlag.Name)
	if err != nil {
		return err
	}
	to, err := optAddress(ctx, toFlag.Name)
	if err != nil {
		return err
	}
	return s.ChangeDelegate(addr, amount, from, to)
}

func refreshAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	return s.Refresh(addr)
}

func claimAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	amount, err := s.Claim(addr)
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]uint64{"claimed": amount})
}

func closeAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	return s.ClosePosition(addr)
}

func fillAction(ctx *cli.Context, s *staker.Staker) error {
	amount, err := argUint64(ctx, 0, "amount")
	if err != nil {
		return err
	}
	endsAt := ctx.Uint64(endsAtFlag.Name)
	if endsAt == 0 {
		days := ctx.Uint64(daysFlag.Name)
		if days == 0 {
			return errors.New("one of --ends-at or --days is required")
		}
		endsAt = uint64(makeClock(configFrom(ctx)).Now().Unix()) + days*lockup.SecondsPerDay
	}
	return s.FillVault(amount, endsAt)
}

func distributeAction(ctx *cli.Context, s *staker.Staker) error {
	amount, err := s.Distribute()
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]uint64{"distributed": amount})
}

func poolAction(ctx *cli.Context, s *staker.Staker) error {
	p, err := s.Pool()
	if err != nil {
		return err
	}
	return printJSON(ctx, pool.ConvertPool(p))
}

func positionAction(ctx *cli.Context, s *staker.Staker) error {
	addr, err := argAddress(ctx, 0)
	if err != nil {
		return err
	}
	m, pending, err := s.Position(addr)
	if err != nil {
		return err
	}
	return printJSON(ctx, positions.ConvertPosition(addr, m, pending))
}

func dumpAction(ctx *cli.Context, s *staker.Staker) error {
	p, err := s.Pool()
	if err != nil {
		return err
	}
	type record struct {
		Stored *positions.Summary
		Decays []pool.Decay
	}
	var all []record
	err = s.Positions(func(addr types.Address, m *accrual.Position) bool {
		all = append(all, record{
			Stored: &positions.Summary{
				Address:          addr,
				Share:            m.Share(),
				StakeFromOthers:  m.StakeFromOthers(),
				UnclaimedRewards: m.UnclaimedRewards(),
			},
			Decays: pool.ConvertDecays(m.Decays()),
		})
		return true
	})
	if err != nil {
		return err
	}
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(ctx.App.Writer, pool.ConvertPool(p), all)
	return nil
}
