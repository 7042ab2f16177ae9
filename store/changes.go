// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/vechain/rewards/accrual"
	"github.com/vechain/rewards/types"
)

// Changes collects the records touched by one operation.
type Changes struct {
	pool      *accrual.Pool
	positions map[types.Address]*accrual.Position // nil means deleted
	order     []types.Address
}

func NewChanges() *Changes {
	return &Changes{positions: make(map[types.Address]*accrual.Position)}
}

func (c *Changes) SetPool(p *accrual.Pool) *Changes {
	c.pool = p
	return c
}

func (c *Changes) SetPosition(addr types.Address, m *accrual.Position) *Changes {
	if _, ok := c.positions[addr]; !ok {
		c.order = append(c.order, addr)
	}
	c.positions[addr] = m
	return c
}

func (c *Changes) DeletePosition(addr types.Address) *Changes {
	return c.SetPosition(addr, nil)
}
