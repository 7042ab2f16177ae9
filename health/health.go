// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type Distribution struct {
	Amount    uint64     `json:"amount"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy          bool          `json:"healthy"`
	LastDistribution *Distribution `json:"lastDistribution"`
	LastError        string        `json:"lastError,omitempty"`
}

// Health follows the scheduled distribution runs of the daemon.
type Health struct {
	lock       sync.RWMutex
	clock      clockwork.Clock
	lastRun    time.Time
	lastAmount uint64
	lastErr    error
}

func New(clock clockwork.Clock) *Health {
	return &Health{clock: clock}
}

// Distributed records a successful run.
func (h *Health) Distributed(amount uint64) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastRun = h.clock.Now()
	h.lastAmount = amount
	h.lastErr = nil
}

// Failed records a failed run. The last successful run is kept.
func (h *Health) Failed(err error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastErr = err
}

// Status reports healthy when the last run succeeded no longer than maxAge ago.
func (h *Health) Status(maxAge time.Duration) (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{}
	if !h.lastRun.IsZero() {
		ts := h.lastRun
		status.LastDistribution = &Distribution{
			Amount:    h.lastAmount,
			Timestamp: &ts,
		}
	}
	if h.lastErr != nil {
		status.LastError = h.lastErr.Error()
	}
	status.Healthy = !h.lastRun.IsZero() &&
		h.lastErr == nil &&
		h.clock.Since(h.lastRun) <= maxAge
	return status, nil
}
