// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewards/health"
)

func TestAdminRoutes(t *testing.T) {
	var level slog.LevelVar
	var apiLogs atomic.Bool
	h := health.New(clockwork.NewFakeClock())
	h.Distributed(1)

	ts := httptest.NewServer(New(&level, h, &apiLogs))
	defer ts.Close()

	res, err := http.Get(ts.URL + "/admin/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Post(ts.URL+"/admin/loglevel", "application/json", strings.NewReader(`{"level":"warn"}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, slog.LevelWarn, level.Level())

	res, err = http.Post(ts.URL+"/admin/apilogs", "application/json", strings.NewReader(`{"enabled":true}`))
	require.NoError(t, err)
	var status struct {
		Enabled bool `json:"enabled"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	res.Body.Close()
	assert.True(t, status.Enabled)
	assert.True(t, apiLogs.Load())

	res, err = http.Get(ts.URL + "/admin/unknown")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
