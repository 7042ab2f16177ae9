// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewards/accrual"
	"github.com/vechain/rewards/types"
)

type backend map[types.Address]*accrual.Position

func (b backend) Position(addr types.Address) (*accrual.Position, uint64, error) {
	m, ok := b[addr]
	if !ok {
		return nil, 0, errors.New("boom")
	}
	return m, 7, nil
}

func (b backend) Positions(fn func(types.Address, *accrual.Position) bool) error {
	for addr, m := range b {
		if !fn(addr, m) {
			break
		}
	}
	return nil
}

func serve(t *testing.T, b Backend, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	New(b).Mount(router, "/positions")
	rr := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetPosition(t *testing.T) {
	addr := types.BytesToAddress([]byte("alice"))
	b := backend{addr: accrual.NewPosition()}

	rr := serve(t, b, "/positions/"+addr.String())
	require.Equal(t, http.StatusOK, rr.Code)
	var m Position
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	assert.Equal(t, addr, m.Address)
	assert.Equal(t, uint64(7), m.PendingRewards)
	assert.Equal(t, "0", m.LastSyncedIndex)
	assert.Empty(t, m.Decays)

	rr = serve(t, b, "/positions/"+types.BytesToAddress([]byte("bob")).String())
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = serve(t, b, "/positions/not-an-address")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListPositions(t *testing.T) {
	b := backend{
		types.BytesToAddress([]byte("alice")): accrual.NewPosition(),
		types.BytesToAddress([]byte("bob")):   accrual.NewPosition(),
	}

	rr := serve(t, b, "/positions")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	rr = serve(t, backend{}, "/positions")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}
