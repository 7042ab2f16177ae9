// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

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
	"github.com/vechain/rewards/accrual/lockup"
	"github.com/vechain/rewards/lvldb"
	"github.com/vechain/rewards/store"
)

type backend struct {
	pool *accrual.Pool
	err  error
}

func (b *backend) Pool() (*accrual.Pool, error) {
	return b.pool, b.err
}

func (b *backend) RewardsToDistribute() (uint64, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.pool.RewardsToDistribute(1000 * lockup.SecondsPerDay)
}

func serve(t *testing.T, b Backend, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	New(b).Mount(router, "/pool")
	rr := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetPool(t *testing.T) {
	now := uint64(1000 * lockup.SecondsPerDay)
	p := accrual.NewPool()
	require.NoError(t, p.FillVault(500, now+5*lockup.SecondsPerDay, now))
	m := accrual.NewPosition()
	require.NoError(t, p.Deposit(m, 10, lockup.ThreeMonths, now, nil))

	rr := serve(t, &backend{pool: p}, "/pool")
	require.Equal(t, http.StatusOK, rr.Code)

	var view Pool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, uint64(20), view.TotalShare)
	assert.Equal(t, "0", view.CumulativeIndex)
	assert.Equal(t, uint64(500), view.TokensAvailableForDistribution)
	assert.Nil(t, view.LastIndex)
	assert.Equal(t, []Decay{{Day: now + 90*lockup.SecondsPerDay, Amount: 10}}, view.ScheduledDecays)

	rr = serve(t, &backend{pool: p}, "/pool/rewards")
	require.Equal(t, http.StatusOK, rr.Code)
	var rewards Rewards
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rewards))
	assert.Equal(t, uint64(100), rewards.Rewards)
}

func TestGetPoolErrors(t *testing.T) {
	db, err := lvldb.OpenMem()
	require.NoError(t, err)
	defer db.Close()
	st, err := store.New(db, 4)
	require.NoError(t, err)
	_, notFound := st.Pool()
	require.True(t, store.IsNotFound(notFound))

	rr := serve(t, &backend{err: errors.Wrap(notFound, "load")}, "/pool")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, &backend{err: errors.New("disk on fire")}, "/pool/rewards")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
