// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/rewards/accrual"
	"github.com/vechain/rewards/api/utils"
	"github.com/vechain/rewards/store"
)

// Backend provides the pool state.
type Backend interface {
	Pool() (*accrual.Pool, error)
	RewardsToDistribute() (uint64, error)
}

type PoolAPI struct {
	backend Backend
}

func New(backend Backend) *PoolAPI {
	return &PoolAPI{backend}
}

func (p *PoolAPI) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	pool, err := p.backend.Pool()
	if err != nil {
		if store.IsNotFound(err) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, ConvertPool(pool))
}

func (p *PoolAPI) handleGetRewards(w http.ResponseWriter, _ *http.Request) error {
	rewards, err := p.backend.RewardsToDistribute()
	if err != nil {
		if store.IsNotFound(err) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Rewards{rewards})
}

func (p *PoolAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("pool_get").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/rewards").
		Methods(http.MethodGet).
		Name("pool_get_rewards").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetRewards))
}
