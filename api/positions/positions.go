// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewards/accrual"
	"github.com/vechain/rewards/api/pool"
	"github.com/vechain/rewards/api/utils"
	"github.com/vechain/rewards/store"
	"github.com/vechain/rewards/types"
)

// Backend provides positions together with their claimable rewards.
type Backend interface {
	Position(addr types.Address) (*accrual.Position, uint64, error)
	Positions(fn func(types.Address, *accrual.Position) bool) error
}

// Position is the JSON view of a position.
type Position struct {
	Address          types.Address `json:"address"`
	Share            uint64        `json:"share"`
	StakeFromOthers  uint64        `json:"stakeFromOthers"`
	UnclaimedRewards uint64        `json:"unclaimedRewards"`
	PendingRewards   uint64        `json:"pendingRewards"`
	LastSyncedIndex  string        `json:"lastSyncedIndex"`
	Decays           []pool.Decay  `json:"decays"`
}

// Summary is the stored state of a position, without pending rewards.
type Summary struct {
	Address          types.Address `json:"address"`
	Share            uint64        `json:"share"`
	StakeFromOthers  uint64        `json:"stakeFromOthers"`
	UnclaimedRewards uint64        `json:"unclaimedRewards"`
}

// ConvertPosition converts a position and its pending rewards into the JSON view.
func ConvertPosition(addr types.Address, m *accrual.Position, pending uint64) *Position {
	return &Position{
		Address:          addr,
		Share:            m.Share(),
		StakeFromOthers:  m.StakeFromOthers(),
		UnclaimedRewards: m.UnclaimedRewards(),
		PendingRewards:   pending,
		LastSyncedIndex:  m.LastSyncedIndex().Dec(),
		Decays:           pool.ConvertDecays(m.Decays()),
	}
}

type Positions struct {
	backend Backend
}

func New(backend Backend) *Positions {
	return &Positions{backend}
}

func (p *Positions) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	addr, err := types.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	m, pending, err := p.backend.Position(*addr)
	if err != nil {
		if store.IsNotFound(err) {
			return utils.NotFound(errors.New("position not found"))
		}
		return err
	}
	return utils.WriteJSON(w, ConvertPosition(*addr, m, pending))
}

func (p *Positions) handleListPositions(w http.ResponseWriter, _ *http.Request) error {
	summaries := make([]*Summary, 0)
	err := p.backend.Positions(func(addr types.Address, m *accrual.Position) bool {
		summaries = append(summaries, &Summary{
			Address:          addr,
			Share:            m.Share(),
			StakeFromOthers:  m.StakeFromOthers(),
			UnclaimedRewards: m.UnclaimedRewards(),
		})
		return true
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, summaries)
}

func (p *Positions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("positions_list").
		HandlerFunc(utils.WrapHandlerFunc(p.handleListPositions))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("positions_get").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))
}
