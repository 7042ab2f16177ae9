// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package apilogs switches request logging of the public API on and off.
package apilogs

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/vechain/rewards/api/utils"
	"github.com/vechain/rewards/log"
)

var logger = log.WithContext("pkg", "apilogs")

type LogStatus struct {
	Enabled bool `json:"enabled"`
}

type APILogs struct {
	enabled *atomic.Bool
}

func New(enabled *atomic.Bool) *APILogs {
	return &APILogs{enabled: enabled}
}

func (a *APILogs) get(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, LogStatus{a.enabled.Load()})
}

func (a *APILogs) set(w http.ResponseWriter, r *http.Request) error {
	var req LogStatus
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(err)
	}
	if a.enabled.Swap(req.Enabled) != req.Enabled {
		logger.Info("api request logging toggled", "enabled", req.Enabled)
	}
	return utils.WriteJSON(w, req)
}

func (a *APILogs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods(http.MethodGet).Name("admin_apilogs_get").HandlerFunc(utils.WrapHandlerFunc(a.get))
	sub.Path("").Methods(http.MethodPost).Name("admin_apilogs_set").HandlerFunc(utils.WrapHandlerFunc(a.set))
}
