// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package loglevel reads and changes the daemon's verbosity at runtime.
package loglevel

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewards/api/utils"
	"github.com/vechain/rewards/log"
)

var logger = log.WithContext("pkg", "loglevel")

// names follow the --verbosity flag scale, from crit (0) up to trace (5).
var names = map[string]slog.Level{
	"crit":  log.LevelCrit,
	"error": log.LevelError,
	"warn":  log.LevelWarn,
	"info":  log.LevelInfo,
	"debug": log.LevelDebug,
	"trace": log.LevelTrace,
}

// Level is the body of both the request and the response.
type Level struct {
	Level string `json:"level"`
}

func nameOf(l slog.Level) string {
	for name, lvl := range names {
		if lvl == l {
			return name
		}
	}
	return strings.ToLower(l.String())
}

func knownLevels() string {
	all := make([]string, 0, len(names))
	for name := range names {
		all = append(all, name)
	}
	sort.Strings(all)
	return strings.Join(all, ", ")
}

type LogLevel struct {
	level *slog.LevelVar
}

func New(level *slog.LevelVar) *LogLevel {
	return &LogLevel{level: level}
}

func (l *LogLevel) get(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, Level{nameOf(l.level.Level())})
}

func (l *LogLevel) set(w http.ResponseWriter, r *http.Request) error {
	var req Level
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	lvl, ok := names[strings.ToLower(req.Level)]
	if !ok {
		return utils.BadRequest(errors.Errorf("unknown level %q, want one of %s", req.Level, knownLevels()))
	}

	if prev := l.level.Level(); prev != lvl {
		l.level.Set(lvl)
		logger.Info("log level changed", "from", nameOf(prev), "to", nameOf(lvl))
	}
	return utils.WriteJSON(w, Level{nameOf(lvl)})
}

func (l *LogLevel) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods(http.MethodGet).Name("admin_loglevel_get").HandlerFunc(utils.WrapHandlerFunc(l.get))
	sub.Path("").Methods(http.MethodPost).Name("admin_loglevel_set").HandlerFunc(utils.WrapHandlerFunc(l.set))
}
