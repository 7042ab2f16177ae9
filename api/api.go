// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/rewards/api/doc"
	"github.com/vechain/rewards/api/middleware"
	"github.com/vechain/rewards/api/pool"
	"github.com/vechain/rewards/api/positions"
	"github.com/vechain/rewards/log"
)

var logger = log.WithContext("pkg", "api")

// Backend is everything the read API needs from the host.
type Backend interface {
	pool.Backend
	positions.Backend
}

type Options struct {
	AllowedOrigins       string
	Timeout              time.Duration
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	EnableMetrics        bool
}

// New return api router
func New(backend Backend, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	router.PathPrefix("/doc").Handler(
		http.StripPrefix("/doc/", http.FileServer(http.FS(doc.FS))),
	)

	pool.New(backend).
		Mount(router, "/pool")
	positions.New(backend).
		Mount(router, "/positions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	var handler http.Handler = router
	if opts.Timeout > 0 {
		handler = http.TimeoutHandler(handler, opts.Timeout, "request timeout")
	}
	handler = handlers.CompressHandler(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold, opts.Log5xxErrors)(handler)
	}
	return handler
}
