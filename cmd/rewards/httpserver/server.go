// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/rewards/log"
)

var logger = log.WithContext("pkg", "httpserver")

// Server is a listening HTTP server whose lifetime is bound to a context.
type Server struct {
	name     string
	path     string
	srv      *http.Server
	listener net.Listener
}

// Listen binds addr. Serving starts with Serve.
func Listen(name, addr, path string, handler http.Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	return &Server{
		name:     name,
		path:     path,
		srv:      &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second},
		listener: listener,
	}, nil
}

// Close releases a server that never started serving.
func (s *Server) Close() error {
	return s.listener.Close()
}

// CloseAll closes servers opened before a later one failed to listen.
func CloseAll(servers []*Server) {
	for _, srv := range servers {
		if err := srv.Close(); err != nil {
			logger.Warn("failed to close server", "name", srv.name, "err", err)
		}
	}
}

func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String() + s.path
}

// Serve blocks until ctx is done, then shuts the server down.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(s.listener)
	}()
	logger.Info("server started", "name", s.name, "url", s.URL())

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "serve %s", s.name)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("stopping server...", "name", s.name)
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrapf(err, "shutdown %s", s.name)
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return errors.Wrapf(err, "serve %s", s.name)
	}
	return nil
}
