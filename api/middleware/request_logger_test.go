// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/rewards/log"
)

// mockLogger is a simple logger implementation for testing purposes
type mockLogger struct {
	loggedData []any
}

func (m *mockLogger) With(_ ...any) log.Logger  { return m }
func (m *mockLogger) Trace(_ string, _ ...any)  {}
func (m *mockLogger) Debug(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)   {}
func (m *mockLogger) Error(_ string, _ ...any)  {}
func (m *mockLogger) Info(_ string, ctx ...any) { m.loggedData = append(m.loggedData, ctx...) }

func TestRequestLoggerHandler(t *testing.T) {
	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	}
	tests := []struct {
		name                 string
		handler              http.HandlerFunc
		enabled              bool
		slowQueriesThreshold time.Duration
		log5xxErrors         bool
		expectedStatusCode   int
		shouldLog            bool
	}{
		{
			name:               "all logging enabled",
			handler:            ok,
			enabled:            true,
			expectedStatusCode: http.StatusOK,
			shouldLog:          true,
		},
		{
			name:               "all logging disabled",
			handler:            ok,
			expectedStatusCode: http.StatusOK,
		},
		{
			name: "slow query over threshold",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(15 * time.Millisecond)
				ok(w, r)
			},
			slowQueriesThreshold: 10 * time.Millisecond,
			expectedStatusCode:   http.StatusOK,
			shouldLog:            true,
		},
		{
			name:                 "fast query under threshold",
			handler:              ok,
			slowQueriesThreshold: time.Second,
			expectedStatusCode:   http.StatusOK,
		},
		{
			name: "5xx logged",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			log5xxErrors:       true,
			expectedStatusCode: http.StatusInternalServerError,
			shouldLog:          true,
		},
		{
			name: "4xx not logged",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			log5xxErrors:       true,
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			var enabled atomic.Bool
			enabled.Store(tt.enabled)

			handler := RequestLoggerMiddleware(logger, &enabled, tt.slowQueriesThreshold, tt.log5xxErrors)(tt.handler)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/pool?x=1", nil)
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			if !tt.shouldLog {
				assert.Empty(t, logger.loggedData)
				return
			}
			assert.Contains(t, logger.loggedData, "/pool?x=1")
			assert.Contains(t, logger.loggedData, http.MethodGet)
			assert.Contains(t, logger.loggedData, tt.expectedStatusCode)
		})
	}
}
