// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/erc20bank/log"
)

func TestLogLevelHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           string
		expectedStatus int
		expectedLevel  string
	}{
		{"get", http.MethodGet, "", http.StatusOK, "info"},
		{"set trace", http.MethodPost, `{"level":"trace"}`, http.StatusOK, "trace"},
		{"set debug", http.MethodPost, `{"level":"debug"}`, http.StatusOK, "debug"},
		{"set warn", http.MethodPost, `{"level":"warn"}`, http.StatusOK, "warn"},
		{"set error", http.MethodPost, `{"level":"error"}`, http.StatusOK, "error"},
		{"set crit", http.MethodPost, `{"level":"crit"}`, http.StatusOK, "crit"},
		{"invalid level", http.MethodPost, `{"level":"loud"}`, http.StatusBadRequest, "info"},
		{"invalid body", http.MethodPost, `{"lvl":"info"}`, http.StatusBadRequest, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var level slog.LevelVar
			level.Set(log.LevelInfo)

			router := mux.NewRouter()
			New(&level).Mount(router, "/admin/loglevel")

			req := httptest.NewRequest(tt.method, "/admin/loglevel", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"currentLevel":"`+tt.expectedLevel+`"}`, rr.Body.String())
			}
			assert.Equal(t, tt.expectedLevel, log.LevelString(level.Level()))
		})
	}
}
