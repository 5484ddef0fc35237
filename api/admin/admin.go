// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/erc20bank/api/admin/apilogs"
	healthAPI "github.com/vechain/erc20bank/api/admin/health"
	"github.com/vechain/erc20bank/api/admin/loglevel"
	"github.com/vechain/erc20bank/health"
)

func New(logLevel *slog.LevelVar, apiLogsToggle *atomic.Bool, health *health.Health) http.HandlerFunc {
	router := mux.NewRouter()
	subRouter := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(subRouter, "/loglevel")
	apilogs.New(apiLogsToggle).Mount(subRouter, "/apilogs")
	healthAPI.NewAPI(health).Mount(subRouter, "/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
