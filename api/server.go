// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/api/admin"
	"github.com/vechain/erc20bank/co"
	"github.com/vechain/erc20bank/health"
	"github.com/vechain/erc20bank/metrics"
)

// serve listens on addr and serves handler in the background. The returned
// url is the listener address joined with path; stop closes the server and
// waits for the serving goroutine.
func serve(name, addr, path string, handler http.Handler) (url string, stop func(), err error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen %v addr [%v]", name, addr)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("server stopped", "name", name, "err", err)
		}
	})
	stop = func() {
		srv.Close()
		goes.Wait()
	}
	return "http://" + listener.Addr().String() + path, stop, nil
}

// StartAPIServer serves the bank API handler on addr.
func StartAPIServer(addr string, handler http.Handler) (string, func(), error) {
	return serve("API", addr, "/", handler)
}

// StartMetricsServer exposes the prometheus registry on addr under /metrics.
func StartMetricsServer(addr string) (string, func(), error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return serve("metrics API", addr, "/metrics", handlers.CompressHandler(router))
}

// StartAdminServer serves the admin endpoints on addr.
func StartAdminServer(addr string, logLevel *slog.LevelVar, apiLogs *atomic.Bool, health *health.Health) (string, func(), error) {
	return serve("admin API", addr, "/admin", admin.New(logLevel, apiLogs, health))
}
