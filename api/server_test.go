// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/erc20bank/health"
	"github.com/vechain/erc20bank/log"
)

func TestStartAdminServer(t *testing.T) {
	var (
		level   slog.LevelVar
		apiLogs atomic.Bool
	)
	level.Set(log.LevelInfo)

	url, stop, err := StartAdminServer("127.0.0.1:0", &level, &apiLogs, health.New(clockwork.NewRealClock(), nil))
	require.NoError(t, err)
	defer stop()

	res, err := http.Post(url+"/loglevel", "application/json", strings.NewReader(`{"level":"debug"}`)) //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, log.LevelDebug, level.Level())

	res, err = http.Post(url+"/apilogs", "application/json", strings.NewReader(`{"enabled":true}`)) //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, apiLogs.Load())

	res, err = http.Get(url + "/health") //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
