// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/erc20bank/metrics"
	"github.com/vechain/erc20bank/test"
	"github.com/vechain/erc20bank/test/testledger"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func newTestLedger(t *testing.T) *testledger.Ledger {
	tl, err := testledger.New()
	require.NoError(t, err)
	t.Cleanup(tl.Close)
	return tl
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestMetricsMiddleware(t *testing.T) {
	tl := newTestLedger(t)

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.PathPrefix("/").Handler(New(tl.Ledger, Options{EnableMetrics: true, EventsLimit: 10}))
	ts := httptest.NewServer(router)
	defer ts.Close()

	httpGet(t, ts.URL+"/bank")
	httpGet(t, ts.URL+"/bank")
	_, code := httpGet(t, ts.URL+"/bank/stakes/0x")
	assert.Equal(t, http.StatusBadRequest, code)

	body, _ := httpGet(t, ts.URL+"/metrics")
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, m := range families["bank_api_request_count"].GetMetric() {
		var name, code string
		for _, l := range m.GetLabel() {
			switch l.GetName() {
			case "name":
				name = l.GetValue()
			case "code":
				code = l.GetValue()
			}
		}
		counts[name+"/"+code] = m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(2), counts["bank_get_info/200"])
	assert.Equal(t, float64(1), counts["bank_get_stake/400"])
	assert.NotNil(t, families["bank_api_duration_ms"])
}

func TestHeaders(t *testing.T) {
	tl := newTestLedger(t)
	handler := New(tl.Ledger, Options{AllowedOrigins: "https://example.org", EventsLimit: 10})

	req := httptest.NewRequest(http.MethodGet, "/bank", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, tl.GenesisID().String(), rr.Header().Get("x-genesis-id"))
	assert.Equal(t, "https://example.org", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), tl.BankAddress().String()))
}

func TestStartAPIServer(t *testing.T) {
	tl := newTestLedger(t)
	enabled := &atomic.Bool{}
	url, stop, err := StartAPIServer("127.0.0.1:0", New(tl.Ledger, Options{EnableReqLogger: enabled, EventsLimit: 10}))
	require.NoError(t, err)
	defer stop()

	require.NoError(t, test.Retry(func() error {
		res, err := http.Get(url + "events") //#nosec G107
		if err != nil {
			return err
		}
		res.Body.Close()
		return nil
	}, 10*time.Millisecond, time.Second))

	_, code := httpGet(t, url+"token/balances/"+tl.Accounts[0].String())
	assert.Equal(t, http.StatusOK, code)
}

func TestStartMetricsServer(t *testing.T) {
	url, stop, err := StartMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	defer stop()

	body, code := httpGet(t, url)
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body)
}
