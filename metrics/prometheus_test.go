// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	m := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		m[mf.GetName()] = mf
	}
	return m
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("test_deposits").Add(2)
	Counter("test_deposits").Add(3)

	ops := CounterVec("test_ops", []string{"op", "result"})
	ops.AddWithLabel(1, map[string]string{"op": "deposit", "result": "ok"})
	ops.AddWithLabel(1, map[string]string{"op": "deposit", "result": "ok"})
	ops.AddWithLabel(1, map[string]string{"op": "withdraw", "result": "too_early"})

	pool := Gauge("test_pool")
	pool.Set(100)
	pool.Add(-40)

	participants := GaugeVec("test_participants", []string{"state"})
	participants.SetWithLabel(3, map[string]string{"state": "staked"})
	participants.AddWithLabel(1, map[string]string{"state": "staked"})

	Histogram("test_latency", []int64{1, 10, 100}).Observe(7)
	HistogramVec("test_req", []string{"route"}, BucketHTTPReqs).
		ObserveWithLabels(20, map[string]string{"route": "/bank"})

	m := gather(t)

	assert.Equal(t, float64(5), m["bank_test_deposits"].Metric[0].GetCounter().GetValue())

	var opsTotal float64
	for _, metric := range m["bank_test_ops"].Metric {
		opsTotal += metric.GetCounter().GetValue()
	}
	assert.Equal(t, float64(3), opsTotal)
	assert.Len(t, m["bank_test_ops"].Metric, 2)

	assert.Equal(t, float64(60), m["bank_test_pool"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(4), m["bank_test_participants"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(7), m["bank_test_latency"].Metric[0].GetHistogram().GetSampleSum())
	assert.Equal(t, uint64(1), m["bank_test_req"].Metric[0].GetHistogram().GetSampleCount())

	srv := httptest.NewServer(HTTPHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
}

func TestLazyLoading(t *testing.T) {
	prev := metrics
	metrics = defaultNoopMetrics()
	t.Cleanup(func() { metrics = prev })

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// meters resolved after initialization are of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
