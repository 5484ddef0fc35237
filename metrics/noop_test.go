// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	prev := metrics
	metrics = defaultNoopMetrics()
	t.Cleanup(func() { metrics = prev })

	assert.Nil(t, HTTPHandler())
	assert.True(t, NoOp())

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGaugeVec", nil),
		Counter("noopCounter"),
		CounterVec("noopCounterVec", nil),
		Histogram("noopHist", nil),
		HistogramVec("noopHistVec", nil, nil),
	} {
		assert.IsType(t, &noopMeters{}, a)
	}

	// never panics, whatever the labels
	CounterVec("ops", []string{"op"}).AddWithLabel(1, map[string]string{"nonsense": "x"})
	GaugeVec("pool", []string{"op"}).SetWithLabel(1, nil)
	HistogramVec("lat", []string{"op"}, nil).ObserveWithLabels(1, nil)
}
