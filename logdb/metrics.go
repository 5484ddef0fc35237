// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/vechain/erc20bank/metrics"
)

var (
	metricQueryOrderCounter = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order"})
	metricLimitBucket       = metrics.LazyLoadHistogram("logdb_query_limit_bucket", []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
	metricInsertCounter = metrics.LazyLoadCounterVec("logdb_insert_count", []string{"kind"})
)

func metricsHandleFilter(filter *EventFilter) {
	if metrics.NoOp() {
		return
	}

	if filter.Order == DESC {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "asc"})
	}

	if filter.Options != nil {
		limit := min(filter.Options.Limit, 1001)
		metricLimitBucket().Observe(int64(limit))
	}
}
