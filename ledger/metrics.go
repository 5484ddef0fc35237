// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math"
	"math/big"

	"github.com/vechain/erc20bank/builtin/bank"
	"github.com/vechain/erc20bank/metrics"
)

var (
	metricOpsCount     = metrics.LazyLoadCounterVec("ops_count", []string{"op", "result"})
	metricStakePool    = metrics.LazyLoadGauge("stake_pool")
	metricParticipants = metrics.LazyLoadGauge("participants")
	metricRewardPaid   = metrics.LazyLoadCounter("reward_paid")
	metricPhase        = metrics.LazyLoadGaugeVec("phase", []string{"phase"})
)

// setPhase flags current with 1 and every other phase with 0.
func setPhase(current bank.Phase) {
	for p := bank.PhaseOpen; p <= bank.PhaseTranche3; p++ {
		var v int64
		if p == current {
			v = 1
		}
		metricPhase().SetWithLabel(v, map[string]string{"phase": p.String()})
	}
}

// clampInt64 saturates v to the int64 range meters accept.
func clampInt64(v *big.Int) int64 {
	if v.IsInt64() {
		return v.Int64()
	}
	if v.Sign() < 0 {
		return math.MinInt64
	}
	return math.MaxInt64
}
