// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranches(t *testing.T) {
	tests := []struct {
		pool       int64
		r1, r2, r3 int64
	}{
		{1000, 200, 300, 500},
		{0, 0, 0, 0},
		{1, 0, 1, 0},
		{7, 1, 3, 3},
		{9, 1, 4, 4},
	}
	for _, tt := range tests {
		tr := NewTranches(big.NewInt(tt.pool))
		assert.Equal(t, tt.r1, tr.R1.Int64(), "R1 of %d", tt.pool)
		assert.Equal(t, tt.r2, tr.R2.Int64(), "R2 of %d", tt.pool)
		assert.Equal(t, tt.r3, tr.R3.Int64(), "R3 of %d", tt.pool)
		assert.Equal(t, tt.pool, tr.Total().Int64())
	}
}

func TestUnlocked(t *testing.T) {
	const period = 3600
	tr := NewTranches(big.NewInt(1000))

	tests := []struct {
		elapsed uint64
		want    int64
		ok      bool
	}{
		{0, 0, false},
		{2*period - 1, 0, false},
		{2 * period, 200, true},
		{2*period + 36, 200, true},
		{3*period - 1, 200, true},
		{3 * period, 500, true},
		{4*period - 1, 500, true},
		{4 * period, 1000, true},
		{100 * period, 1000, true},
	}
	for _, tt := range tests {
		got, ok := tr.Unlocked(tt.elapsed, period)
		require.Equal(t, tt.ok, ok, "elapsed %d", tt.elapsed)
		if ok {
			assert.Equal(t, tt.want, got.Int64(), "elapsed %d", tt.elapsed)
		}
	}

	// returned values are copies
	got, _ := tr.Unlocked(2*period, period)
	got.SetInt64(0)
	assert.Equal(t, int64(200), tr.R1.Int64())
}

func TestUnlockedHugePeriod(t *testing.T) {
	tr := NewTranches(big.NewInt(10))
	period := uint64(1) << 62

	_, ok := tr.Unlocked(period*3, period)
	assert.True(t, ok)
	got, ok := tr.Unlocked(^uint64(0), period)
	assert.True(t, ok)
	assert.Equal(t, int64(5), got.Int64())
}

func TestTranchesFuzz(t *testing.T) {
	f := fuzz.New().NilChance(0)

	for range 500 {
		var (
			pool   uint64
			period uint32
			e1, e2 uint64
			mult   uint64
		)
		f.Fuzz(&pool)
		f.Fuzz(&period)
		f.Fuzz(&e1)
		f.Fuzz(&e2)
		f.Fuzz(&mult)
		if period == 0 {
			period = 1
		}
		if e1 > e2 {
			e1, e2 = e2, e1
		}

		p := new(big.Int).SetUint64(pool)
		p.Mul(p, new(big.Int).SetUint64(mult|1))
		tr := NewTranches(p)

		// the split always sums to the pool
		assert.Equal(t, 0, tr.Total().Cmp(p))
		for _, r := range []*big.Int{tr.R1, tr.R2, tr.R3} {
			assert.GreaterOrEqual(t, r.Sign(), 0)
		}

		// unlocking never decreases over time and never exceeds the pool
		u1, ok1 := tr.Unlocked(e1, uint64(period))
		u2, ok2 := tr.Unlocked(e2, uint64(period))
		if ok1 {
			require.True(t, ok2)
			assert.LessOrEqual(t, u1.Cmp(u2), 0)
		}
		if ok2 {
			assert.LessOrEqual(t, u2.Cmp(p), 0)
		}
	}
}

func TestPhase(t *testing.T) {
	cfg := &Config{Period: 3600, CreatedAt: 1_000_000}

	tests := []struct {
		now  uint64
		want Phase
		open bool
	}{
		{0, PhaseOpen, true},
		{1_000_000, PhaseOpen, true},
		{1_003_599, PhaseOpen, true},
		{1_003_600, PhaseLocked, false},
		{1_007_200, PhaseTranche1, false},
		{1_010_800, PhaseTranche2, false},
		{1_014_399, PhaseTranche2, false},
		{1_014_400, PhaseTranche3, false},
		{^uint64(0), PhaseTranche3, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.Phase(tt.now), "now %d", tt.now)
		assert.Equal(t, tt.open, cfg.CanDeposit(tt.now), "now %d", tt.now)
	}

	assert.Equal(t, "tranche2", PhaseTranche2.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
	text, err := PhaseLocked.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "locked", string(text))
}
