// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import "math/big"

// Tranches is the split of the reward pool P. R1+R2+R3 == P.
type Tranches struct {
	R1 *big.Int // P/5, unlocked at 2T
	R2 *big.Int // remainder, unlocked at 3T
	R3 *big.Int // P/2, unlocked at 4T
}

// NewTranches splits pool. Integer remainders land in R2.
func NewTranches(pool *big.Int) Tranches {
	r1 := new(big.Int).Quo(pool, big.NewInt(5))
	r3 := new(big.Int).Quo(pool, big.NewInt(2))
	r2 := new(big.Int).Sub(pool, r1)
	r2.Sub(r2, r3)
	return Tranches{R1: r1, R2: r2, R3: r3}
}

// Total returns R1+R2+R3.
func (t Tranches) Total() *big.Int {
	sum := new(big.Int).Add(t.R1, t.R2)
	return sum.Add(sum, t.R3)
}

// Unlocked returns the part of the pool unlocked after elapsed seconds.
// The bool result is false before 2T, when nothing may be withdrawn.
func (t Tranches) Unlocked(elapsed, period uint64) (*big.Int, bool) {
	// whole periods elapsed, k*T could overflow
	switch n := elapsed / period; {
	case n < 2:
		return nil, false
	case n == 2:
		return new(big.Int).Set(t.R1), true
	case n == 3:
		return new(big.Int).Add(t.R1, t.R2), true
	default:
		return t.Total(), true
	}
}
