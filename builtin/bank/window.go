// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import "fmt"

// CanDeposit reports whether the deposit window is open, i.e. now < t0 + T.
func (c *Config) CanDeposit(now uint64) bool {
	return c.Elapsed(now) < c.Period
}

// Phase is the lifecycle stage of the bank, derived from time only.
type Phase uint8

const (
	PhaseOpen     Phase = iota // deposits accepted
	PhaseLocked                // stakes locked, nothing withdrawable
	PhaseTranche1              // R1 unlocked
	PhaseTranche2              // R1+R2 unlocked
	PhaseTranche3              // whole pool unlocked, owner may reclaim
)

var phaseNames = [...]string{"open", "locked", "tranche1", "tranche2", "tranche3"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Phase returns the phase at now.
func (c *Config) Phase(now uint64) Phase {
	n := c.Elapsed(now) / c.Period
	if n >= uint64(PhaseTranche3) {
		return PhaseTranche3
	}
	return Phase(n)
}
