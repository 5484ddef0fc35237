// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"math/big"

	"github.com/vechain/erc20bank/thor"
)

// Config is fixed when the bank is deployed.
type Config struct {
	Token      thor.Address // token held in escrow
	RewardPool *big.Int     // P, funded by the owner at deployment
	Period     uint64       // T, in seconds
	Owner      thor.Address
	CreatedAt  uint64 // t0, unix seconds
}

// Validate checks the config can back a bank.
func (c *Config) Validate() error {
	switch {
	case c.Owner.IsZero(), c.Token.IsZero():
		return ErrInvalidConfig
	case c.RewardPool == nil || c.RewardPool.Sign() < 0:
		return ErrInvalidConfig
	case c.Period == 0:
		return ErrInvalidConfig
	}
	return nil
}

// Elapsed returns seconds since creation, 0 if now is before creation.
func (c *Config) Elapsed(now uint64) uint64 {
	if now < c.CreatedAt {
		return 0
	}
	return now - c.CreatedAt
}

// Tranches splits the reward pool.
func (c *Config) Tranches() Tranches {
	return NewTranches(c.RewardPool)
}
