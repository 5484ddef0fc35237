// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes the initial state of a bank network: the token
// allocations and the bank deployment.
package genesis

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/builtin"
	"github.com/vechain/erc20bank/builtin/bank"
	"github.com/vechain/erc20bank/state"
	"github.com/vechain/erc20bank/thor"
)

// Allocation is an initial token balance.
type Allocation struct {
	Address thor.Address
	Amount  *big.Int
}

// Genesis to build the initial state.
type Genesis struct {
	name       string
	launchTime uint64
	owner      thor.Address
	nonce      uint64
	rewardPool *big.Int
	period     uint64
	allocs     []Allocation
	id         thor.Bytes32
}

func newGenesis(name string, launchTime uint64, owner thor.Address, nonce uint64, pool *big.Int, period uint64, allocs []Allocation) *Genesis {
	g := &Genesis{
		name:       name,
		launchTime: launchTime,
		owner:      owner,
		nonce:      nonce,
		rewardPool: pool,
		period:     period,
		allocs:     allocs,
	}
	g.id = g.computeID()
	return g
}

// computeID hashes the RLP list of the canonical fields, so no two
// distinct configs share an encoding.
func (g *Genesis) computeID() thor.Bytes32 {
	return thor.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			g.name,
			g.launchTime,
			g.owner,
			g.nonce,
			g.rewardPool,
			g.period,
			g.allocs,
		})
	})
}

// ID returns the genesis id, which identifies the network.
func (g *Genesis) ID() thor.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the bank creation time. Zero means the time of the first build.
func (g *Genesis) LaunchTime() uint64 {
	return g.launchTime
}

// Owner returns the bank owner.
func (g *Genesis) Owner() thor.Address {
	return g.owner
}

// BankAddress returns the address the bank is deployed at.
func (g *Genesis) BankAddress() thor.Address {
	return thor.CreateContractAddress(g.owner, g.nonce)
}

// Allocations returns the initial token balances.
func (g *Genesis) Allocations() []Allocation {
	return g.allocs
}

// BankConfig returns the bank config for a bank created at createdAt.
func (g *Genesis) BankConfig(createdAt uint64) bank.Config {
	return bank.Config{
		Token:      builtin.Token.Address,
		RewardPool: new(big.Int).Set(g.rewardPool),
		Period:     g.period,
		Owner:      g.owner,
		CreatedAt:  createdAt,
	}
}

// Build writes the initial state: mints the allocations, lets the owner
// approve the bank for the reward pool and deploys the bank. now is the
// creation time when the launch time is zero.
func (g *Genesis) Build(st *state.State, now uint64) (*bank.Bank, error) {
	tk := builtin.Token.WithState(st)
	for _, a := range g.allocs {
		if err := tk.Mint(a.Address, a.Amount); err != nil {
			return nil, errors.Wrapf(err, "mint %v", a.Address)
		}
	}

	addr := g.BankAddress()
	if err := tk.Approve(g.owner, addr, g.rewardPool); err != nil {
		return nil, errors.Wrap(err, "approve reward pool")
	}

	createdAt := g.launchTime
	if createdAt == 0 {
		createdAt = now
	}
	b, err := builtin.DeployBank(addr, st, g.BankConfig(createdAt))
	if err != nil {
		return nil, errors.WithMessage(err, "deploy bank")
	}
	return b, nil
}
