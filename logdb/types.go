// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/vechain/erc20bank/thor"
)

// Kind is the kind of bank event.
type Kind string

const (
	KindDeploy   Kind = "deploy"
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindReclaim  Kind = "reclaim"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDeploy, KindDeposit, KindWithdraw, KindReclaim:
		return true
	}
	return false
}

// Event is a committed bank operation.
type Event struct {
	Seq         uint64 // assigned on commit
	Kind        Kind
	Timestamp   uint64
	Bank        thor.Address
	Participant thor.Address // depositor, withdrawer or owner
	Amount      *big.Int     // deposited amount, withdrawn principal, reclaimed amount or reward pool
	Reward      *big.Int     // withdraw only
	Digest      thor.Bytes32 // digest of the storage changes committed with the event
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive timestamp range. To < From means unbounded.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventFilter selects events. Nil fields match everything.
type EventFilter struct {
	Participant *thor.Address
	Kinds       []Kind
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
