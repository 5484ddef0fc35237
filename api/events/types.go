// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/erc20bank/logdb"
	"github.com/vechain/erc20bank/thor"
)

// Event is the json form of a recorded bank operation.
type Event struct {
	Seq         uint64                `json:"seq"`
	Kind        logdb.Kind            `json:"kind"`
	Timestamp   uint64                `json:"timestamp"`
	Bank        thor.Address          `json:"bank"`
	Participant thor.Address          `json:"participant"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Reward      *math.HexOrDecimal256 `json:"reward,omitempty"`
	Digest      thor.Bytes32          `json:"digest"`
}

// ConvertEvent converts a logdb event.
func ConvertEvent(ev *logdb.Event) *Event {
	e := &Event{
		Seq:         ev.Seq,
		Kind:        ev.Kind,
		Timestamp:   ev.Timestamp,
		Bank:        ev.Bank,
		Participant: ev.Participant,
		Amount:      toHex(ev.Amount),
		Digest:      ev.Digest,
	}
	if ev.Kind == logdb.KindWithdraw {
		e.Reward = toHex(ev.Reward)
	}
	return e
}

func toHex(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		v = new(big.Int)
	}
	return (*math.HexOrDecimal256)(v)
}
