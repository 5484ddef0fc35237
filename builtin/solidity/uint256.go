// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/thor"
)

// ErrUint256Overflow is returned when a value does not fit into an unsigned 256-bit word.
var ErrUint256Overflow = errors.New("uint256 overflow")

// Uint256 is a wrapper for storage and retrieval of an uint256. Similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     thor.Bytes32
}

func NewUint256(context *Context, pos thor.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

// Set stores value. Negative values and values above 2^256-1 are rejected.
func (u *Uint256) Set(value *big.Int) error {
	v, overflow := uint256.FromBig(value)
	if overflow || value.Sign() < 0 {
		return errors.Wrapf(ErrUint256Overflow, "set %v", value)
	}
	u.context.state.SetStorage(u.context.address, u.pos, thor.Bytes32(v.Bytes32()))
	return nil
}

func (u *Uint256) Add(delta *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Add(storage, delta))
}

// Sub subtracts delta, failing with ErrUint256Overflow on underflow.
func (u *Uint256) Sub(delta *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Sub(storage, delta))
}
