// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements an ERC20-like fungible token kept in contract storage.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/builtin/reverts"
	"github.com/vechain/erc20bank/builtin/solidity"
	"github.com/vechain/erc20bank/log"
	"github.com/vechain/erc20bank/thor"
)

var logger = log.WithContext("pkg", "token")

var (
	ErrInsufficientBalance   = reverts.New("insufficient balance")
	ErrInsufficientAllowance = reverts.New("insufficient allowance")
	ErrZeroAddress           = reverts.New("zero address")
	ErrContractAccount       = reverts.New("contract account cannot sign")
	ErrNegativeAmount        = reverts.New("negative amount")
)

var (
	slotTotalSupply = thor.BytesToBytes32([]byte("total-supply"))
	slotBalances    = thor.BytesToBytes32([]byte("balances"))
	slotAllowances  = thor.BytesToBytes32([]byte("allowances"))
)

// Token implements the token contract.
type Token struct {
	addr        thor.Address
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[thor.Address, *big.Int]
	allowances  *solidity.Mapping[thor.Bytes32, *big.Int]
}

// New binds the token at the address of sctx.
func New(sctx *solidity.Context) *Token {
	return &Token{
		addr:        sctx.Address(),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		balances:    solidity.NewMapping[thor.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[thor.Bytes32, *big.Int](sctx, slotAllowances),
	}
}

func allowanceKey(owner, spender thor.Address) thor.Bytes32 {
	return thor.Blake2b(owner.Bytes(), spender.Bytes())
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Address returns the token contract address.
func (t *Token) Address() thor.Address {
	return t.addr
}

// TotalSupply returns the amount of tokens in existence.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

// BalanceOf returns the balance of addr.
func (t *Token) BalanceOf(addr thor.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

// Allowance returns the remaining amount spender may move out of owner's balance.
func (t *Token) Allowance(owner, spender thor.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey(owner, spender))
}

// Mint creates amount tokens for to. Only used when building genesis.
func (t *Token) Mint(to thor.Address, amount *big.Int) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return errors.WithMessage(err, "mint")
	}
	bal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	return t.balances.Set(to, bal.Add(bal, amount))
}

// Approve sets the allowance of spender over owner's tokens, replacing any previous one.
func (t *Token) Approve(owner, spender thor.Address, amount *big.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return ErrZeroAddress
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	logger.Trace("approve", "owner", owner, "spender", spender, "amount", amount)
	return t.allowances.Set(allowanceKey(owner, spender), amount)
}

// Transfer moves amount from the caller's balance to to.
func (t *Token) Transfer(from, to thor.Address, amount *big.Int) error {
	if from.IsZero() || to.IsZero() {
		return ErrZeroAddress
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	return t.move(from, to, amount)
}

// TransferFrom moves amount from from to to, spending spender's allowance.
func (t *Token) TransferFrom(spender, from, to thor.Address, amount *big.Int) error {
	if spender.IsZero() || from.IsZero() || to.IsZero() {
		return ErrZeroAddress
	}
	if err := checkAmount(amount); err != nil {
		return err
	}

	key := allowanceKey(from, spender)
	allowance, err := t.allowances.Get(key)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	// balance is checked before anything is written
	bal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := t.allowances.Set(key, allowance.Sub(allowance, amount)); err != nil {
		return err
	}
	return t.move(from, to, amount)
}

func (t *Token) move(from, to thor.Address, amount *big.Int) error {
	fromBal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := t.balances.Set(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}

	toBal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if err := t.balances.Set(to, toBal.Add(toBal, amount)); err != nil {
		return err
	}
	logger.Trace("transfer", "from", from, "to", to, "amount", amount)
	return nil
}
