// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the built-in contracts to their addresses.
package builtin

import (
	"github.com/vechain/erc20bank/builtin/bank"
	"github.com/vechain/erc20bank/builtin/solidity"
	"github.com/vechain/erc20bank/builtin/token"
	"github.com/vechain/erc20bank/state"
	"github.com/vechain/erc20bank/thor"
)

// Builtin contracts binding.
var (
	Token = &tokenContract{thor.BytesToAddress([]byte("Token"))}
)

type tokenContract struct{ Address thor.Address }

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return token.New(solidity.NewContext(t.Address, state))
}

// BankAt binds the bank deployed at addr, holding tokens of the builtin token.
func BankAt(addr thor.Address, state *state.State) *bank.Bank {
	return bank.New(solidity.NewContext(addr, state), Token.WithState(state))
}

// DeployBank deploys a bank at addr escrowing the builtin token.
func DeployBank(addr thor.Address, state *state.State, cfg bank.Config) (*bank.Bank, error) {
	return bank.Deploy(solidity.NewContext(addr, state), Token.WithState(state), cfg)
}
