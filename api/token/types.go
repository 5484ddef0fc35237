// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/erc20bank/thor"
)

type Token struct {
	Address     thor.Address          `json:"address"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

type Balance struct {
	Address thor.Address          `json:"address"`
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type Allowance struct {
	Owner     thor.Address          `json:"owner"`
	Spender   thor.Address          `json:"spender"`
	Allowance *math.HexOrDecimal256 `json:"allowance"`
}

// ApproveRequest lets spender move up to amount of owner's tokens.
type ApproveRequest struct {
	Owner   *thor.Address         `json:"owner"`
	Spender *thor.Address         `json:"spender"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

type TransferRequest struct {
	From   *thor.Address         `json:"from"`
	To     *thor.Address         `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}
