// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"

	"github.com/vechain/erc20bank/api/utils"
	"github.com/vechain/erc20bank/ledger"
	"github.com/vechain/erc20bank/thor"
)

type Tokens struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Tokens {
	return &Tokens{ledger}
}

func parseAddress(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, utils.BadRequest(pkgerrors.WithMessage(err, name))
	}
	return addr, nil
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, _ *http.Request) error {
	supply, err := t.ledger.TotalSupply()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Token{t.ledger.TokenAddress(), (*math.HexOrDecimal256)(supply)})
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	bal, err := t.ledger.BalanceOf(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{addr, (*math.HexOrDecimal256)(bal)})
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseAddress(req, "owner")
	if err != nil {
		return err
	}
	spender, err := parseAddress(req, "spender")
	if err != nil {
		return err
	}
	allowance, err := t.ledger.Allowance(owner, spender)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{owner, spender, (*math.HexOrDecimal256)(allowance)})
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}
	if body.Owner == nil || body.Spender == nil || body.Amount == nil {
		return utils.BadRequest(errors.New("body: owner, spender and amount required"))
	}
	if err := t.ledger.Approve(*body.Owner, *body.Spender, (*big.Int)(body.Amount)); err != nil {
		return utils.Reverted(err)
	}
	return utils.WriteJSON(w, &Allowance{*body.Owner, *body.Spender, body.Amount})
}

func (t *Tokens) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}
	if body.From == nil || body.To == nil || body.Amount == nil {
		return utils.BadRequest(errors.New("body: from, to and amount required"))
	}
	if err := t.ledger.Transfer(*body.From, *body.To, (*big.Int)(body.Amount)); err != nil {
		return utils.Reverted(err)
	}
	bal, err := t.ledger.BalanceOf(*body.From)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{*body.From, (*math.HexOrDecimal256)(bal)})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("token_get_token").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/balances/{address}").
		Methods(http.MethodGet).
		Name("token_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("token_get_allowance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/approvals").
		Methods(http.MethodPost).
		Name("token_approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
	sub.Path("/transfers").
		Methods(http.MethodPost).
		Name("token_transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer))
}
