// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"

	"github.com/vechain/erc20bank/api/events"
	"github.com/vechain/erc20bank/api/utils"
	"github.com/vechain/erc20bank/builtin/bank"
	"github.com/vechain/erc20bank/ledger"
	"github.com/vechain/erc20bank/logdb"
	"github.com/vechain/erc20bank/thor"
)

type Bank struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Bank {
	return &Bank{ledger}
}

// reverted maps rejected calls to client errors.
func reverted(err error) error {
	if errors.Is(err, bank.ErrNotOwner) {
		return utils.Forbidden(err)
	}
	return utils.Reverted(err)
}

func parseAddress(req *http.Request) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return thor.Address{}, utils.BadRequest(pkgerrors.WithMessage(err, "address"))
	}
	return addr, nil
}

func parseCaller(req *http.Request) (thor.Address, error) {
	var body CallerRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return thor.Address{}, utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}
	if body.Caller == nil {
		return thor.Address{}, utils.BadRequest(errors.New("body: caller required"))
	}
	return *body.Caller, nil
}

func (b *Bank) handleGetInfo(w http.ResponseWriter, _ *http.Request) error {
	info, err := b.ledger.Info()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertInfo(info))
}

func (b *Bank) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	stake, err := b.ledger.StakeOf(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Stake{addr, (*math.HexOrDecimal256)(stake)})
}

func (b *Bank) handleGetParticipant(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	p, err := b.ledger.Participant(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Participant{
		Address:   addr,
		Stake:     (*math.HexOrDecimal256)(p.Stake),
		Withdrawn: p.Withdrawn,
	})
}

func (b *Bank) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	var body DepositRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}
	if body.Caller == nil {
		return utils.BadRequest(errors.New("body: caller required"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("body: amount required"))
	}
	ev, err := b.ledger.Deposit(*body.Caller, (*big.Int)(body.Amount))
	return b.writeEvent(w, ev, err)
}

func (b *Bank) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	caller, err := parseCaller(req)
	if err != nil {
		return err
	}
	ev, err := b.ledger.Withdraw(caller)
	return b.writeEvent(w, ev, err)
}

func (b *Bank) handleReclaim(w http.ResponseWriter, req *http.Request) error {
	caller, err := parseCaller(req)
	if err != nil {
		return err
	}
	ev, err := b.ledger.WithdrawRemainingRewardPool(caller)
	return b.writeEvent(w, ev, err)
}

func (b *Bank) writeEvent(w http.ResponseWriter, ev *logdb.Event, err error) error {
	if err != nil {
		return reverted(err)
	}
	return utils.WriteJSON(w, events.ConvertEvent(ev))
}

func (b *Bank) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("bank_get_info").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetInfo))
	sub.Path("/stakes/{address}").
		Methods(http.MethodGet).
		Name("bank_get_stake").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetStake))
	sub.Path("/participants/{address}").
		Methods(http.MethodGet).
		Name("bank_get_participant").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetParticipant))
	sub.Path("/deposits").
		Methods(http.MethodPost).
		Name("bank_deposit").
		HandlerFunc(utils.WrapHandlerFunc(b.handleDeposit))
	sub.Path("/withdrawals").
		Methods(http.MethodPost).
		Name("bank_withdraw").
		HandlerFunc(utils.WrapHandlerFunc(b.handleWithdraw))
	sub.Path("/reclaim").
		Methods(http.MethodPost).
		Name("bank_reclaim").
		HandlerFunc(utils.WrapHandlerFunc(b.handleReclaim))
}
