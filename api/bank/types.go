// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/erc20bank/builtin/bank"
	"github.com/vechain/erc20bank/ledger"
	"github.com/vechain/erc20bank/thor"
)

type Info struct {
	Address          thor.Address          `json:"address"`
	Token            thor.Address          `json:"token"`
	Owner            thor.Address          `json:"owner"`
	RewardPool       *math.HexOrDecimal256 `json:"rewardPool"`
	Period           uint64                `json:"period"`
	CreatedAt        uint64                `json:"createdAt"`
	StakePoolSize    *math.HexOrDecimal256 `json:"stakePoolSize"`
	ParticipantCount uint64                `json:"participantCount"`
	SettledCount     uint64                `json:"settledCount"`
	RewardPaid       *math.HexOrDecimal256 `json:"rewardPaid"`
	OwnerReclaimed   bool                  `json:"ownerReclaimed"`
	Phase            bank.Phase            `json:"phase"`
	CanDeposit       bool                  `json:"canDeposit"`
	Now              uint64                `json:"now"`
	GenesisID        thor.Bytes32          `json:"genesisId"`
}

func convertInfo(info *ledger.Info) *Info {
	return &Info{
		Address:          info.Address,
		Token:            info.Token,
		Owner:            info.Owner,
		RewardPool:       (*math.HexOrDecimal256)(info.RewardPool),
		Period:           info.Period,
		CreatedAt:        info.CreatedAt,
		StakePoolSize:    (*math.HexOrDecimal256)(info.TotalStaked),
		ParticipantCount: info.ParticipantCount,
		SettledCount:     info.SettledCount,
		RewardPaid:       (*math.HexOrDecimal256)(info.RewardPaid),
		OwnerReclaimed:   info.OwnerReclaimed,
		Phase:            info.Phase,
		CanDeposit:       info.CanDeposit,
		Now:              info.Now,
		GenesisID:        info.GenesisID,
	}
}

type Stake struct {
	Address thor.Address          `json:"address"`
	Stake   *math.HexOrDecimal256 `json:"stake"`
}

type Participant struct {
	Address   thor.Address          `json:"address"`
	Stake     *math.HexOrDecimal256 `json:"stake"`
	Withdrawn bool                  `json:"withdrawn"`
}

// DepositRequest deposits amount on behalf of caller.
type DepositRequest struct {
	Caller *thor.Address         `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// CallerRequest is the body of withdraw and reclaim.
type CallerRequest struct {
	Caller *thor.Address `json:"caller"`
}
