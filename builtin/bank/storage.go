// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/builtin/solidity"
	"github.com/vechain/erc20bank/thor"
)

var (
	slotToken      = nameToSlot("token")
	slotOwner      = nameToSlot("owner")
	slotRewardPool = nameToSlot("reward-pool")
	slotPeriod     = nameToSlot("period")
	slotCreatedAt  = nameToSlot("created-at")

	slotTotalStaked      = nameToSlot("total-staked")
	slotParticipantCount = nameToSlot("participant-count")
	slotSettledCount     = nameToSlot("settled-count")
	slotRewardPaid       = nameToSlot("reward-paid")
	slotOwnerReclaimed   = nameToSlot("owner-reclaimed")

	slotParticipants = nameToSlot("participants")
)

func nameToSlot(name string) thor.Bytes32 {
	return thor.BytesToBytes32([]byte(name))
}

// Participant is the ledger record of one depositor.
type Participant struct {
	Stake     *big.Int
	Withdrawn bool
}

// storage lays out the bank state in contract storage.
type storage struct {
	token      *solidity.Address
	owner      *solidity.Address
	rewardPool *solidity.Uint256
	period     *solidity.Uint256
	createdAt  *solidity.Uint256

	totalStaked      *solidity.Uint256
	participantCount *solidity.Uint256
	settledCount     *solidity.Uint256
	rewardPaid       *solidity.Uint256
	ownerReclaimed   *solidity.Bool

	participants *solidity.Mapping[thor.Address, *Participant]
}

func newStorage(sctx *solidity.Context) *storage {
	return &storage{
		token:      solidity.NewAddress(sctx, slotToken),
		owner:      solidity.NewAddress(sctx, slotOwner),
		rewardPool: solidity.NewUint256(sctx, slotRewardPool),
		period:     solidity.NewUint256(sctx, slotPeriod),
		createdAt:  solidity.NewUint256(sctx, slotCreatedAt),

		totalStaked:      solidity.NewUint256(sctx, slotTotalStaked),
		participantCount: solidity.NewUint256(sctx, slotParticipantCount),
		settledCount:     solidity.NewUint256(sctx, slotSettledCount),
		rewardPaid:       solidity.NewUint256(sctx, slotRewardPaid),
		ownerReclaimed:   solidity.NewBool(sctx, slotOwnerReclaimed),

		participants: solidity.NewMapping[thor.Address, *Participant](sctx, slotParticipants),
	}
}

func (s *storage) setConfig(cfg *Config) error {
	s.token.Set(cfg.Token)
	s.owner.Set(cfg.Owner)
	if err := s.rewardPool.Set(cfg.RewardPool); err != nil {
		return err
	}
	if err := s.period.Set(new(big.Int).SetUint64(cfg.Period)); err != nil {
		return err
	}
	return s.createdAt.Set(new(big.Int).SetUint64(cfg.CreatedAt))
}

func (s *storage) getConfig() (*Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.Token, err = s.token.Get(); err != nil {
		return nil, errors.Wrap(err, "get token")
	}
	if cfg.Owner, err = s.owner.Get(); err != nil {
		return nil, errors.Wrap(err, "get owner")
	}
	if cfg.RewardPool, err = s.rewardPool.Get(); err != nil {
		return nil, errors.Wrap(err, "get reward pool")
	}
	period, err := s.period.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get period")
	}
	createdAt, err := s.createdAt.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get creation time")
	}
	cfg.Period, cfg.CreatedAt = period.Uint64(), createdAt.Uint64()
	return &cfg, nil
}

// getParticipant returns the record of addr, a zero record if it never deposited.
func (s *storage) getParticipant(addr thor.Address) (*Participant, error) {
	p, err := s.participants.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "get participant")
	}
	if p.Stake == nil {
		p.Stake = new(big.Int)
	}
	return p, nil
}

func (s *storage) setParticipant(addr thor.Address, p *Participant) error {
	return errors.Wrap(s.participants.Set(addr, p), "set participant")
}

// incr adds one to a counter.
func incr(u *solidity.Uint256) error {
	return u.Add(big.NewInt(1))
}
