// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bank implements the time gated escrow. Participants lock tokens
// during the deposit window and later withdraw them together with a share of
// the reward pool, which unlocks in three tranches.
//
// Calls must be serialized by the caller. Every failed call leaves the state
// as it was.
package bank

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/builtin/reverts"
	"github.com/vechain/erc20bank/builtin/solidity"
	"github.com/vechain/erc20bank/log"
	"github.com/vechain/erc20bank/state"
	"github.com/vechain/erc20bank/thor"
)

var logger = log.WithContext("pkg", "bank")

var (
	ErrWindowClosed        = reverts.New("deposit window closed")
	ErrInvalidAmount       = reverts.New("invalid amount")
	ErrTooEarly            = reverts.New("too early")
	ErrNoStake             = reverts.New("no stake")
	ErrAlreadyWithdrawn    = reverts.New("already withdrawn")
	ErrNotOwner            = reverts.New("not owner")
	ErrParticipantsPending = reverts.New("participants pending")
	ErrAlreadyReclaimed    = reverts.New("already reclaimed")
	ErrTransferFailed      = reverts.New("transfer failed")
	ErrInvalidConfig       = reverts.New("invalid config")
	ErrAlreadyDeployed     = reverts.New("already deployed")
	ErrNotDeployed         = reverts.New("not deployed")
)

// Custodian holds the token balances. The bank only moves tokens through it.
type Custodian interface {
	// Transfer moves amount owned by from to to.
	Transfer(from, to thor.Address, amount *big.Int) error
	// TransferFrom moves amount from from to to, spending the allowance from granted to spender.
	TransferFrom(spender, from, to thor.Address, amount *big.Int) error
	BalanceOf(addr thor.Address) (*big.Int, error)
}

// Payout is what a participant receives on withdrawal.
type Payout struct {
	Principal *big.Int
	Reward    *big.Int
}

// Total returns principal plus reward.
func (p *Payout) Total() *big.Int {
	return new(big.Int).Add(p.Principal, p.Reward)
}

// Stats is a snapshot of the bank aggregates.
type Stats struct {
	Config
	TotalStaked      *big.Int
	ParticipantCount uint64
	SettledCount     uint64
	RewardPaid       *big.Int
	OwnerReclaimed   bool
}

// Bank implements the bank contract.
type Bank struct {
	addr      thor.Address
	state     *state.State
	custodian Custodian
	storage   *storage
}

// New binds the bank at the address of sctx.
func New(sctx *solidity.Context, custodian Custodian) *Bank {
	return &Bank{
		addr:      sctx.Address(),
		state:     sctx.State(),
		custodian: custodian,
		storage:   newStorage(sctx),
	}
}

// Deploy initializes the bank at the address of sctx and pulls the reward
// pool from the owner. The owner must have approved the bank address for
// the pool amount beforehand.
func Deploy(sctx *solidity.Context, custodian Custodian, cfg Config) (*Bank, error) {
	b := New(sctx, custodian)
	err := b.atomic(func() error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		deployed, err := b.Deployed()
		if err != nil {
			return err
		}
		if deployed {
			return ErrAlreadyDeployed
		}
		if err := b.storage.setConfig(&cfg); err != nil {
			return errors.Wrap(err, "set config")
		}
		return b.pull(cfg.Owner, cfg.RewardPool)
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("deployed", "addr", b.addr, "owner", cfg.Owner, "pool", cfg.RewardPool, "period", cfg.Period)
	return b, nil
}

// Address returns the bank address, which holds the escrowed tokens.
func (b *Bank) Address() thor.Address {
	return b.addr
}

// Deployed reports whether the bank was initialized.
func (b *Bank) Deployed() (bool, error) {
	owner, err := b.storage.owner.Get()
	if err != nil {
		return false, errors.Wrap(err, "get owner")
	}
	return !owner.IsZero(), nil
}

// Config returns the deployment config.
func (b *Bank) Config() (*Config, error) {
	cfg, err := b.storage.getConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Owner.IsZero() {
		return nil, ErrNotDeployed
	}
	return cfg, nil
}

// Owner returns the deployer.
func (b *Bank) Owner() (thor.Address, error) {
	cfg, err := b.Config()
	if err != nil {
		return thor.Address{}, err
	}
	return cfg.Owner, nil
}

// StakeOf returns the stake of addr, zero if it never deposited.
func (b *Bank) StakeOf(addr thor.Address) (*big.Int, error) {
	p, err := b.storage.getParticipant(addr)
	if err != nil {
		return nil, err
	}
	return p.Stake, nil
}

// Participant returns the record of addr.
func (b *Bank) Participant(addr thor.Address) (*Participant, error) {
	return b.storage.getParticipant(addr)
}

// StakePoolSize returns the sum of all stakes.
func (b *Bank) StakePoolSize() (*big.Int, error) {
	return b.storage.totalStaked.Get()
}

// Stats returns the config and aggregates.
func (b *Bank) Stats() (*Stats, error) {
	cfg, err := b.Config()
	if err != nil {
		return nil, err
	}
	s := &Stats{Config: *cfg}
	if s.TotalStaked, err = b.storage.totalStaked.Get(); err != nil {
		return nil, err
	}
	if s.RewardPaid, err = b.storage.rewardPaid.Get(); err != nil {
		return nil, err
	}
	participants, err := b.storage.participantCount.Get()
	if err != nil {
		return nil, err
	}
	settled, err := b.storage.settledCount.Get()
	if err != nil {
		return nil, err
	}
	s.ParticipantCount, s.SettledCount = participants.Uint64(), settled.Uint64()
	if s.OwnerReclaimed, err = b.storage.ownerReclaimed.Get(); err != nil {
		return nil, err
	}
	return s, nil
}

// Deposit locks amount of participant's tokens in the bank.
func (b *Bank) Deposit(participant thor.Address, amount *big.Int, now uint64) error {
	return b.atomic(func() error {
		cfg, err := b.Config()
		if err != nil {
			return err
		}
		if !cfg.CanDeposit(now) {
			return ErrWindowClosed
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		if err := b.pull(participant, amount); err != nil {
			return err
		}

		p, err := b.storage.getParticipant(participant)
		if err != nil {
			return err
		}
		if p.Stake.Sign() == 0 {
			if err := incr(b.storage.participantCount); err != nil {
				return err
			}
		}
		p.Stake.Add(p.Stake, amount)
		if err := b.storage.setParticipant(participant, p); err != nil {
			return err
		}
		if err := b.storage.totalStaked.Add(amount); err != nil {
			return err
		}
		logger.Debug("deposit", "participant", participant, "amount", amount, "stake", p.Stake)
		return nil
	})
}

// Withdraw pays participant its stake plus its share of the unlocked reward.
// A participant withdraws once.
func (b *Bank) Withdraw(participant thor.Address, now uint64) (*Payout, error) {
	var payout *Payout
	err := b.atomic(func() error {
		cfg, err := b.Config()
		if err != nil {
			return err
		}
		unlocked, ok := cfg.Tranches().Unlocked(cfg.Elapsed(now), cfg.Period)
		if !ok {
			return ErrTooEarly
		}
		p, err := b.storage.getParticipant(participant)
		if err != nil {
			return err
		}
		if p.Stake.Sign() == 0 {
			return ErrNoStake
		}
		if p.Withdrawn {
			return ErrAlreadyWithdrawn
		}
		totalStaked, err := b.storage.totalStaked.Get()
		if err != nil {
			return err
		}

		reward := new(big.Int).Mul(p.Stake, unlocked)
		reward.Quo(reward, totalStaked)
		payout = &Payout{
			Principal: new(big.Int).Set(p.Stake),
			Reward:    reward,
		}
		if err := b.push(participant, payout.Total()); err != nil {
			return err
		}

		p.Withdrawn = true
		if err := b.storage.setParticipant(participant, p); err != nil {
			return err
		}
		if err := incr(b.storage.settledCount); err != nil {
			return err
		}
		if err := b.storage.rewardPaid.Add(reward); err != nil {
			return err
		}
		logger.Debug("withdraw", "participant", participant, "stake", payout.Principal, "reward", reward)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

// WithdrawRemainingRewardPool pays the owner the part of the pool no
// participant was paid. Allowed once, after 4T, when everyone withdrew.
func (b *Bank) WithdrawRemainingRewardPool(caller thor.Address, now uint64) (*big.Int, error) {
	var remaining *big.Int
	err := b.atomic(func() error {
		cfg, err := b.Config()
		if err != nil {
			return err
		}
		if caller != cfg.Owner {
			return ErrNotOwner
		}
		if cfg.Phase(now) < PhaseTranche3 {
			return ErrTooEarly
		}
		participants, err := b.storage.participantCount.Get()
		if err != nil {
			return err
		}
		settled, err := b.storage.settledCount.Get()
		if err != nil {
			return err
		}
		if settled.Cmp(participants) != 0 {
			return ErrParticipantsPending
		}
		reclaimed, err := b.storage.ownerReclaimed.Get()
		if err != nil {
			return err
		}
		if reclaimed {
			return ErrAlreadyReclaimed
		}
		paid, err := b.storage.rewardPaid.Get()
		if err != nil {
			return err
		}

		remaining = new(big.Int).Sub(cfg.RewardPool, paid)
		if err := b.push(cfg.Owner, remaining); err != nil {
			return err
		}
		b.storage.ownerReclaimed.Set(true)
		logger.Debug("reclaim", "owner", cfg.Owner, "amount", remaining)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return remaining, nil
}

// atomic runs fn in a checkpoint, reverted if fn fails.
func (b *Bank) atomic(fn func() error) error {
	rev := b.state.NewCheckpoint()
	if err := fn(); err != nil {
		b.state.RevertTo(rev)
		return err
	}
	return nil
}

// pull moves amount from addr into the bank using addr's allowance to the bank.
func (b *Bank) pull(from thor.Address, amount *big.Int) error {
	return transferErr(b.custodian.TransferFrom(b.addr, from, b.addr, amount))
}

// push pays amount out of the bank to addr.
func (b *Bank) push(to thor.Address, amount *big.Int) error {
	return transferErr(b.custodian.Transfer(b.addr, to, amount))
}

// transferErr reports custodian rejections as ErrTransferFailed and keeps
// other failures as they are.
func transferErr(err error) error {
	if err == nil {
		return nil
	}
	if reverts.IsRevertErr(err) {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	return errors.WithMessage(err, "transfer")
}
