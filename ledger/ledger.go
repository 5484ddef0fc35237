// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger serves a bank over a persistent store. Calls are
// serialized, every successful mutation is committed to the store in one
// batch and recorded in the event log.
package ledger

import (
	"context"
	"math/big"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/builtin"
	"github.com/vechain/erc20bank/builtin/bank"
	"github.com/vechain/erc20bank/builtin/reverts"
	"github.com/vechain/erc20bank/builtin/token"
	"github.com/vechain/erc20bank/co"
	"github.com/vechain/erc20bank/genesis"
	"github.com/vechain/erc20bank/kv"
	"github.com/vechain/erc20bank/log"
	"github.com/vechain/erc20bank/logdb"
	"github.com/vechain/erc20bank/state"
	"github.com/vechain/erc20bank/thor"
)

var logger = log.WithContext("pkg", "ledger")

const stateCacheSize = 4096

var (
	stateBucket = kv.Bucket("s.")

	// meta slots live in the storage of the zero address
	metaAddress   = thor.Address{}
	slotGenesisID = thor.BytesToBytes32([]byte("genesis-id"))
)

// ErrGenesisMismatch is returned when the store was built from another genesis.
var ErrGenesisMismatch = errors.New("genesis mismatch")

// Info is a snapshot of the bank.
type Info struct {
	bank.Stats
	Address    thor.Address
	GenesisID  thor.Bytes32
	Now        uint64
	Phase      bank.Phase
	CanDeposit bool
}

// Ledger is the serialized access point to a bank and its token.
type Ledger struct {
	mu        sync.RWMutex
	stater    *state.Stater
	logDB     *logdb.LogDB
	clock     clockwork.Clock
	bankAddr  thor.Address
	genesisID thor.Bytes32
	committed co.Signal
}

// Open opens the ledger stored in db. An empty db is initialized from gene.
func Open(db kv.Store, logDB *logdb.LogDB, clock clockwork.Clock, gene *genesis.Genesis) (*Ledger, error) {
	stater, err := state.NewStater(stateBucket.NewStore(db), stateCacheSize)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		stater:    stater,
		logDB:     logDB,
		clock:     clock,
		bankAddr:  gene.BankAddress(),
		genesisID: gene.ID(),
	}

	st := stater.NewState()
	id, err := st.GetStorage(metaAddress, slotGenesisID)
	if err != nil {
		return nil, err
	}
	switch {
	case id == gene.ID():
		logger.Info("ledger opened", "genesis", gene.Name(), "bank", l.bankAddr)
		return l, nil
	case !id.IsZero():
		return nil, errors.WithMessagef(ErrGenesisMismatch, "want %v got %v", gene.ID(), id)
	}

	now := l.now()
	if _, err := gene.Build(st, now); err != nil {
		return nil, errors.WithMessage(err, "build genesis")
	}
	st.SetStorage(metaAddress, slotGenesisID, gene.ID())

	ev := &logdb.Event{
		Kind:        logdb.KindDeploy,
		Participant: gene.Owner(),
		Amount:      gene.BankConfig(now).RewardPool,
	}
	if err := l.commit(st, ev, now); err != nil {
		return nil, err
	}
	logger.Info("ledger initialized", "genesis", gene.Name(), "id", gene.ID(), "bank", l.bankAddr)
	return l, nil
}

func (l *Ledger) now() uint64 {
	now := l.clock.Now().Unix()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

// BankAddress returns the address of the bank.
func (l *Ledger) BankAddress() thor.Address {
	return l.bankAddr
}

// TokenAddress returns the address of the escrowed token.
func (l *Ledger) TokenAddress() thor.Address {
	return builtin.Token.Address
}

// GenesisID returns the id of the genesis the ledger was built from.
func (l *Ledger) GenesisID() thor.Bytes32 {
	return l.genesisID
}

// NewCommitWaiter returns a waiter released by the next committed mutation.
func (l *Ledger) NewCommitWaiter() co.Waiter {
	return l.committed.NewWaiter()
}

// CacheHitRate returns the state slot cache hit rate.
func (l *Ledger) CacheHitRate() float64 {
	return l.stater.CacheStats().HitRate()
}

// Deposit locks amount of caller's tokens in the bank. The caller must have
// approved the bank for the amount.
func (l *Ledger) Deposit(caller thor.Address, amount *big.Int) (*logdb.Event, error) {
	return l.execute("deposit", func(st *state.State, now uint64) (*logdb.Event, error) {
		if err := builtin.BankAt(l.bankAddr, st).Deposit(caller, amount, now); err != nil {
			return nil, err
		}
		return &logdb.Event{
			Kind:        logdb.KindDeposit,
			Participant: caller,
			Amount:      new(big.Int).Set(amount),
		}, nil
	})
}

// Withdraw pays out caller's stake and reward.
func (l *Ledger) Withdraw(caller thor.Address) (*logdb.Event, error) {
	return l.execute("withdraw", func(st *state.State, now uint64) (*logdb.Event, error) {
		payout, err := builtin.BankAt(l.bankAddr, st).Withdraw(caller, now)
		if err != nil {
			return nil, err
		}
		return &logdb.Event{
			Kind:        logdb.KindWithdraw,
			Participant: caller,
			Amount:      payout.Principal,
			Reward:      payout.Reward,
		}, nil
	})
}

// WithdrawRemainingRewardPool pays the owner the undistributed reward.
func (l *Ledger) WithdrawRemainingRewardPool(caller thor.Address) (*logdb.Event, error) {
	return l.execute("reclaim", func(st *state.State, now uint64) (*logdb.Event, error) {
		remaining, err := builtin.BankAt(l.bankAddr, st).WithdrawRemainingRewardPool(caller, now)
		if err != nil {
			return nil, err
		}
		return &logdb.Event{
			Kind:        logdb.KindReclaim,
			Participant: caller,
			Amount:      remaining,
		}, nil
	})
}

// checkSigner rejects contract addresses as the acting account. Contracts
// have no key, only their own code moves their funds.
func (l *Ledger) checkSigner(addr thor.Address) error {
	if addr == l.bankAddr || addr == builtin.Token.Address {
		return token.ErrContractAccount
	}
	return nil
}

// Approve sets the amount spender may move out of owner's balance.
func (l *Ledger) Approve(owner, spender thor.Address, amount *big.Int) error {
	_, err := l.execute("approve", func(st *state.State, _ uint64) (*logdb.Event, error) {
		if err := l.checkSigner(owner); err != nil {
			return nil, err
		}
		return nil, builtin.Token.WithState(st).Approve(owner, spender, amount)
	})
	return err
}

// Transfer moves tokens between accounts.
func (l *Ledger) Transfer(from, to thor.Address, amount *big.Int) error {
	_, err := l.execute("transfer", func(st *state.State, _ uint64) (*logdb.Event, error) {
		if err := l.checkSigner(from); err != nil {
			return nil, err
		}
		return nil, builtin.Token.WithState(st).Transfer(from, to, amount)
	})
	return err
}

// execute runs fn on a fresh state under the write lock and commits its
// changes when it succeeds.
func (l *Ledger) execute(op string, fn func(st *state.State, now uint64) (*logdb.Event, error)) (*logdb.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.stater.NewState()
	now := l.now()
	ev, err := fn(st, now)
	if err != nil {
		result := "error"
		if reverts.IsRevertErr(err) {
			result = "reverted"
		}
		metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
		logger.Debug("operation failed", "op", op, "err", err)
		return nil, err
	}
	if err := l.commit(st, ev, now); err != nil {
		metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "result": "error"})
		return nil, err
	}
	metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})
	if ev != nil && ev.Reward != nil {
		metricRewardPaid().Add(clampInt64(ev.Reward))
	}
	l.updateGauges(st, now)
	return ev, nil
}

// commit writes the staged changes of st, then records ev, if any.
func (l *Ledger) commit(st *state.State, ev *logdb.Event, now uint64) error {
	digest, err := st.Stage().Commit()
	if err != nil {
		return errors.WithMessage(err, "commit state")
	}
	defer l.committed.Broadcast()

	if ev == nil {
		return nil
	}
	ev.Timestamp = now
	ev.Bank = l.bankAddr
	ev.Digest = digest
	// the state is already committed, so a failure here only loses history
	if err := l.logDB.Prepare().Insert(ev).Commit(); err != nil {
		logger.Warn("failed to record event", "kind", ev.Kind, "digest", digest, "err", err)
	}
	return nil
}

func (l *Ledger) updateGauges(st *state.State, now uint64) {
	stats, err := builtin.BankAt(l.bankAddr, st).Stats()
	if err != nil {
		logger.Debug("failed to load stats", "err", err)
		return
	}
	metricStakePool().Set(clampInt64(stats.TotalStaked))
	metricParticipants().Set(int64(stats.ParticipantCount)) // #nosec G115
	setPhase(stats.Phase(now))
}

// view runs fn on a fresh state under the read lock.
func (l *Ledger) view(fn func(st *state.State) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(l.stater.NewState())
}

// Info returns the bank config, aggregates and the current phase.
func (l *Ledger) Info() (*Info, error) {
	var info *Info
	err := l.view(func(st *state.State) error {
		stats, err := builtin.BankAt(l.bankAddr, st).Stats()
		if err != nil {
			return err
		}
		now := l.now()
		info = &Info{
			Stats:      *stats,
			Address:    l.bankAddr,
			GenesisID:  l.genesisID,
			Now:        now,
			Phase:      stats.Config.Phase(now),
			CanDeposit: stats.Config.CanDeposit(now),
		}
		return nil
	})
	return info, err
}

// Owner returns the bank owner.
func (l *Ledger) Owner() (owner thor.Address, err error) {
	err = l.view(func(st *state.State) error {
		owner, err = builtin.BankAt(l.bankAddr, st).Owner()
		return err
	})
	return
}

// StakeOf returns the stake of addr.
func (l *Ledger) StakeOf(addr thor.Address) (stake *big.Int, err error) {
	err = l.view(func(st *state.State) error {
		stake, err = builtin.BankAt(l.bankAddr, st).StakeOf(addr)
		return err
	})
	return
}

// StakePoolSize returns the sum of all stakes.
func (l *Ledger) StakePoolSize() (size *big.Int, err error) {
	err = l.view(func(st *state.State) error {
		size, err = builtin.BankAt(l.bankAddr, st).StakePoolSize()
		return err
	})
	return
}

// Participant returns the record of addr.
func (l *Ledger) Participant(addr thor.Address) (p *bank.Participant, err error) {
	err = l.view(func(st *state.State) error {
		p, err = builtin.BankAt(l.bankAddr, st).Participant(addr)
		return err
	})
	return
}

// BalanceOf returns the token balance of addr.
func (l *Ledger) BalanceOf(addr thor.Address) (bal *big.Int, err error) {
	err = l.view(func(st *state.State) error {
		bal, err = builtin.Token.WithState(st).BalanceOf(addr)
		return err
	})
	return
}

// TotalSupply returns the token supply.
func (l *Ledger) TotalSupply() (supply *big.Int, err error) {
	err = l.view(func(st *state.State) error {
		supply, err = builtin.Token.WithState(st).TotalSupply()
		return err
	})
	return
}

// Allowance returns the amount spender may move out of owner's balance.
func (l *Ledger) Allowance(owner, spender thor.Address) (allowance *big.Int, err error) {
	err = l.view(func(st *state.State) error {
		allowance, err = builtin.Token.WithState(st).Allowance(owner, spender)
		return err
	})
	return
}

// Events queries the recorded bank events.
func (l *Ledger) Events(ctx context.Context, filter *logdb.EventFilter) ([]*logdb.Event, error) {
	return l.logDB.Filter(ctx, filter)
}
