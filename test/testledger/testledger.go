// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testledger builds in-memory ledgers for tests.
package testledger

import (
	"math/big"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vechain/erc20bank/genesis"
	"github.com/vechain/erc20bank/ledger"
	"github.com/vechain/erc20bank/logdb"
	"github.com/vechain/erc20bank/lvldb"
	"github.com/vechain/erc20bank/thor"
)

const (
	LaunchTime     = 1_700_000_000
	Period         = 3600
	RewardPool     = 1000
	InitialBalance = 1000
)

// Ledger is a ledger over in-memory stores with a fake clock starting at LaunchTime.
type Ledger struct {
	*ledger.Ledger
	Clock    *clockwork.FakeClock
	Genesis  *genesis.Genesis
	Owner    thor.Address
	Accounts []thor.Address // funded with InitialBalance each

	db    *lvldb.LevelDB
	logDB *logdb.LogDB
}

// New creates a ledger owned by the first dev account. The other dev
// accounts are funded.
func New() (*Ledger, error) {
	devs := genesis.DevAccounts()
	owner := devs[0].Address

	pool := genesis.HexOrDecimal256(*big.NewInt(RewardPool))
	gen := &genesis.CustomGenesis{
		Name:       "testledger",
		LaunchTime: LaunchTime,
		Owner:      owner,
		RewardPool: &pool,
		Period:     Period,
		Accounts:   []genesis.Account{{Address: owner, Balance: &pool}},
	}
	var accounts []thor.Address
	for _, d := range devs[1:] {
		bal := genesis.HexOrDecimal256(*big.NewInt(InitialBalance))
		gen.Accounts = append(gen.Accounts, genesis.Account{Address: d.Address, Balance: &bal})
		accounts = append(accounts, d.Address)
	}
	gene, err := genesis.NewCustomNet(gen)
	if err != nil {
		return nil, err
	}

	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		db.Close()
		return nil, err
	}
	clock := clockwork.NewFakeClockAt(time.Unix(LaunchTime, 0))
	l, err := ledger.Open(db, logDB, clock, gene)
	if err != nil {
		logDB.Close()
		db.Close()
		return nil, err
	}
	return &Ledger{
		Ledger:   l,
		Clock:    clock,
		Genesis:  gene,
		Owner:    owner,
		Accounts: accounts,
		db:       db,
		logDB:    logDB,
	}, nil
}

// Stake approves the bank and deposits amount for who.
func (l *Ledger) Stake(who thor.Address, amount int64) error {
	if err := l.Approve(who, l.BankAddress(), big.NewInt(amount)); err != nil {
		return err
	}
	_, err := l.Deposit(who, big.NewInt(amount))
	return err
}

// AdvancePeriods moves the clock n periods forward, plus extra.
func (l *Ledger) AdvancePeriods(n int, extra time.Duration) {
	l.Clock.Advance(time.Duration(n)*Period*time.Second + extra)
}

// Close releases the stores.
func (l *Ledger) Close() {
	l.logDB.Close()
	l.db.Close()
}
