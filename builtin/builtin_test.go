// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/erc20bank/builtin/bank"
	"github.com/vechain/erc20bank/lvldb"
	"github.com/vechain/erc20bank/state"
	"github.com/vechain/erc20bank/thor"
)

func TestBankAt(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	stater, err := state.NewStater(db, 16)
	require.NoError(t, err)
	st := stater.NewState()

	owner := thor.BytesToAddress([]byte("owner"))
	addr := thor.CreateContractAddress(owner, 0)

	tk := Token.WithState(st)
	require.NoError(t, tk.Mint(owner, big.NewInt(1000)))
	require.NoError(t, tk.Approve(owner, addr, big.NewInt(1000)))

	_, err = DeployBank(addr, st, bank.Config{
		Token:      Token.Address,
		RewardPool: big.NewInt(1000),
		Period:     10,
		Owner:      owner,
		CreatedAt:  100,
	})
	require.NoError(t, err)

	b := BankAt(addr, st)
	got, err := b.Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	bal, err := Token.WithState(st).BalanceOf(addr)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bal.Int64())
}
