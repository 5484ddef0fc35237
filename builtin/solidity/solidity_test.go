// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/erc20bank/lvldb"
	"github.com/vechain/erc20bank/state"
	"github.com/vechain/erc20bank/thor"
)

// newTestContext returns a fresh Context over an in-memory store.
func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater, err := state.NewStater(db, 16)
	require.NoError(t, err)
	return NewContext(thor.BytesToAddress([]byte("contract")), stater.NewState())
}

type record struct {
	Stake     *big.Int
	Withdrawn bool
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, thor.Bytes32{1})

	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, u.Set(big.NewInt(1000)))
	require.NoError(t, u.Add(big.NewInt(24)))
	v, _ = u.Get()
	assert.Equal(t, int64(1024), v.Int64())

	require.NoError(t, u.Sub(big.NewInt(1024)))
	v, _ = u.Get()
	assert.Equal(t, 0, v.Sign())

	err = u.Sub(big.NewInt(1))
	assert.ErrorIs(t, err, ErrUint256Overflow)

	maxWord := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, u.Set(maxWord))
	v, _ = u.Get()
	assert.Equal(t, maxWord, v)

	assert.ErrorIs(t, u.Add(big.NewInt(1)), ErrUint256Overflow)
	v, _ = u.Get()
	assert.Equal(t, maxWord, v, "failed add must not change the value")
}

func TestAddressAndBool(t *testing.T) {
	ctx := newTestContext(t)

	a := NewAddress(ctx, thor.Bytes32{2})
	got, err := a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	owner := thor.BytesToAddress([]byte("owner"))
	a.Set(owner)
	got, _ = a.Get()
	assert.Equal(t, owner, got)

	b := NewBool(ctx, thor.Bytes32{3})
	flag, err := b.Get()
	require.NoError(t, err)
	assert.False(t, flag)

	b.Set(true)
	flag, _ = b.Get()
	assert.True(t, flag)

	b.Set(false)
	flag, _ = b.Get()
	assert.False(t, flag)
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, *record](ctx, thor.Bytes32{4})

	alice := thor.BytesToAddress([]byte("alice"))
	bob := thor.BytesToAddress([]byte("bob"))

	got, err := m.Get(alice)
	require.NoError(t, err)
	require.NotNil(t, got, "unset pointer values decode to a zero record")
	assert.Nil(t, got.Stake)
	assert.False(t, got.Withdrawn)

	require.NoError(t, m.Set(alice, &record{Stake: big.NewInt(100)}))
	require.NoError(t, m.Set(bob, &record{Stake: big.NewInt(7), Withdrawn: true}))

	got, err = m.Get(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Stake.Int64())
	assert.False(t, got.Withdrawn)

	got, err = m.Get(bob)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Stake.Int64())
	assert.True(t, got.Withdrawn)

	m.Clear(bob)
	got, err = m.Get(bob)
	require.NoError(t, err)
	assert.Nil(t, got.Stake)
}

func TestMappingSlotsAreDistinct(t *testing.T) {
	ctx := newTestContext(t)
	balances := NewMapping[thor.Address, *big.Int](ctx, thor.Bytes32{5})
	stakes := NewMapping[thor.Address, *big.Int](ctx, thor.Bytes32{6})

	addr := thor.BytesToAddress([]byte("alice"))
	require.NoError(t, balances.Set(addr, big.NewInt(9)))

	got, err := stakes.Get(addr)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Sign())

	got, err = balances.Get(addr)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Int64())
}
