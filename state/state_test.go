// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/erc20bank/kv"
	"github.com/vechain/erc20bank/lvldb"
	"github.com/vechain/erc20bank/thor"
)

func newStater(t *testing.T) (*Stater, kv.Store) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := kv.Bucket("s.").NewStore(db)
	stater, err := NewStater(store, 64)
	require.NoError(t, err)
	return stater, store
}

func TestStorage(t *testing.T) {
	stater, _ := newStater(t)
	st := stater.NewState()

	addr := thor.BytesToAddress([]byte("bank"))
	key := thor.BytesToBytes32([]byte("totalStaked"))

	v, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	st.SetStorage(addr, key, thor.BytesToBytes32([]byte{1, 2}))
	v, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte{1, 2}), v)

	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x82, 1, 2}, raw)

	st.SetStorage(addr, key, thor.Bytes32{})
	raw, err = st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestEncodeDecodeStorage(t *testing.T) {
	stater, _ := newStater(t)
	st := stater.NewState()

	addr := thor.BytesToAddress([]byte("bank"))
	key := thor.BytesToBytes32([]byte("participant"))

	type record struct {
		Stake     *big.Int
		Withdrawn bool
	}

	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&record{big.NewInt(100), true})
	}))

	var got record
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	}))
	assert.Equal(t, int64(100), got.Stake.Int64())
	assert.True(t, got.Withdrawn)

	// rlp list values are reported as hash of the raw data
	raw, _ := st.GetRawStorage(addr, key)
	v, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, thor.Blake2b(raw), v)

	encErr := errors.New("enc failed")
	err = st.EncodeStorage(addr, key, func() ([]byte, error) { return nil, encErr })
	assert.ErrorIs(t, err, encErr)
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)

	decErr := errors.New("dec failed")
	err = st.DecodeStorage(addr, key, func([]byte) error { return decErr })
	assert.ErrorIs(t, err, decErr)
}

func TestCheckpoint(t *testing.T) {
	stater, _ := newStater(t)
	st := stater.NewState()

	addr := thor.BytesToAddress([]byte("bank"))
	key := thor.BytesToBytes32([]byte("k"))
	one := thor.BytesToBytes32([]byte{1})
	two := thor.BytesToBytes32([]byte{2})

	st.SetStorage(addr, key, one)

	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, two)
	v, _ := st.GetStorage(addr, key)
	assert.Equal(t, two, v)

	st.RevertTo(cp)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, one, v)

	// reverting below the base level keeps changes made outside checkpoints
	st.RevertTo(0)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, one, v)
}

func TestStateSourceError(t *testing.T) {
	errDisk := errors.New("disk failure")
	stater, err := NewStater(&failingStore{err: errDisk}, 8)
	require.NoError(t, err)

	_, err = stater.NewState().GetStorage(thor.Address{}, thor.Bytes32{})
	assert.ErrorIs(t, err, errDisk)
}

type failingStore struct {
	kv.Store
	err error
}

func (f *failingStore) Get([]byte) ([]byte, error) { return nil, f.err }
func (f *failingStore) IsNotFound(error) bool      { return false }
