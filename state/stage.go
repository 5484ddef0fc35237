// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/erc20bank/cache"
	"github.com/vechain/erc20bank/kv"
	"github.com/vechain/erc20bank/thor"
)

// Stage holds the net changes of a state ready to be committed.
type Stage struct {
	store   kv.Store
	cache   *cache.LRU[storageKey, rlp.RawValue]
	changes map[storageKey]rlp.RawValue
}

// Len returns count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

func (s *Stage) sortedKeys() []storageKey {
	keys := make([]storageKey, 0, len(s.changes))
	for k := range s.changes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b storageKey) int {
		if c := bytes.Compare(a.addr[:], b.addr[:]); c != 0 {
			return c
		}
		return bytes.Compare(a.key[:], b.key[:])
	})
	return keys
}

// Hash computes the digest of the changes, independent of write order.
func (s *Stage) Hash() thor.Bytes32 {
	return thor.Blake2bFn(func(w io.Writer) {
		for _, k := range s.sortedKeys() {
			w.Write(k.dbKey())
			w.Write(s.changes[k])
		}
	})
}

// Commit writes all changes in one atomic batch and returns the digest of them.
func (s *Stage) Commit() (thor.Bytes32, error) {
	bulk := s.store.Bulk()
	for _, k := range s.sortedKeys() {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.dbKey())
		} else {
			err = bulk.Put(k.dbKey(), v)
		}
		if err != nil {
			return thor.Bytes32{}, &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return thor.Bytes32{}, &Error{err}
	}
	metricStorageCounter().AddWithLabel(int64(len(s.changes)), map[string]string{"type": "write", "target": "store"})

	for k, v := range s.changes {
		s.cache.Add(k, v)
	}
	return s.Hash(), nil
}
