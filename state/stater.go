// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/erc20bank/cache"
	"github.com/vechain/erc20bank/kv"
)

// Stater is the state creator.
type Stater struct {
	store kv.Store
	cache *cache.LRU[storageKey, rlp.RawValue]
}

// NewStater create a new stater over the store, caching up to cacheSize slots.
func NewStater(store kv.Store, cacheSize int) (*Stater, error) {
	c, err := cache.NewLRU[storageKey, rlp.RawValue](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Stater{store, c}, nil
}

// NewState create a new state object on top of committed data.
func (s *Stater) NewState() *State {
	return newState(s.store, s.cache)
}

// CacheStats returns hit/miss stats of the slot cache.
func (s *Stater) CacheStats() *cache.Stats {
	return s.cache.Stats()
}
