// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// hasherPool recycles 256-bit hash states.
type hasherPool struct{ sync.Pool }

func newHasherPool(newHash func() hash.Hash) *hasherPool {
	return &hasherPool{sync.Pool{New: func() any { return newHash() }}}
}

func (p *hasherPool) sum(fn func(w io.Writer)) (h Bytes32) {
	hasher := p.Get().(hash.Hash)
	fn(hasher)
	hasher.Sum(h[:0])
	hasher.Reset()
	p.Put(hasher)
	return
}

var (
	blake2bPool = newHasherPool(func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	})
	keccak256Pool = newHasherPool(sha3.NewLegacyKeccak256)
)

func writeAll(data [][]byte) func(w io.Writer) {
	return func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	}
}

// Blake2b returns the blake2b-256 digest of the concatenated data. Storage
// slots and the genesis ID are derived with it.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	return blake2bPool.sum(writeAll(data))
}

// Blake2bFn returns the blake2b-256 digest of whatever fn writes.
func Blake2bFn(fn func(w io.Writer)) Bytes32 {
	return blake2bPool.sum(fn)
}

// Keccak256 returns the legacy keccak-256 digest used for ethereum style
// contract addresses.
func Keccak256(data ...[]byte) Bytes32 {
	return keccak256Pool.sum(writeAll(data))
}
