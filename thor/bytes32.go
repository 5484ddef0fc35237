// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes32 is a 32 bytes value: storage slots, digests and genesis IDs.
type Bytes32 [32]byte

var (
	_ encoding.TextMarshaler   = Bytes32{}
	_ encoding.TextUnmarshaler = (*Bytes32)(nil)
)

// String returns the 0x prefixed hex form.
func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// MarshalText encodes b as 0x prefixed hex, in JSON and YAML alike.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	parsed, err := ParseBytes32(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 decodes 64 hex digits, with or without 0x prefix.
func ParseBytes32(s string) (b Bytes32, err error) {
	if err := decodeFixedHex(b[:], s); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

// MustParseBytes32 is ParseBytes32 for constants, it panics on error.
func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesToBytes32 left pads b to 32 bytes, keeping the rightmost 32 bytes of
// longer input.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
