// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

var sink []byte

func BenchmarkPrettyInt64Logfmt(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendInt64(buf, rand.Int64()) //#nosec G404
	}
}

func BenchmarkPrettyUint64Logfmt(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendUint64(buf, rand.Uint64(), false) //#nosec G404
	}
}

func TestPrettyInt64(t *testing.T) {
	tests := []struct {
		n int64
		s string
	}{
		{0, "0"},
		{10, "10"},
		{-10, "-10"},
		{99999, "99999"},
		{100000, "100,000"},
		{-100000, "-100,000"},
		{1000000, "1,000,000"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.s, string(appendInt64(nil, tt.n)))
	}
}

func TestPrettyBigInt(t *testing.T) {
	tests := []struct {
		int string
		s   string
	}{
		{"111222333444555678999", "111,222,333,444,555,678,999"},
		{"-111222333444555678999", "-111,222,333,444,555,678,999"},
		{"11122233344455567899900", "11,122,233,344,455,567,899,900"},
		{"-11122233344455567899900", "-11,122,233,344,455,567,899,900"},
	}
	for _, tt := range tests {
		v, _ := new(big.Int).SetString(tt.int, 10)
		assert.Equal(t, tt.s, string(appendBigInt(nil, v)))
	}
}

func TestPrettyUint256(t *testing.T) {
	v, _ := uint256.FromDecimal("1000000000000000000000")
	assert.Equal(t, "1,000,000,000,000,000,000,000", string(appendU256(nil, v)))
	assert.Equal(t, "42", string(appendU256(nil, uint256.NewInt(42))))
}

func TestEscaping(t *testing.T) {
	assert.Equal(t, "plain", string(appendEscapeString(nil, "plain")))
	assert.Equal(t, `"with space"`, string(appendEscapeString(nil, "with space")))
	assert.Equal(t, `"quote\""`, string(appendEscapeString(nil, `quote"`)))
	assert.Equal(t, "multi\nline", escapeMessage("multi\nline"))
	assert.Equal(t, `"a=b"`, escapeMessage("a=b"))
}
