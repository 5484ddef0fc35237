// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBytes32Encoding(t *testing.T) {
	const hexID = "0x00000000000000000000000000000000000000000000000000006d6173746572"
	want := BytesToBytes32([]byte("master"))

	var fromJSON Bytes32
	require.NoError(t, json.Unmarshal([]byte(`"`+hexID+`"`), &fromJSON))
	assert.Equal(t, want, fromJSON)

	data, err := json.Marshal(map[string]Bytes32{"id": want})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+hexID+`"}`, string(data))

	var fromYAML struct {
		ID Bytes32 `yaml:"id"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("id: "+hexID), &fromYAML))
	assert.Equal(t, want, fromYAML.ID)

	assert.Error(t, json.Unmarshal([]byte(`"0x1234"`), &fromJSON))
}

func TestParseBytes32(t *testing.T) {
	b, err := ParseBytes32("00000000000000000000000000000000000000000000000000000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), b[31])

	b, err = ParseBytes32("0X00000000000000000000000000000000000000000000000000000000000000FF")
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), b[31])

	_, err = ParseBytes32("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseBytes32("1x00000000000000000000000000000000000000000000000000006d6173746572")
	assert.EqualError(t, err, "invalid prefix")

	_, err = ParseBytes32("0xzz000000000000000000000000000000000000000000000000006d6173746572")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParseBytes32("zz") })
}

func TestBytesToBytes32(t *testing.T) {
	var zero Bytes32
	assert.True(t, zero.IsZero())

	b := BytesToBytes32([]byte{1, 2, 3})
	assert.False(t, b.IsZero())
	assert.Equal(t, byte(3), b[31])
	assert.Equal(t, byte(0), b[0])

	long := make([]byte, 40)
	long[39] = 9
	assert.Equal(t, byte(9), BytesToBytes32(long)[31])
}
