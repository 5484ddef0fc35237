// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"
	"errors"
)

// decodeFixedHex fills dst from s, which must be exactly len(dst) hex encoded
// bytes, optionally 0x prefixed.
func decodeFixedHex(dst []byte, s string) error {
	switch len(s) {
	case 2 * len(dst):
	case 2*len(dst) + 2:
		if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
			return errors.New("invalid prefix")
		}
		s = s[2:]
	default:
		return errors.New("invalid length")
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}
