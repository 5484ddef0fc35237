// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	err := New("window closed")

	assert.True(t, IsRevertErr(err))
	assert.True(t, IsRevertErr(fmt.Errorf("deposit: %w", err)))
	assert.False(t, IsRevertErr(errors.New("disk failure")))
	assert.False(t, IsRevertErr(nil))
	assert.Equal(t, "window closed", err.Error())
}
