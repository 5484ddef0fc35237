// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	var s Stats
	assert.Zero(t, s.HitRate())

	s.Hit()
	s.Miss()
	hit, miss := s.Lookups()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
	assert.Equal(t, 0.5, s.HitRate())

	s.Hit()
	s.Hit()
	assert.Equal(t, 0.75, s.HitRate())
}
