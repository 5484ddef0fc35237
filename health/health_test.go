// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_NewCommit(t *testing.T) {
	clock := clockwork.NewFakeClock()
	h := New(clock, nil)

	status, err := h.Status(0)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Nil(t, status.CommitIngestion)

	h.NewCommit("deposit")
	status, err = h.Status(time.Minute)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	require.NotNil(t, status.CommitIngestion)
	assert.Equal(t, "deposit", status.CommitIngestion.Phase)
	assert.Equal(t, clock.Now(), *status.CommitIngestion.Timestamp)

	clock.Advance(2 * time.Minute)
	status, err = h.Status(time.Minute)
	require.NoError(t, err)
	assert.False(t, status.Healthy)
}

func TestHealth_ClockSyncStatus(t *testing.T) {
	h := New(clockwork.NewFakeClock(), nil)

	h.ClockSyncStatus(false)
	status, err := h.Status(0)
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.False(t, status.ClockSynced)

	h.ClockSyncStatus(true)
	status, err = h.Status(0)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
}

func TestHealth_Probe(t *testing.T) {
	h := New(clockwork.NewFakeClock(), func() error { return errors.New("leveldb: closed") })

	status, err := h.Status(0)
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.Equal(t, "leveldb: closed", status.StoreError)
}
