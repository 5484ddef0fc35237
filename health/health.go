// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health tracks whether the service can keep serving the bank.
package health

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type CommitIngestion struct {
	Phase     string     `json:"phase"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy         bool             `json:"healthy"`
	CommitIngestion *CommitIngestion `json:"commitIngestion"`
	ClockSynced     bool             `json:"clockSynced"`
	StoreError      string           `json:"storeError,omitempty"`
}

// Health aggregates the signals making up the service health.
// probe is expected to read the store and fail when it is unusable.
type Health struct {
	lock        sync.RWMutex
	clock       clockwork.Clock
	probe       func() error
	lastCommit  time.Time
	phase       string
	clockSynced bool
}

func New(clock clockwork.Clock, probe func() error) *Health {
	return &Health{
		clock:       clock,
		probe:       probe,
		clockSynced: true,
	}
}

// NewCommit records a committed operation, leaving the bank in phase.
func (h *Health) NewCommit(phase string) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastCommit = h.clock.Now()
	h.phase = phase
}

func (h *Health) ClockSyncStatus(synced bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.clockSynced = synced
}

// Status reports the current health. A positive maxSinceCommit also requires
// a commit to have happened within that duration.
func (h *Health) Status(maxSinceCommit time.Duration) (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{ClockSynced: h.clockSynced}
	if !h.lastCommit.IsZero() {
		ts := h.lastCommit
		status.CommitIngestion = &CommitIngestion{
			Phase:     h.phase,
			Timestamp: &ts,
		}
	}

	healthy := h.clockSynced
	if h.probe != nil {
		if err := h.probe(); err != nil {
			status.StoreError = err.Error()
			healthy = false
		}
	}
	if maxSinceCommit > 0 {
		healthy = healthy && !h.lastCommit.IsZero() && h.clock.Since(h.lastCommit) <= maxSinceCommit
	}
	status.Healthy = healthy
	return status, nil
}
