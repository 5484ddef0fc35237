// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups. The zero value is ready and safe for
// concurrent use.
type Stats struct {
	hit, miss atomic.Int64
}

func (s *Stats) Hit()  { s.hit.Add(1) }
func (s *Stats) Miss() { s.miss.Add(1) }

// Lookups returns the hit and miss counters.
func (s *Stats) Lookups() (hit, miss int64) {
	return s.hit.Load(), s.miss.Load()
}

// HitRate is hits over lookups, 0 before the first lookup.
func (s *Stats) HitRate() float64 {
	hit, miss := s.Lookups()
	if hit+miss == 0 {
		return 0
	}
	return float64(hit) / float64(hit+miss)
}
