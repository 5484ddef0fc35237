// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

type Waiter interface {
	C() <-chan struct{}
}

// Signal releases every outstanding waiter on Broadcast. Unlike sync.Cond a
// waiter is a channel and composes with select. The zero value is ready.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

func (s *Signal) current() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

func (s *Signal) Broadcast() {
	s.mu.Lock()
	close(s.current())
	s.ch = nil
	s.mu.Unlock()
}

func (s *Signal) NewWaiter() Waiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return waiter(s.current())
}

type waiter chan struct{}

func (w waiter) C() <-chan struct{} { return w }
