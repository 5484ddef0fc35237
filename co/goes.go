// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds small goroutine helpers.
package co

import (
	"context"
	"sync"
)

// Goes tracks background goroutines so shutdown can wait for them.
type Goes struct {
	wg sync.WaitGroup
}

func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Loop calls f each time a fresh waiter from newWaiter is released, until
// ctx is done.
func (g *Goes) Loop(ctx context.Context, newWaiter func() Waiter, f func()) {
	g.Go(func() {
		for {
			w := newWaiter()
			select {
			case <-ctx.Done():
				return
			case <-w.C():
				f()
			}
		}
	})
}

func (g *Goes) Wait() { g.wg.Wait() }
