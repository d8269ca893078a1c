/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package asyncio

import "time"

// RegisterForeignLoop hands dispatch control to an external event
// loop. Once registered, Process is
// forbidden; a hidden goroutine blocks waiting for the next completion
// or due timer and calls notify on the foreign loop's behalf, then
// waits for that loop to call ProcessEvents before waiting again.
func (r *Reactor) RegisterForeignLoop(notify func()) error {
	r.mu.Lock()
	if r.builtinActive {
		r.mu.Unlock()
		return ErrBuiltinLoopActive.Error()
	}
	if r.foreignActive {
		r.mu.Unlock()
		return ErrForeignLoopActive.Error()
	}
	r.foreignActive = true
	r.foreignCond = newForeignGate()
	r.mu.Unlock()

	go r.foreignLoop(notify)
	return nil
}

// ProcessEvents is called by the foreign loop after it has been
// notified; it releases the hidden goroutine to resume waiting for the
// next event. It does not dispatch anything itself: the hidden
// goroutine has already dispatched the drained batch of completions
// and fired due timers before calling notify, so callbacks run on that
// goroutine, not on the goroutine that calls ProcessEvents.
func (r *Reactor) ProcessEvents() {
	r.mu.Lock()
	gate := r.foreignCond
	r.mu.Unlock()
	if gate == nil {
		return
	}
	gate.processed()
}

func (r *Reactor) foreignLoop(notify func()) {
	for {
		r.mu.Lock()
		active := r.foreignActive
		gate := r.foreignCond
		r.mu.Unlock()
		if !active {
			return
		}

		var timeoutCh <-chan time.Time
		var timer *time.Timer
		if wait, ok := r.nextTimerWait(); ok {
			timer = time.NewTimer(wait)
			timeoutCh = timer.C
		}
		select {
		case ev := <-r.events:
			r.dispatch(ev)
			r.drainBatch()
		case <-timeoutCh:
		}
		if timer != nil {
			timer.Stop()
		}
		r.fireDueTimers()

		notify()
		gate.waitProcessed()
	}
}

// foreignGate lets ProcessEvents (foreign loop thread) release the
// hidden waiting goroutine exactly once per notify/process round.
type foreignGate struct {
	ch chan struct{}
}

func newForeignGate() *foreignGate { return &foreignGate{ch: make(chan struct{})} }

func (g *foreignGate) processed()    { g.ch <- struct{}{} }
func (g *foreignGate) waitProcessed() { <-g.ch }
