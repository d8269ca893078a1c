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

// Package asyncio implements a per-heap asynchronous I/O reactor: TCP
// client/server primitives, one-shot and deferred timers, and a
// single-threaded dispatch loop that delivers completions to
// callbacks. DNS resolution and connect() are offloaded to
// a cached worker pool so the reactor's own goroutine never blocks on
// them; every other blocking I/O call (read, write, accept) is
// performed on its own per-operation goroutine rather than through a
// raw epoll/IOCP split, since Go's runtime netpoller already unifies
// that distinction across platforms (documented in DESIGN.md as an
// intentional, Go-idiomatic difference from the C original).
package asyncio

import (
	"container/heap"
	"fmt"
	"sync"
	"time"

	"github.com/sabouaram/fixnative/rtlog"
)

const (
	completionRead = iota
	completionWrite
	completionAccept
	completionConnect
	completionTimer
)

type completion struct {
	kind int

	connRead  func(n int, err error)
	connWrite func(n int, err error)
	connect   func(c *Conn, err error)
	accept    func(c *Conn, err error)
	timer     *Timer

	n   int
	err error
	c   *Conn
	srv *Server
}

// Reactor is the per-heap dispatch loop. The zero value is not
// usable; construct with New.
type Reactor struct {
	log rtlog.Logger

	mu     sync.Mutex
	timers timerHeap
	seq    int64

	events chan completion
	pool   *workerPool

	quitting  bool
	quitValue int

	foreignActive bool
	builtinActive bool
	foreignCond   *foreignGate
}

// New returns a Reactor with no timers and no pending I/O, ready for
// open_connection/create_server/run_later/process calls.
func New() *Reactor {
	return &Reactor{
		log:    rtlog.New(),
		events: make(chan completion, 256),
		pool:   newWorkerPool(),
	}
}

func (r *Reactor) nextSeq() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq
}

func (r *Reactor) post(ev completion) {
	r.events <- ev
}

// RunLater schedules cb to run on the reactor's dispatch thread after
// delay. A zero or negative delay is scheduled as immediate: it runs
// on the next dispatch turn, before any I/O wait.
func (r *Reactor) RunLater(delay time.Duration, cb func()) *Timer {
	t := &Timer{
		seq:    r.nextSeq(),
		fireAt: time.Now().Add(delay),
		cb:     cb,
	}
	r.mu.Lock()
	heap.Push(&r.timers, t)
	r.mu.Unlock()
	return t
}

// Quit sets the quit flag; every later Process call still runs its
// round and then returns (value, true).
func (r *Reactor) Quit(value int) {
	r.mu.Lock()
	r.quitting = true
	r.quitValue = value
	r.mu.Unlock()
}

func (r *Reactor) nextTimerWait() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.timers) == 0 {
		return 0, false
	}
	d := time.Until(r.timers[0].fireAt)
	if d < 0 {
		d = 0
	}
	return d, true
}

// popDueTimers removes and returns every timer whose fire time has
// passed, in non-decreasing fire-time order with insertion order
// breaking ties (A3).
func (r *Reactor) popDueTimers(now time.Time) []*Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*Timer
	for len(r.timers) > 0 && !r.timers[0].fireAt.After(now) {
		due = append(due, heap.Pop(&r.timers).(*Timer))
	}
	return due
}

// Process runs one event-wait+dispatch cycle. When negative is true,
// timeout is ignored and the wait is bounded only by the earliest
// pending timer (blocking indefinitely for the first event if there is
// none); otherwise timeout bounds the wait and Process returns after
// the round whether or not an event arrived. It returns (quitValue, true) once Quit has
// been called and this call has finished its round, or (0, false)
// otherwise.
func (r *Reactor) Process(timeout time.Duration, negative bool) (int, bool) {
	r.mu.Lock()
	if r.foreignActive {
		r.mu.Unlock()
		panic(ErrForeignLoopActive.Error())
	}
	r.builtinActive = true
	r.mu.Unlock()

	wait := timeout
	if timerWait, ok := r.nextTimerWait(); ok {
		if negative || timerWait < wait {
			wait = timerWait
			negative = false
		}
	}

	var timeoutCh <-chan time.Time
	if !negative {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case ev := <-r.events:
		r.dispatch(ev)
		r.drainBatch()
	case <-timeoutCh:
	}

	r.fireDueTimers()

	r.mu.Lock()
	quitting, value := r.quitting, r.quitValue
	r.mu.Unlock()
	return value, quitting
}

// drainBatch dispatches every completion already queued without
// blocking: one batch of already-ready events is fully drained before
// the loop waits again, rather than interleaving waits mid-batch.
func (r *Reactor) drainBatch() {
	for {
		select {
		case ev := <-r.events:
			r.dispatch(ev)
		default:
			return
		}
	}
}

func (r *Reactor) fireDueTimers() {
	for _, t := range r.popDueTimers(time.Now()) {
		if t.cancelled {
			continue
		}
		r.safeCall(t.cb)
	}
}

func (r *Reactor) dispatch(ev completion) {
	switch ev.kind {
	case completionRead:
		if ev.connRead != nil && !ev.c.isClosed() {
			r.safeCall(func() { ev.connRead(ev.n, ev.err) })
		}
	case completionWrite:
		if ev.connWrite != nil && !ev.c.isClosed() {
			r.safeCall(func() { ev.connWrite(ev.n, ev.err) })
		}
	case completionConnect:
		if ev.connect != nil {
			r.safeCall(func() { ev.connect(ev.c, ev.err) })
		}
	case completionAccept:
		if ev.accept != nil && !ev.srv.isClosed() {
			r.safeCall(func() { ev.accept(ev.c, ev.err) })
		}
	}
}

// safeCall invokes cb, logging and continuing dispatch if it panics,
// so one misbehaving callback never wedges the whole dispatch loop.
func (r *Reactor) safeCall(cb func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Entry(rtlog.ErrorLevel, "asyncio: callback panicked").
				Field("recover", fmt.Sprint(rec)).Log()
		}
	}()
	cb()
}
