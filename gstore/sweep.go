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

package gstore

import (
	"time"

	"github.com/sabouaram/fixnative/rtlog"
)

// sweepInterval is the fixed cadence of the TTL sweeper.
const sweepInterval = 1 * time.Second

// StartSweeper launches the background goroutine that tombstones
// expired entries once per sweepInterval. Safe to call at most once per
// Store; Default() does this for the process-wide store automatically.
func (s *Store) StartSweeper(log rtlog.Logger) {
	go s.sweepLoop(log)
}

func (s *Store) sweepLoop(log rtlog.Logger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for range t.C {
		n := s.sweepOnce()
		if n > 0 && log != nil {
			log.Entry(rtlog.DebugLevel, "gstore sweep tombstoned expired entries").Field("count", n).Log()
		}
	}
}

// sweepOnce scans every slot once and tombstones entries whose expiry
// has passed, broadcasting to wake any waiters blocked on those keys.
func (s *Store) sweepOnce() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.state == stateOccupied && sl.expiry != 0 && now >= sl.expiry {
			*sl = slot{state: stateTombstone}
			s.length--
			n++
		}
	}
	if n > 0 {
		s.cond.Broadcast()
	}
	return n
}
