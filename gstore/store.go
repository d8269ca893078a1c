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

// Package gstore implements the process-wide concurrent key/value store
// keyed by ORDSER byte strings: an open-addressed table with a single
// coarse mutex, a broadcast-on-change wait queue, and a background
// sweeper that tombstones expired entries.
package gstore

import (
	"bytes"
	"hash/fnv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sabouaram/fixnative/ordser"
	"github.com/sabouaram/fixnative/value"
)

const minCapacity = 8

type slotState uint8

const (
	stateEmpty slotState = iota
	stateTombstone
	stateOccupied
)

type slot struct {
	state  slotState
	key    []byte
	val    []byte
	expiry int64 // UnixNano deadline; 0 = never expires
}

// serializedZero is ser(0), the value a missing key compares equal to
// for cond_swap/wait.
var serializedZero = mustSerializeZero()

func mustSerializeZero() []byte {
	b, err := ordser.Serialize(value.Int(0))
	if err != nil {
		panic(err)
	}
	return b
}

// Store is a resizable open-addressed table mapping ORDSER byte strings
// to ORDSER byte strings plus an optional expiry.
type Store struct {
	mu   sync.Mutex
	cond *sync.Cond

	slots  []slot
	length int // occupied, non-tombstone entries
	used   int // occupied + tombstone, for the resize trigger

	growGroup singleflight.Group

	now func() int64 // wall clock in UnixNano, overridable by tests
}

// New returns an empty Store. Most callers want the process-wide
// Default() instead; New is for tests and embeddings that want an
// isolated table. New starts no sweeper; call StartSweeper for one.
func New() *Store {
	s := &Store{slots: make([]slot, minCapacity), now: func() int64 { return time.Now().UnixNano() }}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func hashKey(key []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(key)
	return h.Sum64()
}

// probe returns the slot index for the i-th probe of key under
// quadratic probing, a collision-resolution scheme chosen over linear
// probing to avoid primary clustering as the table fills up.
func probe(hash uint64, i int, cap int) int {
	mask := uint64(cap - 1)
	return int((hash + uint64(i*i)) & mask)
}

// findLocked returns the index of the occupied slot matching key, or
// -1 if not present. Must be called with s.mu held.
func (s *Store) findLocked(key []byte) int {
	cap := len(s.slots)
	hash := hashKey(key)
	for i := 0; i < cap; i++ {
		idx := probe(hash, i, cap)
		sl := &s.slots[idx]
		switch sl.state {
		case stateEmpty:
			return -1
		case stateOccupied:
			if bytes.Equal(sl.key, key) {
				return idx
			}
		}
	}
	return -1
}

// insertLocked finds a slot to place key into: an existing occupied
// match, or the first tombstone/empty slot along the probe sequence
// (the first tombstone is reused rather than stopping there, matching
// standard open-addressing deletion semantics). Must be called with
// s.mu held and with capacity already headroom-checked.
func (s *Store) insertLocked(key []byte) int {
	cap := len(s.slots)
	hash := hashKey(key)
	firstTomb := -1
	for i := 0; i < cap; i++ {
		idx := probe(hash, i, cap)
		sl := &s.slots[idx]
		switch sl.state {
		case stateEmpty:
			if firstTomb >= 0 {
				return firstTomb
			}
			return idx
		case stateTombstone:
			if firstTomb < 0 {
				firstTomb = idx
			}
		case stateOccupied:
			if bytes.Equal(sl.key, key) {
				return idx
			}
		}
	}
	if firstTomb >= 0 {
		return firstTomb
	}
	return -1
}

func (s *Store) needsGrowLocked() bool {
	cap := len(s.slots)
	quarter := cap / 4
	return s.length+1 > quarter || s.used+1 > quarter
}

func (s *Store) growLocked() {
	newCap := len(s.slots) * 2
	if newCap < minCapacity {
		newCap = minCapacity
	}
	old := s.slots
	s.slots = make([]slot, newCap)
	s.length = 0
	s.used = 0
	for _, sl := range old {
		if sl.state != stateOccupied {
			continue
		}
		idx := s.insertLocked(sl.key)
		s.slots[idx] = slot{state: stateOccupied, key: sl.key, val: sl.val, expiry: sl.expiry}
		s.length++
		s.used++
	}
}

// maybeGrow checks, then coalesces concurrent growth triggers through
// a singleflight.Group so only one goroutine actually rehashes the
// table even if several Set calls cross the 1/4-capacity threshold at
// once; every caller still observes the grown table before proceeding.
func (s *Store) maybeGrow() {
	s.mu.Lock()
	need := s.needsGrowLocked()
	s.mu.Unlock()
	if !need {
		return
	}
	_, _, _ = s.growGroup.Do("grow", func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.needsGrowLocked() {
			s.growLocked()
		}
		return nil, nil
	})
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Occupancy reports the slot table's current live-entry count and
// total capacity, for diagnostics (cmd/gstore-inspect prints it) and
// for callers that publish it through
// rtmetrics.Collector.SetGStoreSlotOccupancy — it takes no part in
// Get/Set/Remove's own logic.
func (s *Store) Occupancy() (live int, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.length, len(s.slots)
}

// Get returns a copy of the value stored under key, or (nil, false) if
// absent. Get does not check expiry: an entry whose TTL has passed is
// still returned until the sweeper tombstones it.
func (s *Store) Get(key []byte) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findLocked(key)
	if idx < 0 {
		return nil, false
	}
	return copyBytes(s.slots[idx].val), true
}

// GetOrDefault returns the stored value, or def if key is absent.
func (s *Store) GetOrDefault(key, def []byte) []byte {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// Set stores val under key with an optional TTL (0 = never expires).
// A negative timeoutMs is rejected as a caller error.
func (s *Store) Set(key, val []byte, timeoutMs int64) error {
	if timeoutMs < 0 {
		return ErrInvalidTimeout.Error()
	}

	s.maybeGrow()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.insertLocked(key)
	if idx < 0 {
		// Every slot a tombstone or match miss under full occupancy;
		// maybeGrow should have prevented this, but guard anyway.
		s.growLocked()
		idx = s.insertLocked(key)
	}

	wasOccupied := s.slots[idx].state == stateOccupied
	var expiry int64
	if timeoutMs > 0 {
		expiry = s.now() + timeoutMs*int64(1e6)
	}

	s.slots[idx] = slot{state: stateOccupied, key: copyBytes(key), val: copyBytes(val), expiry: expiry}
	if !wasOccupied {
		s.length++
		s.used++
	}

	s.cond.Broadcast()
	return nil
}

// Remove deletes key, reporting whether it was present.
func (s *Store) Remove(key []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(key)
	if idx < 0 {
		return false
	}
	s.slots[idx] = slot{state: stateTombstone}
	s.length--
	s.cond.Broadcast()
	return true
}

// CondSwap atomically replaces key's value with newVal if its current
// value equals expect (a missing key compares equal to ser(0)),
// returning the value that was stored beforehand.
func (s *Store) CondSwap(key, expect, newVal []byte, timeoutMs int64) ([]byte, error) {
	if timeoutMs < 0 {
		return nil, ErrInvalidTimeout.Error()
	}

	s.maybeGrow()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(key)
	var prev []byte = serializedZero
	if idx >= 0 {
		prev = copyBytes(s.slots[idx].val)
	}

	if !bytes.Equal(prev, expect) {
		return prev, nil
	}

	var expiry int64
	if timeoutMs > 0 {
		expiry = s.now() + timeoutMs*int64(1e6)
	}

	if idx < 0 {
		idx = s.insertLocked(key)
		s.length++
		s.used++
	}
	s.slots[idx] = slot{state: stateOccupied, key: copyBytes(key), val: copyBytes(newVal), expiry: expiry}

	s.cond.Broadcast()
	return prev, nil
}
