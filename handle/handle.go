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

// Package handle implements the refcounted, typed, opaque resource object
// a script Value can reference. Each native subsystem reserves a small
// integer type tag at init time and registers a destructor; freeing
// the last Value reference to a handle invokes it.
//
// This mirrors the C original's "tagged pointer + free function"
// pattern as a Go vtable-bearing struct instead of a raw union, so a
// cast to the wrong subsystem fails a type check instead of
// reinterpreting memory.
package handle

import (
	"sync/atomic"
)

// Type tags, one per native subsystem that owns handles. Kept distinct
// from the errors package's CodeError bands on purpose: a tag identifies
// a *kind of resource*, not an error domain.
const (
	TypeTCPConn = iota + 1
	TypeTCPServer
	TypeTimer
	TypeDeflateStream
	TypeGzipStream
	TypeCSSMirror
)

// Destructor releases whatever native resource a Handle wraps. It must be
// idempotent-safe: it is only ever invoked once, when the refcount drops
// to zero, but subsystems that also expose an explicit Close should guard
// against a double-run themselves.
type Destructor func()

// Handle is a refcounted, typed native resource visible to scripts as a
// Value. The zero value is not usable; construct with New.
type Handle struct {
	tag     int
	refs    int32
	destroy Destructor
}

// New creates a Handle with refcount 1, owned by whichever Value the
// caller is about to hand back to the script runtime.
func New(tag int, destroy Destructor) *Handle {
	return &Handle{tag: tag, refs: 1, destroy: destroy}
}

// TypeTag reports the subsystem type tag this handle was created with.
func (h *Handle) TypeTag() int {
	if h == nil {
		return 0
	}
	return h.tag
}

// Retain increments the refcount; called whenever the script runtime
// duplicates a Value referencing this handle (e.g. array/hash copy).
func (h *Handle) Retain() {
	if h == nil {
		return
	}
	atomic.AddInt32(&h.refs, 1)
}

// Release decrements the refcount and runs the destructor exactly once
// when it reaches zero.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	if atomic.AddInt32(&h.refs, -1) == 0 && h.destroy != nil {
		h.destroy()
	}
}

// RefCount reports the current reference count, for tests and diagnostics.
func (h *Handle) RefCount() int32 {
	if h == nil {
		return 0
	}
	return atomic.LoadInt32(&h.refs)
}

// Cast type-checks h against wantTag, returning an error for a
// handle-type mismatch or a closed handle.
func Cast(h *Handle, wantTag int) (*Handle, error) {
	if h == nil || atomic.LoadInt32(&h.refs) <= 0 {
		return nil, ErrorNilHandle.Error()
	}
	if h.tag != wantTag {
		return nil, ErrorTypeMismatch.Error()
	}
	return h, nil
}
