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

import (
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sabouaram/fixnative/handle"
	"github.com/sabouaram/fixnative/rtlog"
)

// Conn wraps a TCP connection as a handle, exposing callback-based
// read/write instead of the blocking io.Reader/Writer contract so the
// reactor's dispatch thread never blocks on socket I/O. At most one
// read may be outstanding on a Conn at a time; Write does not track
// writes in flight, so a second Write issued before the first has
// completed is not refused.
type Conn struct {
	h  *handle.Handle
	id string

	reactor *Reactor
	conn    net.Conn

	mu          sync.Mutex
	readPending bool
	closed      bool
}

func newConn(r *Reactor, nc net.Conn) *Conn {
	c := &Conn{reactor: r, conn: nc, id: uuid.NewString()}
	c.h = handle.New(handle.TypeTCPConn, func() { c.Close() })
	return c
}

// Handle returns the opaque handle a script Value would reference.
func (c *Conn) Handle() *handle.Handle { return c.h }

// ID returns a connection-scoped identifier, assigned once at accept
// or connect time, for correlating this connection's log lines across
// the lifetime of a single TCP session. It is never exposed to script
// code and plays no part in handle identity or comparison.
func (c *Conn) ID() string { return c.id }

// RawConn exposes the underlying net.Conn, bypassing the reactor's
// async Read/Write entirely. Only meant for tests that need to drive
// a connection with the stdlib's synchronous net.Conn contract
// directly (golang.org/x/net/nettest's conformance battery, in
// particular); production code should always go through Read/Write.
func (c *Conn) RawConn() net.Conn { return c.conn }

// OpenConnection offloads DNS resolution and connect() to the worker
// pool; cb fires on the reactor's dispatch thread with the new Conn,
// or a nil Conn and non-nil err if DNS resolution or connect() fails.
func (r *Reactor) OpenConnection(host string, port int, cb func(c *Conn, err error)) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	r.pool.submit(func() {
		nc, err := net.DialTimeout("tcp", addr, 30*time.Second)
		var c *Conn
		if err == nil {
			c = newConn(r, nc)
		}
		r.post(completion{kind: completionConnect, connect: cb, c: c, err: err})
	})
}

// Read registers a read of up to len(buf) bytes. A second concurrent
// Read on the same handle is refused synchronously (the first read is
// left undisturbed) by returning ErrReadAlreadyPending without ever
// reaching the reactor.
func (c *Conn) Read(buf []byte, cb func(n int, err error)) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrHandleClosed.Error()
	}
	if c.readPending {
		c.mu.Unlock()
		return ErrReadAlreadyPending.Error()
	}
	c.readPending = true
	c.mu.Unlock()

	go func() {
		n, err := c.conn.Read(buf)
		c.mu.Lock()
		c.readPending = false
		closed := c.closed
		c.mu.Unlock()

		reported := n
		if err != nil {
			if errors.Is(err, io.EOF) {
				reported = -1
			} else {
				reported = 0
				c.logReadWriteError("read", err)
			}
		}
		if closed {
			return // no callback after close, even if the read already finished
		}
		c.reactor.post(completion{kind: completionRead, connRead: cb, n: reported, err: err, c: c})
	}()
	return nil
}

// logReadWriteError reports a Read/Write failure through the
// reactor's logger, at DebugLevel for an ordinary peer reset and
// ErrorLevel otherwise.
func (c *Conn) logReadWriteError(op string, err error) {
	lvl := rtlog.ErrorLevel
	if isPeerReset(err) {
		lvl = rtlog.DebugLevel
	}
	c.reactor.log.Entry(lvl, "asyncio: connection "+op+" failed").
		Field("connID", c.id).
		Field("handleType", c.h.TypeTag()).
		ErrorAdd(err).
		Log()
}

func (c *Conn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Write registers a write of buf; cb fires with the number of bytes
// actually written, mirroring Read's completion shape.
func (c *Conn) Write(buf []byte, cb func(n int, err error)) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrHandleClosed.Error()
	}
	c.mu.Unlock()

	go func() {
		n, err := c.conn.Write(buf)
		if err != nil {
			c.logReadWriteError("write", err)
		}
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return
		}
		c.reactor.post(completion{kind: completionWrite, connWrite: cb, n: n, err: err, c: c})
	}()
	return nil
}

// Close cancels any outstanding operation and closes the socket. No
// callback registered on this handle is invoked after Close returns,
// regardless of whether an operation had already completed and was
// merely waiting to be dispatched.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.conn.Close()
}
