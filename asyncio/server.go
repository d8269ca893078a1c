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
	"fmt"
	"net"
	"sync"

	"github.com/sabouaram/fixnative/handle"
)

// Server wraps a listening TCP socket as a handle. Accept is one-shot:
// each call delivers exactly one connection and does not rearm itself;
// a caller that wants a steady stream of connections calls Accept
// again from within the previous call's own callback.
type Server struct {
	h *handle.Handle

	reactor  *Reactor
	listener net.Listener

	mu            sync.Mutex
	acceptPending bool
	closed        bool
}

// CreateServer binds and listens on port, returning a Server handle.
// The accept loop is not started until Accept is called. localOnly
// binds to loopback only; otherwise all interfaces.
func (r *Reactor) CreateServer(port int, localOnly bool) (*Server, error) {
	host := ""
	if localOnly {
		host = "127.0.0.1"
	}
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, err
	}
	s := &Server{reactor: r, listener: ln}
	s.h = handle.New(handle.TypeTCPServer, func() { s.Close() })
	return s, nil
}

// Handle returns the opaque handle a script Value would reference.
func (s *Server) Handle() *handle.Handle { return s.h }

// Addr reports the bound local address, including the OS-assigned
// port when the server was created with port 0.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Accept delivers exactly one incoming connection to cb. Call Accept
// again from within (or after) cb to accept the next one.
func (s *Server) Accept(cb func(c *Conn, err error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrHandleClosed.Error()
	}
	if s.acceptPending {
		s.mu.Unlock()
		return ErrReadAlreadyPending.Error()
	}
	s.acceptPending = true
	s.mu.Unlock()

	go func() {
		nc, err := s.listener.Accept()

		s.mu.Lock()
		s.acceptPending = false
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}

		var c *Conn
		if err == nil {
			c = newConn(s.reactor, nc)
		}
		s.reactor.post(completion{kind: completionAccept, accept: cb, c: c, err: err, srv: s})
	}()
	return nil
}

// Close stops accepting and closes the listening socket. Per A2, a
// pending Accept's callback is never invoked after Close.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.listener.Close()
}
