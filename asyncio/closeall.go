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
	"context"

	"golang.org/x/sync/errgroup"
)

// Closer is satisfied by both *Conn and *Server.
type Closer interface {
	Close() error
}

// CloseAll closes every handle in closers concurrently and waits for
// all of them to finish, returning the first non-nil error
// encountered (the rest are still given a chance to close - a slow or
// stuck Close on one handle never blocks the others). Useful for
// tearing down a reactor's whole connection set on shutdown without
// serializing on each Close's socket-level syscalls one at a time.
func CloseAll(closers ...Closer) error {
	g, _ := errgroup.WithContext(context.Background())
	for _, c := range closers {
		c := c
		g.Go(func() error {
			return c.Close()
		})
	}
	return g.Wait()
}
