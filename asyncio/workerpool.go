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

// workerIdleLifetime bounds how long a worker goroutine waits for its
// next job before exiting.
const workerIdleLifetime = 5 * time.Second

// workerPool offloads blocking DNS resolution and connect() calls so
// the reactor's dispatch goroutine never blocks on them. It is
// unbounded in the number of workers it will spawn, but a worker with
// no work queued for workerIdleLifetime exits; workers waiting on jobs
// are reused for the next submission instead of spawning a fresh
// goroutine. Go goroutines are cheap enough that an unbounded cached
// pool is the idiomatic rendition here; a bounded pool would add a
// queueing-delay failure mode this engine has no need for.
type workerPool struct {
	jobs chan func()
}

func newWorkerPool() *workerPool {
	return &workerPool{jobs: make(chan func())}
}

// submit hands fn to an idle worker if one is waiting, otherwise spawns
// a new one.
func (p *workerPool) submit(fn func()) {
	select {
	case p.jobs <- fn:
	default:
		go p.runWorker(fn)
	}
}

func (p *workerPool) runWorker(first func()) {
	first()

	idle := time.NewTimer(workerIdleLifetime)
	defer idle.Stop()

	for {
		select {
		case fn := <-p.jobs:
			if !idle.Stop() {
				<-idle.C
			}
			fn()
			idle.Reset(workerIdleLifetime)
		case <-idle.C:
			return
		}
	}
}
