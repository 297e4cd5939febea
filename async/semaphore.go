/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package async

import "sync"

// Semaphore is an integer permit count plus a FIFO queue of waiting
// promises, per the spec's acquire_async/release/try_acquire contract.
// Unlike semaphore/sem (which this package's Scheduler wraps directly for
// its concurrency cap), this Semaphore settles Promises instead of blocking
// a goroutine, matching the loop-local acquire_async semantics.
type Semaphore struct {
	mu      sync.Mutex
	permits int64
	waiters []*Promise
}

// NewSemaphore builds a Semaphore starting with the given permit count.
func NewSemaphore(permits int64) *Semaphore {
	return &Semaphore{permits: permits}
}

// AcquireAsync resolves p immediately if a permit is free, else enqueues it;
// Release later resolves enqueued promises in FIFO order.
func (s *Semaphore) AcquireAsync(p *Promise) {
	s.mu.Lock()
	if s.permits > 0 {
		s.permits--
		s.mu.Unlock()
		_ = p.Resolve(nil)
		return
	}
	s.waiters = append(s.waiters, p)
	s.mu.Unlock()
}

// Release hands the freed permit to the longest-waiting queued promise, or
// increments the permit count if none are waiting.
func (s *Semaphore) Release() {
	s.mu.Lock()
	if len(s.waiters) > 0 {
		next := s.waiters[0]
		s.waiters = s.waiters[1:]
		s.mu.Unlock()
		_ = next.Resolve(nil)
		return
	}
	s.permits++
	s.mu.Unlock()
}

// TryAcquire takes a permit without queuing, reporting whether one was free.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.permits > 0 {
		s.permits--
		return true
	}
	return false
}

// Waiting reports the current queue depth, for tests and metrics.
func (s *Semaphore) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waiters)
}
