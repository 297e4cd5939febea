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

import (
	"context"
	"time"

	libsem "github.com/adam-ikari/uvrpc-sub001/semaphore/sem"
)

// Task is one unit of work submitted to a Scheduler: fn must eventually
// resolve or reject promise, which releases the concurrency permit.
type Task func(promise *Promise)

// Scheduler bounds a batch of tasks under a concurrency cap, bundling
// semaphore/sem (the cap) with a WaitGroup (fleet completion) exactly as
// SPEC_FULL.md's derived Scheduler describes.
type Scheduler struct {
	sem libsem.Semaphore
	wg  *WaitGroup
}

// NewScheduler builds a Scheduler with the given concurrency limit (0 = use
// semaphore/sem's MaxSimultaneous(), negative = unlimited).
func NewScheduler(ctx context.Context, limit int64) *Scheduler {
	return &Scheduler{
		sem: libsem.New(ctx, limit),
		wg:  NewWaitGroup(),
	}
}

// Submit acquires a permit (blocking if the cap is saturated), runs fn, and
// releases the permit as soon as fn's promise settles.
func (s *Scheduler) Submit(fn Task) error {
	if err := s.sem.NewWorker(); err != nil {
		return err
	}
	if err := s.wg.Add(1); err != nil {
		s.sem.DeferWorker()
		return err
	}

	promise := New()
	promise.Then(func(p *Promise) {
		s.sem.DeferWorker()
		_ = s.wg.Done()
	})

	fn(promise)
	return nil
}

// WaitAll blocks until every submitted task's promise has settled, or until
// deadline elapses (a zero deadline waits indefinitely).
func (s *Scheduler) WaitAll(deadline time.Duration) error {
	done := make(chan struct{})
	s.wg.Promise().Then(func(*Promise) { close(done) })

	if deadline <= 0 {
		<-done
		return nil
	}

	select {
	case <-done:
		return nil
	case <-time.After(deadline):
		return ErrTimeout.Error()
	}
}
