/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

// Package sem provides a worker-limiting semaphore that transparently picks
// between a weighted implementation (bounded concurrency) and a WaitGroup
// implementation (unlimited concurrency, tracked only for WaitAll) depending
// on the limit requested at construction.
package sem

import "context"

// Semaphore bounds (or tracks, when unlimited) concurrent workers. It embeds
// context.Context so callers can select on Done()/Err() the same way they
// would on the context used to build it; DeferMain cancels that context.
type Semaphore interface {
	context.Context

	// NewWorker blocks until a slot is available or the semaphore's context
	// is cancelled, in which case it returns the context's error.
	NewWorker() error

	// NewWorkerTry acquires a slot without blocking, reporting whether one
	// was available.
	NewWorkerTry() bool

	// DeferWorker releases a slot acquired by NewWorker/NewWorkerTry.
	DeferWorker()

	// DeferMain cancels the semaphore's internal context. Safe to call more
	// than once.
	DeferMain()

	// WaitAll blocks until every acquired worker has been released.
	WaitAll() error

	// Weighted reports the configured concurrency limit, or -1 when the
	// semaphore is unlimited.
	Weighted() int64

	// New creates an independent semaphore with the same mode and limit,
	// whose context is a child of this one.
	New() Semaphore
}

// New builds a Semaphore bound to ctx. nbrSimultaneous == 0 uses
// MaxSimultaneous() as the limit, nbrSimultaneous > 0 uses that exact limit,
// and any negative value selects the unlimited WaitGroup-backed mode.
func New(ctx context.Context, nbrSimultaneous int64) Semaphore {
	return newSemaphore(ctx, nbrSimultaneous)
}
