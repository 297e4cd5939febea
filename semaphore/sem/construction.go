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

package sem

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// MaxSimultaneous reports the default concurrency limit used when New is
// called with nbrSimultaneous == 0: the number of logical CPUs usable by the
// current process.
func MaxSimultaneous() int {
	return runtime.GOMAXPROCS(0)
}

// SetSimultaneous clamps n to the [1, MaxSimultaneous()] range, returning
// MaxSimultaneous() for any n outside it.
func SetSimultaneous(n int64) int64 {
	max := int64(MaxSimultaneous())

	if n < 1 || n > max {
		return max
	}

	return n
}

type sem struct {
	ctx    context.Context
	cancel context.CancelFunc

	limit    int64
	weighted *semaphore.Weighted
	wg       *sync.WaitGroup
}

func newSemaphore(ctx context.Context, nbrSimultaneous int64) Semaphore {
	cctx, cancel := context.WithCancel(ctx)

	if nbrSimultaneous < 0 {
		return &sem{
			ctx:    cctx,
			cancel: cancel,
			limit:  -1,
			wg:     new(sync.WaitGroup),
		}
	}

	limit := nbrSimultaneous
	if limit == 0 {
		limit = int64(MaxSimultaneous())
	}

	return &sem{
		ctx:      cctx,
		cancel:   cancel,
		limit:    limit,
		weighted: semaphore.NewWeighted(limit),
	}
}

func (o *sem) Weighted() int64 {
	return o.limit
}

func (o *sem) New() Semaphore {
	return newSemaphore(o.ctx, o.limit)
}

func (o *sem) DeferMain() {
	o.cancel()
}
