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

// NewWorker acquires a slot, blocking on the weighted semaphore until one
// frees up or the context is cancelled. In unlimited (WaitGroup) mode it
// always succeeds immediately.
func (o *sem) NewWorker() error {
	if o.weighted == nil {
		o.wg.Add(1)
		return nil
	}

	return o.weighted.Acquire(o.ctx, 1)
}

// NewWorkerTry acquires a slot without blocking. Unlimited mode always
// succeeds.
func (o *sem) NewWorkerTry() bool {
	if o.weighted == nil {
		o.wg.Add(1)
		return true
	}

	return o.weighted.TryAcquire(1)
}

// DeferWorker releases a slot acquired through NewWorker or NewWorkerTry.
func (o *sem) DeferWorker() {
	if o.weighted == nil {
		o.wg.Done()
		return
	}

	o.weighted.Release(1)
}

// WaitAll blocks until every acquired worker has released its slot. For the
// weighted mode this re-acquires the full capacity (which can only succeed
// once nothing else holds a slot) and releases it back immediately.
func (o *sem) WaitAll() error {
	if o.weighted == nil {
		o.wg.Wait()
		return nil
	}

	if err := o.weighted.Acquire(o.ctx, o.limit); err != nil {
		return err
	}

	o.weighted.Release(o.limit)
	return nil
}
