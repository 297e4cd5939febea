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

// WaitGroup is a non-negative counter with a completion Promise that
// resolves the moment the counter reaches zero.
type WaitGroup struct {
	mu      sync.Mutex
	counter int64
	promise *Promise
	resolved bool
}

// NewWaitGroup returns a WaitGroup whose completion Promise is already
// resolved (counter starts at zero).
func NewWaitGroup() *WaitGroup {
	w := &WaitGroup{promise: New()}
	_ = w.promise.Resolve(nil)
	w.resolved = true
	return w
}

// Add adjusts the counter by delta (which may be negative). Driving the
// counter below zero returns ErrNegativeCounter and leaves the counter
// unchanged.
func (w *WaitGroup) Add(delta int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.counter+delta < 0 {
		return ErrNegativeCounter.Error()
	}

	wasZero := w.counter == 0
	w.counter += delta

	if wasZero && w.counter > 0 {
		w.promise = New()
		w.resolved = false
	}
	if w.counter == 0 && !w.resolved {
		w.resolved = true
		_ = w.promise.Resolve(nil)
	}
	return nil
}

// Done is equivalent to Add(-1).
func (w *WaitGroup) Done() error {
	return w.Add(-1)
}

// Promise returns the current completion promise. Calling Add after this
// promise settles starts a fresh one, so callers that need to observe every
// completion should call Promise() again before each wait.
func (w *WaitGroup) Promise() *Promise {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.promise
}
