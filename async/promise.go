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

// Package async implements the loop-local async primitives: Promise,
// Semaphore, WaitGroup, their combinators, and the Scheduler built on top of
// semaphore/sem. A real cooperative single-threaded loop is replaced here by
// Go's own scheduler: "the wake handle" that defers a settled Promise's
// callback so resolve/reject never call it re-entrantly is a goroutine
// launch instead of a loop-iteration post, which gives the same
// never-synchronous guarantee without inventing a loop abstraction this
// module has no other use for.
package async

import (
	"sync"

	"github.com/adam-ikari/uvrpc-sub001/status"
)

// State is where a Promise sits in its Pending/Fulfilled/Rejected lifecycle.
type State uint8

const (
	Pending State = iota
	Fulfilled
	Rejected
)

// Callback is invoked exactly once, after the Promise it was registered on
// settles.
type Callback func(p *Promise)

// Promise is a value-or-error cell settled exactly once; Then registers the
// terminal callback, which always runs on its own goroutine.
type Promise struct {
	mu      sync.Mutex
	state   State
	payload []byte
	code    status.Code
	message string
	cb      Callback
	invoked bool
}

// New returns a Pending promise.
func New() *Promise {
	return &Promise{}
}

// Resolve transitions Pending -> Fulfilled with payload, scheduling the Then
// callback (if any) on a new goroutine. A promise already settled returns
// ErrAlreadySettled.
func (p *Promise) Resolve(payload []byte) error {
	p.mu.Lock()
	if p.state != Pending {
		p.mu.Unlock()
		return ErrAlreadySettled.Error()
	}
	p.state = Fulfilled
	p.payload = payload
	p.mu.Unlock()

	p.schedule()
	return nil
}

// Reject transitions Pending -> Rejected with code/message, scheduling the
// Then callback (if any) on a new goroutine.
func (p *Promise) Reject(code status.Code, message string) error {
	p.mu.Lock()
	if p.state != Pending {
		p.mu.Unlock()
		return ErrAlreadySettled.Error()
	}
	p.state = Rejected
	p.code = code
	p.message = message
	p.mu.Unlock()

	p.schedule()
	return nil
}

// Then registers the terminal callback. If the promise is already settled,
// cb is scheduled immediately (still on its own goroutine); a second call to
// Then replaces the pending registration.
func (p *Promise) Then(cb Callback) {
	p.mu.Lock()
	p.cb = cb
	settled := p.state != Pending
	p.mu.Unlock()

	if settled {
		p.schedule()
	}
}

func (p *Promise) schedule() {
	p.mu.Lock()
	cb := p.cb
	already := p.invoked
	if cb != nil {
		p.invoked = true
	}
	p.mu.Unlock()

	if cb == nil || already {
		return
	}
	// Each callback gets its own goroutine so a settling Promise never
	// reenters its resolver. That only orders the enqueue, not the
	// callback's execution: two promises settled back to back (e.g. two
	// Semaphore.Release callers) can have their callbacks run out of
	// that order, since the Go scheduler is free to interleave them.
	// Callers that need strict delivery order must serialize externally
	// (a single waiter channel, or WaitAll) rather than rely on Then order.
	go cb(p)
}

func (p *Promise) IsPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == Pending
}

func (p *Promise) IsFulfilled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == Fulfilled
}

func (p *Promise) IsRejected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == Rejected
}

// Payload returns the fulfilled payload, or nil before fulfillment.
func (p *Promise) Payload() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.payload
}

// Code returns the rejection code, or status.Ok before rejection.
func (p *Promise) Code() status.Code {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code
}

// Message returns the rejection message, or "" before rejection.
func (p *Promise) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message
}

// Err returns the rejection as a standard error, or nil if not rejected.
func (p *Promise) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Rejected {
		return nil
	}
	return status.New(p.code, p.message)
}
