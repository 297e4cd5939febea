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
	"encoding/binary"
	"sync"

	"github.com/adam-ikari/uvrpc-sub001/status"
)

// encodeChunk frames one payload as a 4-byte big-endian length followed by
// the bytes, the same length-prefix idiom the frame codec uses on the wire;
// All concatenates these so the combined payload can be split back apart in
// input order.
func encodeChunk(b []byte) []byte {
	out := make([]byte, 4+len(b))
	binary.BigEndian.PutUint32(out, uint32(len(b)))
	copy(out[4:], b)
	return out
}

// All resolves combined with the concatenation (input order) of every
// child's payload once all children are fulfilled, or rejects combined with
// the first rejection observed. An empty slice resolves immediately.
func All(promises []*Promise) *Promise {
	combined := New()
	if len(promises) == 0 {
		_ = combined.Resolve(nil)
		return combined
	}

	var mu sync.Mutex
	remaining := len(promises)
	settled := false

	for _, child := range promises {
		child.Then(func(c *Promise) {
			mu.Lock()
			defer mu.Unlock()
			if settled {
				return
			}
			if c.IsRejected() {
				settled = true
				_ = combined.Reject(c.Code(), c.Message())
				return
			}
			remaining--
			if remaining == 0 {
				settled = true
				var out []byte
				for _, p := range promises {
					out = append(out, encodeChunk(p.Payload())...)
				}
				_ = combined.Resolve(out)
			}
		})
	}
	return combined
}

// Race settles combined with the outcome of whichever child settles first.
func Race(promises []*Promise) *Promise {
	combined := New()
	var once sync.Once

	for _, child := range promises {
		child.Then(func(c *Promise) {
			once.Do(func() {
				if c.IsFulfilled() {
					_ = combined.Resolve(c.Payload())
				} else {
					_ = combined.Reject(c.Code(), c.Message())
				}
			})
		})
	}
	return combined
}

// Outcome is one child's result as reported by AllSettled, in input order.
type Outcome struct {
	Fulfilled bool
	Payload   []byte
	Code      status.Code
	Message   string
}

// AllSettled resolves combined once every child has settled (fulfilled or
// rejected); the per-child results, in input order, are delivered via
// outcomes rather than encoded into combined's opaque payload.
func AllSettled(promises []*Promise) (combined *Promise, outcomes []Outcome) {
	combined = New()
	outcomes = make([]Outcome, len(promises))

	if len(promises) == 0 {
		_ = combined.Resolve(nil)
		return combined, outcomes
	}

	var mu sync.Mutex
	remaining := len(promises)

	for i, child := range promises {
		idx := i
		child.Then(func(c *Promise) {
			mu.Lock()
			defer mu.Unlock()

			if c.IsFulfilled() {
				outcomes[idx] = Outcome{Fulfilled: true, Payload: c.Payload()}
			} else {
				outcomes[idx] = Outcome{Code: c.Code(), Message: c.Message()}
			}

			remaining--
			if remaining == 0 {
				_ = combined.Resolve(nil)
			}
		})
	}
	return combined, outcomes
}
