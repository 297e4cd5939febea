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

package socket

import (
	"sync"

	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
)

// InprocPipe is one client<->server connection on an inproc address: two
// unidirectional channels, each copied into directly by the opposite
// side's Write, so that no frame crosses a goroutine boundary through a
// socket or buffer the kernel owns.
type InprocPipe struct {
	ToServer chan []byte
	ToClient chan []byte
}

// NewInprocPipe allocates a fresh pipe with the given per-direction queue
// depth.
func NewInprocPipe(depth int) *InprocPipe {
	return &InprocPipe{
		ToServer: make(chan []byte, depth),
		ToClient: make(chan []byte, depth),
	}
}

// InprocDialer is supplied by a listening inproc server; every call opens
// one fresh logical connection and returns its pipe.
type InprocDialer func() *InprocPipe

type inprocRegistry struct {
	mu      sync.Mutex
	dialers map[string]InprocDialer
}

var globalInproc = &inprocRegistry{dialers: make(map[string]InprocDialer)}

// InprocRegister publishes dial as the connect entry point for name. A
// second registration under the same name replaces the first, matching
// "last bind wins" for a restarted server.
func InprocRegister(name string, dial InprocDialer) {
	globalInproc.mu.Lock()
	defer globalInproc.mu.Unlock()
	globalInproc.dialers[name] = dial
}

// InprocUnregister removes name's dialer.
func InprocUnregister(name string) {
	globalInproc.mu.Lock()
	defer globalInproc.mu.Unlock()
	delete(globalInproc.dialers, name)
}

// InprocDial opens a fresh connection to name's listener, or ErrInprocNotFound if
// nothing is currently registered under that address.
func InprocDial(name string) (*InprocPipe, error) {
	globalInproc.mu.Lock()
	dial, ok := globalInproc.dialers[name]
	globalInproc.mu.Unlock()

	if !ok {
		return nil, ErrInprocNotFound.Error()
	}
	return dial(), nil
}

// ErrInprocNotFound is returned by InprocDial when no server is currently
// registered under the requested address.
const ErrInprocNotFound liberr.CodeError = ErrNotRunning + 1
