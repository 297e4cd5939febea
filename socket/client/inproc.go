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

package client

import (
	"context"
	"net"
	"sync"

	"github.com/adam-ikari/uvrpc-sub001/socket"
)

// inprocClient dials the process-global registry under name, obtaining a
// pipe whose ends are reversed relative to the server: this side reads
// ToClient and writes ToServer.
type inprocClient struct {
	name   string
	update socket.UpdateConn

	mu   sync.Mutex
	pipe *socket.InprocPipe
}

// NewInproc builds a Client that dials name on Connect.
func NewInproc(name string, update socket.UpdateConn) socket.Client {
	return &inprocClient{name: name, update: update}
}

func (c *inprocClient) Connect(_ context.Context) error {
	c.update0(socket.ConnectionDial)

	pipe, err := socket.InprocDial(c.name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.pipe = pipe
	c.mu.Unlock()

	c.update0(socket.ConnectionNew)
	return nil
}

func (c *inprocClient) update0(state socket.ConnState) {
	if c.update != nil {
		c.update(state, nil)
	}
}

func (c *inprocClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pipe != nil
}

func (c *inprocClient) Write(payload []byte) (int, error) {
	c.mu.Lock()
	pipe := c.pipe
	c.mu.Unlock()

	if pipe == nil {
		return 0, ErrConnection.Error()
	}

	c.update0(socket.ConnectionWrite)
	pipe.ToServer <- append([]byte(nil), payload...)
	return len(payload), nil
}

func (c *inprocClient) Read(buf []byte) (int, error) {
	c.mu.Lock()
	pipe := c.pipe
	c.mu.Unlock()

	if pipe == nil {
		return 0, ErrConnection.Error()
	}

	c.update0(socket.ConnectionRead)
	b, ok := <-pipe.ToClient
	if !ok {
		return 0, net.ErrClosed
	}
	return copy(buf, b), nil
}

func (c *inprocClient) Close() error {
	c.mu.Lock()
	c.pipe = nil
	c.mu.Unlock()

	c.update0(socket.ConnectionClose)
	return nil
}
