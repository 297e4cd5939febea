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

// streamClient backs both the tcp and unix (ipc) flavors: a single dialed
// net.Conn read and written directly by the rpc/pubsub layer sitting on
// top; it runs no HandlerFunc.
type streamClient struct {
	network string
	address string
	update  socket.UpdateConn

	mu   sync.Mutex
	conn net.Conn
}

func newStreamClient(network, address string, update socket.UpdateConn) socket.Client {
	return &streamClient{network: network, address: address, update: update}
}

func (c *streamClient) notify(state socket.ConnState, conn net.Conn) {
	if c.update != nil {
		c.update(state, conn)
	}
}

func (c *streamClient) Connect(ctx context.Context) error {
	c.notify(socket.ConnectionDial, nil)

	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network, c.address)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.notify(socket.ConnectionNew, conn)
	return nil
}

func (c *streamClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *streamClient) Write(payload []byte) (int, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return 0, ErrConnection.Error()
	}

	c.notify(socket.ConnectionWrite, conn)
	return conn.Write(payload)
}

func (c *streamClient) Read(buf []byte) (int, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return 0, ErrConnection.Error()
	}

	c.notify(socket.ConnectionRead, conn)
	return conn.Read(buf)
}

func (c *streamClient) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	c.notify(socket.ConnectionClose, conn)
	return conn.Close()
}
