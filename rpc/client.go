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

package rpc

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adam-ikari/uvrpc-sub001/bus"
	"github.com/adam-ikari/uvrpc-sub001/envelope"
	"github.com/adam-ikari/uvrpc-sub001/frame"
	liblog "github.com/adam-ikari/uvrpc-sub001/logger"
	"github.com/adam-ikari/uvrpc-sub001/socket"
	"github.com/adam-ikari/uvrpc-sub001/socket/client"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

// ExpireInterval is how often Client scans the pending-call table for
// deadlines that have passed, per spec §4.5's "coarse intervals (e.g. 100ms)".
const ExpireInterval = 100 * time.Millisecond

// Client is the connect-role half of an RPC session: one Transport, one
// Bus, and a per-client msgid generator starting at 1.
type Client struct {
	transport socket.Client
	bus       bus.Bus
	log       liblog.Logger

	nextMsgID uint64

	mu        sync.Mutex
	connected bool
	stop      chan struct{}
	stopOnce  *sync.Once
}

// NewClient builds the connect-role Transport named by cfg and binds it to
// b. log may be nil.
func NewClient(cfg config.Client, b bus.Bus, log liblog.Logger) (*Client, error) {
	c := &Client{bus: b, log: log}

	transport, err := client.New(cfg, c.updateConn)
	if err != nil {
		return nil, err
	}
	c.transport = transport
	return c, nil
}

// NewInprocClient builds the INPROC-flavor connect-role Transport dialing
// name.
func NewInprocClient(name string, b bus.Bus, log liblog.Logger) *Client {
	c := &Client{bus: b, log: log}
	c.transport = client.NewInproc(name, c.updateConn)
	return c
}

func (c *Client) updateConn(state socket.ConnState, _ net.Conn) {
	if c.log != nil {
		c.log.Debug(state.String())
	}
}

// Connect dials the configured address, then starts the read loop and the
// deadline-expiry timer.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.transport.Connect(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.connected = true
	c.stop = make(chan struct{})
	c.stopOnce = &sync.Once{}
	stop := c.stop
	c.mu.Unlock()

	go c.readLoop(stop)
	go c.expireLoop(stop)
	return nil
}

// IsConnected reports whether the underlying transport is live.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Call allocates a fresh msgid, registers cb as the pending callback, and
// sends a Request envelope. Refuses with status.NotConnected if the
// transport has not completed Connect. On any transport send failure, the
// pending entry is removed and the error is returned synchronously — cb is
// not invoked in that case.
func (c *Client) Call(method string, payload []byte, cb bus.PendingCallback, deadline *time.Time) error {
	if !c.IsConnected() {
		return libstt.From(libstt.NotConnected)
	}

	msgid := atomic.AddUint64(&c.nextMsgID, 1)
	if err := c.bus.RegisterPending(msgid, cb, deadline); err != nil {
		return err
	}

	env := envelope.Envelope{Kind: envelope.KindRequest, Method: method, MsgId: msgid, Payload: payload}
	body, err := envelope.Encode(env)
	if err != nil {
		_ = c.bus.CancelPending(msgid)
		return err
	}

	wire, err := frame.Encode(body)
	if err != nil {
		_ = c.bus.CancelPending(msgid)
		return err
	}

	if _, err := c.transport.Write(wire); err != nil {
		_ = c.bus.CancelPending(msgid)
		return err
	}
	return nil
}

// Disconnect drains every pending entry with status.Cancelled, stops the
// background loops, and closes the transport.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return nil
	}
	c.connected = false
	c.mu.Unlock()

	c.stopLoops()
	c.bus.DrainPending()
	return c.transport.Close()
}

// stopLoops closes the stop channel exactly once, whether triggered by an
// explicit Disconnect or by the read loop observing the peer hang up.
func (c *Client) stopLoops() {
	c.mu.Lock()
	once := c.stopOnce
	stop := c.stop
	c.mu.Unlock()

	if once == nil {
		return
	}
	once.Do(func() { close(stop) })
}

func (c *Client) readLoop(stop chan struct{}) {
	var reassembly []byte
	chunk := make([]byte, socket.DefaultBufferSize)

	for {
		select {
		case <-stop:
			return
		default:
		}

		n, readErr := c.transport.Read(chunk)
		if n > 0 {
			frames, rest, ferr := frame.Feed(reassembly, chunk[:n])
			reassembly = rest
			if ferr != nil && c.log != nil {
				c.log.Warning("dropping invalid frame: %v", ferr)
			}

			for _, payload := range frames {
				env, derr := envelope.Decode(payload)
				if derr != nil {
					if c.log != nil {
						c.log.Warning("dropping undecodable envelope: %v", derr)
					}
					continue
				}

				if env.Kind != envelope.KindResponse {
					if c.log != nil {
						c.log.Warning("unexpected envelope kind %s on client connection", env.Kind)
					}
					continue
				}

				c.bus.DispatchResponse(env)
			}
		}

		if readErr != nil {
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			c.stopLoops()
			c.bus.DrainPending()
			return
		}
	}
}

func (c *Client) expireLoop(stop chan struct{}) {
	ticker := time.NewTicker(ExpireInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			c.bus.ExpirePending(now)
		}
	}
}
