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

package pubsub

import (
	"context"
	"net"

	"github.com/adam-ikari/uvrpc-sub001/envelope"
	"github.com/adam-ikari/uvrpc-sub001/frame"
	liblog "github.com/adam-ikari/uvrpc-sub001/logger"
	"github.com/adam-ikari/uvrpc-sub001/socket"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
	"github.com/adam-ikari/uvrpc-sub001/socket/server"
)

// Publisher is the listen-role half of a pub/sub session: one Transport in
// listen role, broadcasting Publication envelopes to every connected peer.
// It holds no Bus reference — fan-out happens over the wire, not in-process.
type Publisher struct {
	transport socket.Server
	log       liblog.Logger
}

// NewPublisher builds the listen-role Transport named by cfg.
func NewPublisher(cfg config.Server, log liblog.Logger) (*Publisher, error) {
	p := &Publisher{log: log}

	transport, err := server.New(p.updateConn, p.handle, cfg)
	if err != nil {
		return nil, err
	}
	p.transport = transport
	return p, nil
}

// NewInprocPublisher builds the INPROC-flavor listen-role Transport under name.
func NewInprocPublisher(name string, log liblog.Logger) (*Publisher, error) {
	p := &Publisher{log: log}

	transport, err := server.NewInproc(name, p.updateConn, p.handle)
	if err != nil {
		return nil, err
	}
	p.transport = transport
	return p, nil
}

// Listen starts accepting subscriber connections; it blocks until ctx is
// cancelled or Shutdown is called from another goroutine. On the inproc
// flavor only ctx cancellation ends it.
func (p *Publisher) Listen(ctx context.Context) error {
	return p.transport.Listen(ctx)
}

// Shutdown stops accepting and closes every live connection.
func (p *Publisher) Shutdown(ctx context.Context) error {
	return p.transport.Shutdown(ctx)
}

// OpenConnections reports the number of connected subscribers.
func (p *Publisher) OpenConnections() int {
	return p.transport.OpenConnections()
}

// Publish encodes a Publication envelope for topic and broadcasts it to
// every connected peer. onStatus, if non-nil, is invoked once with nil on
// full success or otherwise with the same error Publish returns; for a
// stream or udp broadcast that is one combined error of every failed peer
// write.
func (p *Publisher) Publish(topic string, payload []byte, onStatus StatusCallback) error {
	env := envelope.Envelope{Kind: envelope.KindPublication, Topic: topic, Payload: payload}

	body, err := envelope.Encode(env)
	if err != nil {
		if onStatus != nil {
			onStatus(err)
		}
		return err
	}

	wire, err := frame.Encode(body)
	if err != nil {
		if onStatus != nil {
			onStatus(err)
		}
		return err
	}

	err = p.transport.Send(socket.ReplyTarget{}, wire)
	if onStatus != nil {
		onStatus(err)
	}
	return err
}

func (p *Publisher) updateConn(state socket.ConnState, _ net.Conn) {
	if p.log != nil {
		p.log.Debug(state.String())
	}
}

// handle runs once per subscriber connection. A Publisher only ever
// broadcasts — it does not expect inbound traffic beyond an optional
// SubscribeControl, so any frame received here that is not SubscribeControl
// is logged and dropped; the connection is otherwise drained until closed.
func (p *Publisher) handle(c socket.Context) {
	var reassembly []byte
	chunk := make([]byte, socket.DefaultBufferSize)

	for {
		n, readErr := c.Read(chunk)
		if n > 0 {
			frames, rest, ferr := frame.Feed(reassembly, chunk[:n])
			reassembly = rest
			if ferr != nil && p.log != nil {
				p.log.Warning("dropping invalid frame: %v", ferr)
			}

			for _, payload := range frames {
				env, derr := envelope.Decode(payload)
				if derr != nil {
					if p.log != nil {
						p.log.Warning("dropping undecodable envelope: %v", derr)
					}
					continue
				}

				if env.Kind != envelope.KindSubscribeControl && p.log != nil {
					p.log.Warning("unexpected envelope kind %s on publisher connection", env.Kind)
				}
			}
		}

		if readErr != nil {
			if socket.ErrorFilter(readErr) != nil && p.log != nil {
				p.log.Error(readErr, "connection read failed")
			}
			return
		}
	}
}
