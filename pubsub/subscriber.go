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
	"sync"

	"github.com/adam-ikari/uvrpc-sub001/bus"
	"github.com/adam-ikari/uvrpc-sub001/envelope"
	"github.com/adam-ikari/uvrpc-sub001/frame"
	liblog "github.com/adam-ikari/uvrpc-sub001/logger"
	"github.com/adam-ikari/uvrpc-sub001/socket"
	"github.com/adam-ikari/uvrpc-sub001/socket/client"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
)

// Subscriber is the connect-role half of a pub/sub session: one Transport in
// connect role and a Bus holding the local subscription table. Received
// Publication envelopes are handed to Bus.DispatchPublication; every other
// kind is logged and dropped.
type Subscriber struct {
	transport socket.Client
	bus       bus.Bus
	log       liblog.Logger

	mu        sync.Mutex
	connected bool
	stop      chan struct{}
	stopOnce  *sync.Once
}

// NewSubscriber builds the connect-role Transport named by cfg and binds it
// to b. log may be nil.
func NewSubscriber(cfg config.Client, b bus.Bus, log liblog.Logger) (*Subscriber, error) {
	s := &Subscriber{bus: b, log: log}

	transport, err := client.New(cfg, s.updateConn)
	if err != nil {
		return nil, err
	}
	s.transport = transport
	return s, nil
}

// NewInprocSubscriber builds the INPROC-flavor connect-role Transport
// dialing name.
func NewInprocSubscriber(name string, b bus.Bus, log liblog.Logger) *Subscriber {
	s := &Subscriber{bus: b, log: log}
	s.transport = client.NewInproc(name, s.updateConn)
	return s
}

func (s *Subscriber) updateConn(state socket.ConnState, _ net.Conn) {
	if s.log != nil {
		s.log.Debug(state.String())
	}
}

// Connect dials the configured publisher, then starts the read loop that
// feeds received Publications into the Bus.
func (s *Subscriber) Connect(ctx context.Context) error {
	if err := s.transport.Connect(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.connected = true
	s.stop = make(chan struct{})
	s.stopOnce = &sync.Once{}
	stop := s.stop
	s.mu.Unlock()

	go s.readLoop(stop)
	return nil
}

// IsConnected reports whether the underlying transport is live.
func (s *Subscriber) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Subscribe adds a local subscription for pattern and, best-effort, notifies
// the publisher upstream with a SubscribeControl envelope so transports that
// support server-side filtering can narrow what they broadcast. Transports
// without that support simply ignore the control frame; matching still
// happens locally via Bus.DispatchPublication either way.
func (s *Subscriber) Subscribe(pattern string, cb bus.SubscribeCallback, filter bus.FilterFunc) string {
	id := s.bus.Subscribe(pattern, cb, filter)
	_ = s.sendControl(pattern)
	return id
}

// Unsubscribe removes a previously-added local subscription.
func (s *Subscriber) Unsubscribe(id string) {
	s.bus.Unsubscribe(id)
}

func (s *Subscriber) sendControl(topic string) error {
	if !s.IsConnected() {
		return nil
	}

	env := envelope.Envelope{Kind: envelope.KindSubscribeControl, Topic: topic}
	body, err := envelope.Encode(env)
	if err != nil {
		return err
	}

	wire, err := frame.Encode(body)
	if err != nil {
		return err
	}

	_, err = s.transport.Write(wire)
	return err
}

// Disconnect stops the read loop and closes the transport. Local
// subscriptions are left intact — pub/sub has no pending-call table to
// drain, unlike rpc.Client.Disconnect.
func (s *Subscriber) Disconnect() error {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return nil
	}
	s.connected = false
	s.mu.Unlock()

	s.stopLoop()
	return s.transport.Close()
}

func (s *Subscriber) stopLoop() {
	s.mu.Lock()
	once := s.stopOnce
	stop := s.stop
	s.mu.Unlock()

	if once == nil {
		return
	}
	once.Do(func() { close(stop) })
}

func (s *Subscriber) readLoop(stop chan struct{}) {
	var reassembly []byte
	chunk := make([]byte, socket.DefaultBufferSize)

	for {
		select {
		case <-stop:
			return
		default:
		}

		n, readErr := s.transport.Read(chunk)
		if n > 0 {
			frames, rest, ferr := frame.Feed(reassembly, chunk[:n])
			reassembly = rest
			if ferr != nil && s.log != nil {
				s.log.Warning("dropping invalid frame: %v", ferr)
			}

			for _, payload := range frames {
				env, derr := envelope.Decode(payload)
				if derr != nil {
					if s.log != nil {
						s.log.Warning("dropping undecodable envelope: %v", derr)
					}
					continue
				}

				if env.Kind != envelope.KindPublication {
					if s.log != nil {
						s.log.Warning("unexpected envelope kind %s on subscriber connection", env.Kind)
					}
					continue
				}

				s.bus.DispatchPublication(env.Topic, env.Payload)
			}
		}

		if readErr != nil {
			s.mu.Lock()
			s.connected = false
			s.mu.Unlock()
			s.stopLoop()
			return
		}
	}
}
