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

	"github.com/adam-ikari/uvrpc-sub001/bus"
	"github.com/adam-ikari/uvrpc-sub001/envelope"
	"github.com/adam-ikari/uvrpc-sub001/frame"
	liblog "github.com/adam-ikari/uvrpc-sub001/logger"
	"github.com/adam-ikari/uvrpc-sub001/socket"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
	"github.com/adam-ikari/uvrpc-sub001/socket/server"
	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

// Server is the listen-role half of an RPC session: one Transport (owned,
// not shared) and one Bus. Every accepted connection gets its own frame
// reassembly buffer; decoded Request envelopes are handed to Bus along with
// a replySink bound to that connection and msgid.
type Server struct {
	transport socket.Server
	bus       bus.Bus
	log       liblog.Logger
}

// NewServer builds the listen-role Transport named by cfg and binds it to
// b. log may be nil.
func NewServer(cfg config.Server, b bus.Bus, log liblog.Logger) (*Server, error) {
	s := &Server{bus: b, log: log}

	transport, err := server.New(s.updateConn, s.handle, cfg)
	if err != nil {
		return nil, err
	}
	s.transport = transport
	return s, nil
}

// NewInprocServer builds the INPROC-flavor listen-role Transport under
// name, bypassing socket/config since INPROC addresses are not a
// network.protocol value.
func NewInprocServer(name string, b bus.Bus, log liblog.Logger) (*Server, error) {
	s := &Server{bus: b, log: log}

	transport, err := server.NewInproc(name, s.updateConn, s.handle)
	if err != nil {
		return nil, err
	}
	s.transport = transport
	return s, nil
}

// Listen starts accepting connections; it blocks until ctx is cancelled or
// Shutdown is called from another goroutine. On the inproc flavor only
// ctx cancellation ends it.
func (s *Server) Listen(ctx context.Context) error {
	return s.transport.Listen(ctx)
}

// Shutdown stops accepting and closes every live connection.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.transport.Shutdown(ctx)
}

// OpenConnections reports the number of live connections.
func (s *Server) OpenConnections() int {
	return s.transport.OpenConnections()
}

func (s *Server) updateConn(state socket.ConnState, conn net.Conn) {
	if s.log == nil {
		return
	}
	s.log.Debug(state.String())
}

// handle runs once per accepted connection: read, reassemble frames, decode
// envelopes, and route Requests into the Bus. A Response or SubscribeControl
// envelope arriving here is logged and dropped — a server never receives
// those kinds per spec §4.5.
func (s *Server) handle(c socket.Context) {
	var reassembly []byte
	chunk := make([]byte, socket.DefaultBufferSize)

	for {
		n, readErr := c.Read(chunk)
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

				if env.Kind != envelope.KindRequest {
					if s.log != nil {
						s.log.Warning("unexpected envelope kind %s on server connection", env.Kind)
					}
					continue
				}

				s.bus.DispatchRequest(env, &replySink{conn: c, msgid: env.MsgId})
			}
		}

		if readErr != nil {
			if socket.ErrorFilter(readErr) != nil && s.log != nil {
				s.log.Error(readErr, "connection read failed")
			}
			return
		}
	}
}

// replySink binds Bus.DispatchRequest's reply callback to the connection the
// request arrived on; Write on that Context is already addressed to the
// originating peer, so no ReplyTarget lookup is needed here.
type replySink struct {
	conn  socket.Context
	msgid uint64
}

func (r *replySink) SendResponse(status libstt.Code, payload []byte) error {
	env := envelope.Envelope{
		Kind:    envelope.KindResponse,
		MsgId:   r.msgid,
		Status:  status,
		Payload: payload,
	}

	body, err := envelope.Encode(env)
	if err != nil {
		return err
	}

	wire, err := frame.Encode(body)
	if err != nil {
		return err
	}

	_, err = r.conn.Write(wire)
	return err
}
