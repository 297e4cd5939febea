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

package server

import (
	"context"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"

	libepl "github.com/adam-ikari/uvrpc-sub001/errors/pool"
	libprm "github.com/adam-ikari/uvrpc-sub001/file/perm"
	"github.com/adam-ikari/uvrpc-sub001/socket"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
)

// streamServer backs both tcp and unix flavors: both are accept-loop,
// net.Conn-based transports differing only in the net.Listen network name
// and (for unix) the socket file's mode/group after bind.
type streamServer struct {
	network string
	address string
	update  socket.UpdateConn
	handler socket.HandlerFunc

	mu   sync.Mutex
	ln   net.Listener
	conn map[string]net.Conn

	running   bool
	permFile  libprm.Perm
	groupPerm int32
}

func newStreamServer(network, address string, update socket.UpdateConn, handler socket.HandlerFunc) (socket.Server, error) {
	return &streamServer{network: network, address: address, update: update, handler: handler, conn: make(map[string]net.Conn)}, nil
}

func newUnixServer(cfg config.Server, update socket.UpdateConn, handler socket.HandlerFunc) (socket.Server, error) {
	s := &streamServer{network: "unix", address: cfg.Address, update: update, handler: handler, conn: make(map[string]net.Conn)}
	s.permFile = cfg.PermFile
	s.groupPerm = cfg.GroupPerm
	return s, nil
}

func (s *streamServer) notify(state socket.ConnState, c net.Conn) {
	if s.update != nil {
		s.update(state, c)
	}
}

func (s *streamServer) Listen(ctx context.Context) error {
	if s.network == "unix" {
		_ = os.Remove(s.address)
	}

	ln, err := net.Listen(s.network, s.address)
	if err != nil {
		return err
	}

	if s.network == "unix" && s.permFile != 0 {
		_ = os.Chmod(s.address, s.permFile.FileMode())
	}

	s.mu.Lock()
	s.ln = ln
	s.running = true
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()

	for {
		c, err := ln.Accept()
		if err != nil {
			if socket.ErrorFilter(err) == nil {
				return nil
			}
			return err
		}
		s.notify(socket.ConnectionNew, c)
		go s.serve(c)
	}
}

func (s *streamServer) serve(c net.Conn) {
	id := uuid.NewString()

	s.mu.Lock()
	s.conn[id] = c
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conn, id)
		s.mu.Unlock()
		s.notify(socket.ConnectionClose, c)
		_ = c.Close()
	}()

	s.notify(socket.ConnectionHandler, c)
	s.handler(&streamContext{Conn: c, id: id, srv: s})
}

func (s *streamServer) Shutdown(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false

	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}
	for id, c := range s.conn {
		_ = c.Close()
		delete(s.conn, id)
	}
	return err
}

func (s *streamServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *streamServer) OpenConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conn)
}

func (s *streamServer) Send(target socket.ReplyTarget, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, isStream := target.ConnID(); isStream && id != "" {
		c, ok := s.conn[id]
		if !ok {
			return socket.ErrInvalidConn.Error()
		}
		_, err := c.Write(payload)
		return err
	}

	// broadcast: no specific connection id named. Collect every peer's
	// write failure instead of reporting only the first, so a caller
	// logging the combined error sees the full fan-out fallout.
	p := libepl.New()
	for _, c := range s.conn {
		if _, err := c.Write(payload); err != nil {
			p.Add(err)
		}
	}
	return p.Error()
}

// streamContext adapts one accepted net.Conn to socket.Context, reporting
// ConnState transitions for its Close call.
type streamContext struct {
	net.Conn
	id  string
	srv *streamServer
}

func (c *streamContext) Close() error {
	c.srv.notify(socket.ConnectionCloseWrite, c.Conn)
	return c.Conn.Close()
}
