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
	"sync"

	"github.com/google/uuid"

	"github.com/adam-ikari/uvrpc-sub001/socket"
)

// inprocServer is the spec's process-global registry flavor (§4.2, INPROC):
// Connect atomically registers a fresh pipe under this server's address,
// and both sides run their HandlerFunc against their end of it. There is no
// accept loop and no net.Conn; send/send_to enqueue straight into a
// channel.
type inprocServer struct {
	name    string
	handler socket.HandlerFunc
	update  socket.UpdateConn

	mu      sync.Mutex
	pipes   map[string]*socket.InprocPipe
	running bool
}

// NewInproc publishes name in the process-wide inproc registry. Every
// client that dials name gets a fresh pipe; this server spawns one handler
// goroutine per pipe, reading ToServer and writing ToClient.
func NewInproc(name string, update socket.UpdateConn, handler socket.HandlerFunc) (socket.Server, error) {
	return &inprocServer{
		name:    name,
		handler: handler,
		update:  update,
		pipes:   make(map[string]*socket.InprocPipe),
	}, nil
}

func (s *inprocServer) dial() *socket.InprocPipe {
	pipe := socket.NewInprocPipe(64)
	id := uuid.NewString()

	s.mu.Lock()
	s.pipes[id] = pipe
	s.mu.Unlock()

	if s.update != nil {
		s.update(socket.ConnectionNew, nil)
	}

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.pipes, id)
			s.mu.Unlock()
		}()
		s.handler(&inprocContext{id: id, recv: pipe.ToServer, send: pipe.ToClient})
	}()

	return pipe
}

func (s *inprocServer) Listen(ctx context.Context) error {
	socket.InprocRegister(s.name, s.dial)

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	<-ctx.Done()
	return s.Shutdown(context.Background())
}

func (s *inprocServer) Shutdown(_ context.Context) error {
	socket.InprocUnregister(s.name)

	s.mu.Lock()
	s.running = false
	for id, p := range s.pipes {
		close(p.ToClient)
		delete(s.pipes, id)
	}
	s.mu.Unlock()
	return nil
}

func (s *inprocServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *inprocServer) OpenConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pipes)
}

func (s *inprocServer) Send(target socket.ReplyTarget, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, isStream := target.ConnID(); isStream && id != "" {
		p, ok := s.pipes[id]
		if !ok {
			return socket.ErrInvalidConn.Error()
		}
		p.ToClient <- append([]byte(nil), payload...)
		return nil
	}

	for _, p := range s.pipes {
		p.ToClient <- append([]byte(nil), payload...)
	}
	return nil
}

// inprocContext is the Context a server-side handler sees for one inproc
// connection.
type inprocContext struct {
	id   string
	recv <-chan []byte
	send chan<- []byte
}

func (c *inprocContext) Read(buf []byte) (int, error) {
	b, ok := <-c.recv
	if !ok {
		return 0, context.Canceled
	}
	return copy(buf, b), nil
}

func (c *inprocContext) Write(buf []byte) (int, error) {
	c.send <- append([]byte(nil), buf...)
	return len(buf), nil
}

func (c *inprocContext) Close() error { return nil }
