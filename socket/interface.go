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

// Package socket is the raw byte-stream transport underneath a frame Feed
// loop: one Context per connection, one HandlerFunc run per accepted
// connection (clients take no HandlerFunc; callers use their Read/Write),
// and a ConnState trace of that connection's lifecycle.
// It carries no knowledge of frames, envelopes, or the bus — those live one
// layer up, in rpc and pubsub.
package socket

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"

	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
)

// DefaultBufferSize is the read buffer size a Server/Client uses when its
// config does not override it.
const DefaultBufferSize = 32 * 1024

// EOL is the newline byte. No flavor in this package splits reads on it;
// message boundaries come from the frame codec one layer up.
const EOL = '\n'

// Context is the per-connection handle passed to a HandlerFunc. Read/Write
// operate on the raw byte stream (or the current datagram, for UDP);
// Close tears the connection down.
type Context interface {
	io.Reader
	io.Writer
	io.Closer
}

// HandlerFunc processes one connection end to end. A Server runs it once
// per accepted connection; a Client does not use one.
type HandlerFunc func(c Context)

// ConnState traces where a connection is in its lifecycle, reported through
// an optional update callback so a caller can log or meter it.
type ConnState uint8

const (
	ConnectionDial ConnState = iota
	ConnectionNew
	ConnectionRead
	ConnectionCloseRead
	ConnectionHandler
	ConnectionWrite
	ConnectionCloseWrite
	ConnectionClose
)

// String names the state, or "unknown connection state" outside the
// defined range.
func (c ConnState) String() string {
	switch c {
	case ConnectionDial:
		return "Dial Connection"
	case ConnectionNew:
		return "New Connection"
	case ConnectionRead:
		return "Read Incoming Stream"
	case ConnectionCloseRead:
		return "Close Incoming Stream"
	case ConnectionHandler:
		return "Run HandlerFunc"
	case ConnectionWrite:
		return "Write Outgoing Steam"
	case ConnectionCloseWrite:
		return "Close Outgoing Stream"
	case ConnectionClose:
		return "Close Connection"
	}
	return "unknown connection state"
}

// UpdateConn is notified of every ConnState transition for conn, nil when
// the transition is not yet associated with a live net.Conn (e.g. Dial).
type UpdateConn func(state ConnState, conn net.Conn)

// ErrorFilter silences the noisy, expected errors a server/client sees on
// ordinary teardown (closed connections, use-after-close) so callers can
// log genuine failures without matching error strings themselves.
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
		return nil
	}
	if strings.Contains(err.Error(), "use of closed network connection") {
		return nil
	}
	return err
}

// ReplyTarget addresses where a response or publication must be sent back
// to. A connection-oriented transport (tcp, ipc, inproc) replies on the
// originating Stream; a connectionless one (udp) replies to the peer's
// Datagram address, since there is no persistent connection to reuse.
type ReplyTarget struct {
	connID string
	addr   net.Addr
}

// Stream builds a ReplyTarget bound to a connection id, used by stream
// transports where one Context serves every request from that peer.
func Stream(connID string) ReplyTarget {
	return ReplyTarget{connID: connID}
}

// Datagram builds a ReplyTarget bound to a peer address, used by udp where
// each inbound packet may originate from a different ephemeral port.
func Datagram(addr net.Addr) ReplyTarget {
	return ReplyTarget{addr: addr}
}

// ConnID returns the target's connection id and whether it is a Stream target.
func (r ReplyTarget) ConnID() (string, bool) {
	return r.connID, r.addr == nil
}

// Addr returns the target's peer address and whether it is a Datagram target.
func (r ReplyTarget) Addr() (net.Addr, bool) {
	return r.addr, r.addr != nil
}

// Server is a listening endpoint that accepts connections and runs a
// HandlerFunc once per connection (once per datagram peer, for UDP).
type Server interface {
	// Listen starts accepting and blocks until ctx is cancelled or Shutdown
	// is called. The inproc flavor returns only once ctx is cancelled; its
	// Shutdown tears connections down but does not end Listen.
	Listen(ctx context.Context) error
	// Shutdown stops accepting new connections and closes every live one.
	Shutdown(ctx context.Context) error
	// IsRunning reports whether Listen is currently accepting.
	IsRunning() bool
	// OpenConnections reports the number of live connections.
	OpenConnections() int
	// Send writes payload to the connection or peer addressed by target.
	Send(target ReplyTarget, payload []byte) error
}

// Client is a dialed endpoint; its caller reads and writes the connection
// directly.
type Client interface {
	// Connect dials the configured address.
	Connect(ctx context.Context) error
	// IsConnected reports whether the underlying connection is live.
	IsConnected() bool
	// Write sends payload on the connection.
	Write(payload []byte) (int, error)
	// Read reads the next chunk of bytes from the connection.
	Read(buf []byte) (int, error)
	// Close tears the connection down.
	Close() error
}

// Error codes reserved for this package.
const (
	ErrInvalidConn liberr.CodeError = iota + liberr.MinPkgSocket // operation attempted on a nil/closed connection
	ErrNotRunning                                                 // registered; no flavor returns it
)

func init() {
	if liberr.ExistInMapMessage(ErrInvalidConn) {
		panic(errInitCollision())
	}
	liberr.RegisterIdFctMessage(ErrInvalidConn, getMessage)
}

func errInitCollision() error {
	return errors.New("error code collision with package socket")
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrInvalidConn:
		return "operation attempted on a nil or closed connection"
	case ErrNotRunning:
		return "server is not currently listening"
	case ErrInprocNotFound:
		return "no server is currently registered under this inproc address"
	}
	return liberr.NullMessage
}
