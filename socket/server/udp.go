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
	"sync"

	libepl "github.com/adam-ikari/uvrpc-sub001/errors/pool"
	"github.com/adam-ikari/uvrpc-sub001/socket"
)

// peerStream is the virtual per-peer connection a datagram server presents
// to HandlerFunc: Read delivers datagrams received from that peer, Write
// sends a datagram back to it. There is no real net.Conn underneath.
type peerStream struct {
	addr net.Addr
	pc   net.PacketConn
	in   chan []byte
}

func (p *peerStream) Read(buf []byte) (int, error) {
	b, ok := <-p.in
	if !ok {
		return 0, net.ErrClosed
	}
	return copy(buf, b), nil
}

func (p *peerStream) Write(buf []byte) (int, error) {
	return p.pc.WriteTo(buf, p.addr)
}

func (p *peerStream) Close() error { return nil }

type datagramServer struct {
	network string
	address string
	update  socket.UpdateConn
	handler socket.HandlerFunc

	mu    sync.Mutex
	pc    net.PacketConn
	peers map[string]*peerStream

	running bool
}

func newDatagramServer(network, address string, update socket.UpdateConn, handler socket.HandlerFunc) (socket.Server, error) {
	return &datagramServer{network: network, address: address, update: update, handler: handler, peers: make(map[string]*peerStream)}, nil
}

func (d *datagramServer) Listen(ctx context.Context) error {
	pc, err := net.ListenPacket(d.network, d.address)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.pc = pc
	d.running = true
	d.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = d.Shutdown(context.Background())
	}()

	buf := make([]byte, socket.DefaultBufferSize)
	for {
		n, addr, err := pc.ReadFrom(buf)
		if err != nil {
			if socket.ErrorFilter(err) == nil {
				return nil
			}
			return err
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])

		peer := d.peerFor(addr)
		select {
		case peer.in <- payload:
		default:
			// slow consumer: drop rather than block the recv loop.
		}
	}
}

func (d *datagramServer) peerFor(addr net.Addr) *peerStream {
	key := addr.String()

	d.mu.Lock()
	p, ok := d.peers[key]
	if !ok {
		p = &peerStream{addr: addr, pc: d.pc, in: make(chan []byte, 64)}
		d.peers[key] = p
	}
	d.mu.Unlock()

	if !ok {
		if d.update != nil {
			d.update(socket.ConnectionNew, nil)
		}
		go d.handler(p)
	}
	return p
}

func (d *datagramServer) Shutdown(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.running = false
	for key, p := range d.peers {
		close(p.in)
		delete(d.peers, key)
	}
	if d.pc != nil {
		return d.pc.Close()
	}
	return nil
}

func (d *datagramServer) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *datagramServer) OpenConnections() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.peers)
}

func (d *datagramServer) Send(target socket.ReplyTarget, payload []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if addr, isDatagram := target.Addr(); isDatagram {
		_, err := d.pc.WriteTo(payload, addr)
		return err
	}

	p := libepl.New()
	for _, peer := range d.peers {
		if _, err := d.pc.WriteTo(payload, peer.addr); err != nil {
			p.Add(err)
		}
	}
	return p.Error()
}
