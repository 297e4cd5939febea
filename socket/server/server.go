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

// Package server builds a socket.Server for one of the four transport
// flavors from a socket/config.Server (tcp/udp/unix) or an inproc logical
// name (NewInproc). Every flavor shares the same accept-loop/bookkeeping
// shape; what differs is how a "connection" is opened and addressed.
package server

import (
	libptc "github.com/adam-ikari/uvrpc-sub001/network/protocol"
	"github.com/adam-ikari/uvrpc-sub001/socket"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
)

// New builds the Server flavor named by cfg.Network. updateConn may be nil;
// when set, it is called for every ConnState transition of every
// connection this server accepts.
func New(updateConn socket.UpdateConn, handler socket.HandlerFunc, cfg config.Server) (socket.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Network {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		return newStreamServer(cfg.Network.String(), cfg.Address, updateConn, handler)
	case libptc.NetworkUnix:
		return newUnixServer(cfg, updateConn, handler)
	case libptc.NetworkUDP, libptc.NetworkUDP4, libptc.NetworkUDP6:
		return newDatagramServer(cfg.Network.String(), cfg.Address, updateConn, handler)
	default:
		return nil, config.ErrInvalidProtocol.Error()
	}
}
