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

// Package client builds a socket.Client for one of the four transport
// flavors from a socket/config.Client (tcp/udp/unix), or an inproc logical
// name (NewInproc).
package client

import (
	"errors"

	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
	libptc "github.com/adam-ikari/uvrpc-sub001/network/protocol"
	"github.com/adam-ikari/uvrpc-sub001/socket"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
)

// New builds the Client flavor named by cfg.Network. updateConn may be nil.
func New(cfg config.Client, updateConn socket.UpdateConn) (socket.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Network {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		return newStreamClient(cfg.Network.String(), cfg.Address, updateConn), nil
	case libptc.NetworkUnix:
		return newStreamClient("unix", cfg.Address, updateConn), nil
	case libptc.NetworkUDP, libptc.NetworkUDP4, libptc.NetworkUDP6:
		return newDatagramClient(cfg.Network.String(), cfg.Address, updateConn), nil
	default:
		return nil, config.ErrInvalidProtocol.Error()
	}
}

// ErrConnection is returned by Read/Write when called before Connect, or
// after the connection has failed or closed.
const ErrConnection liberr.CodeError = iota + liberr.MinPkgSocket + 100

func init() {
	if liberr.ExistInMapMessage(ErrConnection) {
		panic(errors.New("error code collision with package socket/client"))
	}
	liberr.RegisterIdFctMessage(ErrConnection, getMessage)
}

func getMessage(code liberr.CodeError) string {
	if code == ErrConnection {
		return "client is not connected"
	}
	return liberr.NullMessage
}
