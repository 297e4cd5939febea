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

// Package rpc composes one socket.Server or socket.Client with a bus.Bus
// into the request-response session from spec §4.5: decode frames off the
// wire into envelope.Envelope, route Requests/Responses through the Bus,
// and encode the Bus's replies back onto the wire.
package rpc

import (
	"errors"

	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
)

// Error codes reserved for this package.
const (
	// ErrUnexpectedKind names the case of a peer sending an envelope kind
	// the receiving role does not expect on this connection (a Response
	// arriving at a Server, or anything but a Response arriving at a Client).
	// It is registered but never returned; the read loops log such envelopes
	// as a plain warning.
	ErrUnexpectedKind liberr.CodeError = iota + liberr.MinPkgRPC
)

func init() {
	if liberr.ExistInMapMessage(ErrUnexpectedKind) {
		panic(errors.New("error code collision with package rpc"))
	}
	liberr.RegisterIdFctMessage(ErrUnexpectedKind, getMessage)
}

func getMessage(code liberr.CodeError) string {
	if code == ErrUnexpectedKind {
		return "envelope kind is not valid for this peer's role"
	}
	return liberr.NullMessage
}
