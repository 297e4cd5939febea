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

// Package pubsub composes a socket.Server/socket.Client with a bus.Bus into
// the fan-out session from spec §4.6: a Publisher broadcasts Publication
// envelopes to every connected peer, a Subscriber dispatches received
// Publications into its Bus's subscription table.
package pubsub

import (
	"errors"

	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
)

// StatusCallback reports the overall outcome of one Publish call: nil once
// every peer's write succeeded, or the error Publish returns (for a
// broadcast, one error combining every failed peer write).
type StatusCallback func(err error)

// Error codes reserved for this package.
const (
	// ErrUnexpectedKind names the case of a Subscriber receiving an envelope
	// kind other than Publication on its connection. It is registered but
	// never returned; the read loop logs such envelopes as a plain warning.
	ErrUnexpectedKind liberr.CodeError = iota + liberr.MinPkgPubSub
)

func init() {
	if liberr.ExistInMapMessage(ErrUnexpectedKind) {
		panic(errors.New("error code collision with package pubsub"))
	}
	liberr.RegisterIdFctMessage(ErrUnexpectedKind, getMessage)
}

func getMessage(code liberr.CodeError) string {
	if code == ErrUnexpectedKind {
		return "envelope kind is not valid on a subscriber connection"
	}
	return liberr.NullMessage
}
