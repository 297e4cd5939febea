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

// Package envelope encodes and decodes the structured record that rides
// inside one frame: kind, method/topic, msgid, status, and payload. The
// wire encoding is the normative one from spec §6 — one byte of kind, one
// length-prefixed name, a fixed 8-byte msgid, a fixed 4-byte status, then
// payload to end of frame.
package envelope

import (
	"fmt"

	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

// Kind discriminates the four envelope shapes carried on the wire.
type Kind uint8

const (
	// KindRequest carries a method name, a fresh msgid, and a request payload.
	KindRequest Kind = iota + 1
	// KindResponse carries the msgid it answers, a status, and a reply payload.
	KindResponse
	// KindPublication carries a topic and a published payload; msgid is unused.
	KindPublication
	// KindSubscribeControl carries a topic used to (un)subscribe upstream.
	KindSubscribeControl
)

// String names the kind, or "Unknown" for a value outside the four above.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "Request"
	case KindResponse:
		return "Response"
	case KindPublication:
		return "Publication"
	case KindSubscribeControl:
		return "SubscribeControl"
	}
	return "Unknown"
}

// MaxNameLen is the largest encodable method/topic name: the wire format
// reserves one byte for its length.
const MaxNameLen = 255

// Envelope is the structured record decoded out of one frame's payload.
// Method is populated for Request/Response, Topic for Publication/
// SubscribeControl — the wire format has a single name slot shared by both,
// disambiguated by Kind.
type Envelope struct {
	Kind    Kind
	Method  string
	Topic   string
	MsgId   uint64
	Status  libstt.Code
	Payload []byte
}

// name returns whichever of Method/Topic applies to e.Kind.
func (e Envelope) name() string {
	switch e.Kind {
	case KindPublication, KindSubscribeControl:
		return e.Topic
	default:
		return e.Method
	}
}

// Error codes reserved for this package.
const (
	ErrNameTooLong liberr.CodeError = iota + liberr.MinPkgEnvelope // method/topic longer than MaxNameLen
	ErrDecode                                                      // malformed envelope bytes
	ErrUnknownKind                                                  // kind byte outside the four defined values
)

func init() {
	if liberr.ExistInMapMessage(ErrNameTooLong) {
		panic(fmt.Errorf("error code collision with package envelope"))
	}
	liberr.RegisterIdFctMessage(ErrNameTooLong, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrNameTooLong:
		return "method or topic name exceeds 255 bytes"
	case ErrDecode:
		return "envelope bytes are malformed"
	case ErrUnknownKind:
		return "envelope kind byte is not one of the defined values"
	}
	return liberr.NullMessage
}

// Encode serializes e to its wire form. See Decode for the inverse.
func Encode(e Envelope) ([]byte, error) {
	return encode(e)
}

// Decode parses b (one frame's payload) into an Envelope. It is the exact
// inverse of Encode: Decode(Encode(e)) == e for every valid e.
func Decode(b []byte) (Envelope, error) {
	return decode(b)
}
