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

// Package frame implements UVRPC's wire framing: a 4-byte big-endian length
// prefix around one opaque envelope. It owns only the byte-counting and
// reassembly logic; the envelope package gives the framed bytes meaning.
package frame

import (
	"fmt"

	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
)

// LengthSize is the width, in bytes, of the big-endian frame length prefix.
const LengthSize = 4

// MaxPayload is the largest envelope a frame may carry (16 MiB), per the
// wire contract in spec §6.
const MaxPayload = 16 * 1024 * 1024

// Error codes reserved for this package, registered with the errors
// hierarchy at init so liberr.Is/liberr.Has work the same way they do for
// every other package in this module.
const (
	ErrPayloadTooLarge liberr.CodeError = iota + liberr.MinPkgFrame // payload exceeds MaxPayload
	ErrFrameInvalid                                                 // length prefix is zero or exceeds MaxPayload
)

func init() {
	if liberr.ExistInMapMessage(ErrPayloadTooLarge) {
		panic(fmt.Errorf("error code collision with package frame"))
	}
	liberr.RegisterIdFctMessage(ErrPayloadTooLarge, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrPayloadTooLarge:
		return "frame payload exceeds the 16 MiB limit"
	case ErrFrameInvalid:
		return "frame length prefix is zero or exceeds the 16 MiB limit"
	}
	return liberr.NullMessage
}

// Encode prepends a 4-byte big-endian length prefix to payload, returning
// the complete frame. It fails with ErrPayloadTooLarge if payload is larger
// than MaxPayload.
func Encode(payload []byte) ([]byte, error) {
	return encode(payload)
}

// Feed appends newBytes to buf (the stream reassembly buffer) and peels off
// every complete frame it can find. It returns the decoded payloads (in
// arrival order) and the bytes remaining in buf after the last complete
// frame — callers pass that remainder back in on the next call.
//
// Each returned payload is a fresh copy taken out of buf (one allocation
// per frame), so it stays valid after buf is reused; the remainder is a
// slice of the unconsumed tail of buf rather than a new buffer.
func Feed(buf []byte, newBytes []byte) (frames [][]byte, rest []byte, err error) {
	return feed(buf, newBytes)
}
