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

package envelope

import (
	"encoding/binary"

	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

// headerLen is kind(1) + name_len(1) + msgid(8) + status(4).
const headerLen = 1 + 1 + 8 + 4

func encode(e Envelope) ([]byte, error) {
	name := e.name()
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong.Error()
	}

	out := make([]byte, headerLen+len(name)+len(e.Payload))

	out[0] = byte(e.Kind)
	out[1] = byte(len(name))
	copy(out[2:2+len(name)], name)

	off := 2 + len(name)
	binary.BigEndian.PutUint64(out[off:off+8], e.MsgId)
	off += 8
	binary.BigEndian.PutUint32(out[off:off+4], uint32(e.Status))
	off += 4

	copy(out[off:], e.Payload)

	return out, nil
}

func decode(b []byte) (Envelope, error) {
	if len(b) < 2 {
		return Envelope{}, ErrDecode.Error()
	}

	kind := Kind(b[0])
	nameLen := int(b[1])

	off := 2
	if len(b) < off+nameLen+8+4 {
		return Envelope{}, ErrDecode.Error()
	}

	name := string(b[off : off+nameLen])
	off += nameLen

	msgid := binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	status := int32(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4

	var payload []byte
	if off < len(b) {
		payload = b[off:]
	}

	e := Envelope{
		Kind:    kind,
		MsgId:   msgid,
		Status:  libstt.Code(status),
		Payload: payload,
	}

	switch kind {
	case KindPublication, KindSubscribeControl:
		e.Topic = name
	case KindRequest, KindResponse:
		e.Method = name
	default:
		return Envelope{}, ErrUnknownKind.Error()
	}

	return e, nil
}
