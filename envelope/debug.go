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

import "github.com/fxamacker/cbor/v2"

// debugEnvelope mirrors Envelope's fields for log/tooling inspection only —
// it is never what rides the wire, that stays the fixed binary layout in
// codec.go.
type debugEnvelope struct {
	Kind    string
	Method  string `cbor:",omitempty"`
	Topic   string `cbor:",omitempty"`
	MsgId   uint64
	Status  int32
	Payload []byte
}

// DumpCBOR renders e as CBOR for log inspection or tooling — a human/tool
// readable stand-in for the fixed binary wire format, never sent over a
// Transport.
func DumpCBOR(e Envelope) ([]byte, error) {
	return cbor.Marshal(debugEnvelope{
		Kind:    e.Kind.String(),
		Method:  e.Method,
		Topic:   e.Topic,
		MsgId:   e.MsgId,
		Status:  int32(e.Status),
		Payload: e.Payload,
	})
}
