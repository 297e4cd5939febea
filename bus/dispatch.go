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

package bus

import (
	"github.com/adam-ikari/uvrpc-sub001/envelope"
	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

func (b *bs) DispatchRequest(env envelope.Envelope, reply ReplySink) {
	b.cnt.framesRouted.Add(1)

	cb, ok := b.handlers.Load(env.Method)
	if !ok {
		b.cnt.handlerMisses.Add(1)
		b.logf("no handler registered for method %q", env.Method)
		_ = reply.SendResponse(libstt.MethodNotFound, nil)
		return
	}

	b.cnt.handlerHits.Add(1)
	cb(env.Method, env.Payload, reply)
}

func (b *bs) DispatchResponse(env envelope.Envelope) {
	b.cnt.framesRouted.Add(1)

	if err := b.SettlePending(env.MsgId, env.Status, env.Payload); err != nil {
		b.logf("response for unknown msgid %d dropped", env.MsgId)
	}
}

func (b *bs) DispatchPublication(topic string, payload []byte) {
	b.cnt.framesRouted.Add(1)

	for _, sub := range b.matching(topic) {
		b.cnt.publicationsDispatched.Add(1)
		if sub.cb != nil {
			sub.cb(topic, payload)
		}
	}
}
