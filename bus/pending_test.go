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

package bus_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adam-ikari/uvrpc-sub001/bus"
	"github.com/adam-ikari/uvrpc-sub001/envelope"
	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

var _ = Describe("Pending-call table", func() {
	var b bus.Bus

	BeforeEach(func() {
		b = bus.New(nil)
	})

	It("settles a registered call exactly once", func() {
		var gotStatus libstt.Code
		var gotPayload []byte
		calls := 0

		Expect(b.RegisterPending(1, func(status libstt.Code, payload []byte) {
			calls++
			gotStatus = status
			gotPayload = payload
		}, nil)).To(Succeed())

		b.DispatchResponse(envelope.Envelope{Kind: envelope.KindResponse, MsgId: 1, Status: libstt.Ok, Payload: []byte("ok")})

		Expect(calls).To(Equal(1))
		Expect(gotStatus).To(Equal(libstt.Ok))
		Expect(gotPayload).To(Equal([]byte("ok")))

		Expect(b.CancelPending(1)).To(HaveOccurred())
	})

	It("rejects registering the same msgid twice", func() {
		cb := func(libstt.Code, []byte) {}
		Expect(b.RegisterPending(1, cb, nil)).To(Succeed())
		Expect(b.RegisterPending(1, cb, nil)).To(HaveOccurred())
	})

	It("counts a response for an unknown msgid as stale and does not panic", func() {
		before := b.GetStats().ResponsesStale
		b.DispatchResponse(envelope.Envelope{Kind: envelope.KindResponse, MsgId: 999})
		Expect(b.GetStats().ResponsesStale).To(Equal(before + 1))
	})

	It("cancels a pending call without invoking its callback", func() {
		called := false
		Expect(b.RegisterPending(2, func(libstt.Code, []byte) { called = true }, nil)).To(Succeed())
		Expect(b.CancelPending(2)).To(Succeed())
		b.DispatchResponse(envelope.Envelope{Kind: envelope.KindResponse, MsgId: 2})
		Expect(called).To(BeFalse())
	})

	It("expires a pending call past its deadline with Timeout", func() {
		var gotStatus libstt.Code
		deadline := time.Now().Add(-time.Second)
		Expect(b.RegisterPending(3, func(status libstt.Code, _ []byte) { gotStatus = status }, &deadline)).To(Succeed())

		b.ExpirePending(time.Now())

		Expect(gotStatus).To(Equal(libstt.Timeout))
		Expect(b.CancelPending(3)).To(HaveOccurred())
	})

	It("leaves calls with a future deadline untouched by ExpirePending", func() {
		called := false
		future := time.Now().Add(time.Hour)
		Expect(b.RegisterPending(4, func(libstt.Code, []byte) { called = true }, &future)).To(Succeed())

		b.ExpirePending(time.Now())

		Expect(called).To(BeFalse())
		Expect(b.CancelPending(4)).To(Succeed())
	})

	It("drains every pending call with Cancelled", func() {
		var statuses []libstt.Code
		Expect(b.RegisterPending(5, func(status libstt.Code, _ []byte) { statuses = append(statuses, status) }, nil)).To(Succeed())
		Expect(b.RegisterPending(6, func(status libstt.Code, _ []byte) { statuses = append(statuses, status) }, nil)).To(Succeed())

		b.DrainPending()

		Expect(statuses).To(ConsistOf(libstt.Cancelled, libstt.Cancelled))
		Expect(b.CancelPending(5)).To(HaveOccurred())
		Expect(b.CancelPending(6)).To(HaveOccurred())
	})
})
