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

package envelope_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adam-ikari/uvrpc-sub001/envelope"
	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

var _ = Describe("Encode/Decode", func() {
	It("round-trips a Request envelope", func() {
		e := envelope.Envelope{
			Kind:    envelope.KindRequest,
			Method:  "echo",
			MsgId:   42,
			Payload: []byte("hello"),
		}

		b, err := envelope.Encode(e)
		Expect(err).ToNot(HaveOccurred())

		got, err := envelope.Decode(b)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(e))
	})

	It("round-trips a Response envelope with a non-zero status", func() {
		e := envelope.Envelope{
			Kind:    envelope.KindResponse,
			Method:  "echo",
			MsgId:   42,
			Status:  libstt.MethodNotFound,
			Payload: nil,
		}

		b, err := envelope.Encode(e)
		Expect(err).ToNot(HaveOccurred())

		got, err := envelope.Decode(b)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(e))
	})

	It("round-trips a Publication envelope", func() {
		e := envelope.Envelope{
			Kind:    envelope.KindPublication,
			Topic:   "news",
			Payload: []byte("breaking"),
		}

		b, err := envelope.Encode(e)
		Expect(err).ToNot(HaveOccurred())

		got, err := envelope.Decode(b)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(e))
	})

	It("round-trips a SubscribeControl envelope", func() {
		e := envelope.Envelope{
			Kind:  envelope.KindSubscribeControl,
			Topic: "news",
		}

		b, err := envelope.Encode(e)
		Expect(err).ToNot(HaveOccurred())

		got, err := envelope.Decode(b)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(e))
	})

	It("rejects a method name longer than 255 bytes", func() {
		e := envelope.Envelope{
			Kind:   envelope.KindRequest,
			Method: strings.Repeat("m", 256),
		}

		_, err := envelope.Encode(e)
		Expect(err).To(HaveOccurred())
	})

	It("rejects decoding bytes too short to hold a header", func() {
		_, err := envelope.Decode([]byte{1})
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unknown kind byte", func() {
		b := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		_, err := envelope.Decode(b)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a name_len claiming more bytes than are present", func() {
		b := []byte{byte(envelope.KindRequest), 10, 'a'}
		_, err := envelope.Decode(b)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Kind", func() {
	It("names every defined kind", func() {
		Expect(envelope.KindRequest.String()).To(Equal("Request"))
		Expect(envelope.KindResponse.String()).To(Equal("Response"))
		Expect(envelope.KindPublication.String()).To(Equal("Publication"))
		Expect(envelope.KindSubscribeControl.String()).To(Equal("SubscribeControl"))
		Expect(envelope.Kind(0).String()).To(Equal("Unknown"))
	})
})
