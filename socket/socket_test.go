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

package socket_test

import (
	"errors"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libsck "github.com/adam-ikari/uvrpc-sub001/socket"
)

var _ = Describe("ErrorFilter", func() {
	It("passes nil through", func() {
		Expect(libsck.ErrorFilter(nil)).To(BeNil())
	})

	It("silences a closed-connection error", func() {
		Expect(libsck.ErrorFilter(net.ErrClosed)).To(BeNil())
	})

	It("passes genuine errors through unchanged", func() {
		err := errors.New("connection timeout")
		Expect(libsck.ErrorFilter(err)).To(Equal(err))
	})
})

var _ = Describe("ConnState", func() {
	It("names every defined state", func() {
		Expect(libsck.ConnectionDial.String()).To(Equal("Dial Connection"))
		Expect(libsck.ConnectionNew.String()).To(Equal("New Connection"))
		Expect(libsck.ConnectionRead.String()).To(Equal("Read Incoming Stream"))
		Expect(libsck.ConnectionCloseRead.String()).To(Equal("Close Incoming Stream"))
		Expect(libsck.ConnectionHandler.String()).To(Equal("Run HandlerFunc"))
		Expect(libsck.ConnectionWrite.String()).To(Equal("Write Outgoing Steam"))
		Expect(libsck.ConnectionCloseWrite.String()).To(Equal("Close Outgoing Stream"))
		Expect(libsck.ConnectionClose.String()).To(Equal("Close Connection"))
		Expect(libsck.ConnState(255).String()).To(Equal("unknown connection state"))
	})

	It("assigns the documented ordinal values", func() {
		Expect(libsck.ConnectionDial).To(Equal(libsck.ConnState(0)))
		Expect(libsck.ConnectionClose).To(Equal(libsck.ConnState(7)))
	})
})

var _ = Describe("ReplyTarget", func() {
	It("builds a Stream target", func() {
		t := libsck.Stream("conn-1")
		id, isStream := t.ConnID()
		Expect(isStream).To(BeTrue())
		Expect(id).To(Equal("conn-1"))

		_, isDatagram := t.Addr()
		Expect(isDatagram).To(BeFalse())
	})

	It("builds a Datagram target", func() {
		addr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9000}
		t := libsck.Datagram(addr)

		got, isDatagram := t.Addr()
		Expect(isDatagram).To(BeTrue())
		Expect(got).To(Equal(addr))

		_, isStream := t.ConnID()
		Expect(isStream).To(BeFalse())
	})
})

var _ = Describe("constants", func() {
	It("matches the documented defaults", func() {
		Expect(libsck.DefaultBufferSize).To(Equal(32 * 1024))
		Expect(byte(libsck.EOL)).To(Equal(byte('\n')))
	})
})
