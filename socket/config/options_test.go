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

package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libprm "github.com/adam-ikari/uvrpc-sub001/file/perm"
	libptc "github.com/adam-ikari/uvrpc-sub001/network/protocol"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
)

var _ = Describe("Parse", func() {
	It("parses a tcp:// URI", func() {
		o, err := config.Parse("tcp://127.0.0.1:5555")
		Expect(err).ToNot(HaveOccurred())
		Expect(o.Transport).To(Equal(libptc.NetworkTCP))
		Expect(o.Address).To(Equal("127.0.0.1:5555"))
	})

	It("parses a udp:// URI", func() {
		o, err := config.Parse("udp://127.0.0.1:6000")
		Expect(err).ToNot(HaveOccurred())
		Expect(o.Transport).To(Equal(libptc.NetworkUDP))
	})

	It("parses an ipc:// URI, normalizing to an absolute path", func() {
		o, err := config.Parse("ipc:///tmp/uvrpc.sock")
		Expect(err).ToNot(HaveOccurred())
		Expect(o.Transport).To(Equal(libptc.NetworkUnix))
		Expect(o.Address).To(Equal("/tmp/uvrpc.sock"))
	})

	It("parses an inproc:// URI", func() {
		o, err := config.Parse("inproc://t")
		Expect(err).ToNot(HaveOccurred())
		Expect(o.IsInproc()).To(BeTrue())
		Expect(o.Address).To(Equal("t"))
	})

	It("rejects a URI with no scheme separator", func() {
		_, err := config.Parse("not-a-uri")
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unknown scheme", func() {
		_, err := config.Parse("quic://127.0.0.1:443")
		Expect(err).To(HaveOccurred())
	})

	It("rejects a scheme with no address", func() {
		_, err := config.Parse("tcp://")
		Expect(err).To(HaveOccurred())
	})

	It("projects onto Server and Client shapes", func() {
		o, err := config.Parse("tcp://127.0.0.1:5555")
		Expect(err).ToNot(HaveOccurred())
		Expect(o.ToServer()).To(Equal(config.Server{Network: libptc.NetworkTCP, Address: "127.0.0.1:5555"}))
		Expect(o.ToClient()).To(Equal(config.Client{Network: libptc.NetworkTCP, Address: "127.0.0.1:5555"}))
	})
})

var _ = Describe("New", func() {
	It("applies functional options", func() {
		o := config.New(libptc.NetworkUnix, "/tmp/x.sock", config.WithPermFile(0o640), config.WithGroupPerm(1000), config.WithBufferSize(4096))
		Expect(o.PermFile).To(Equal(libprm.Perm(0o640)))
		Expect(o.GroupPerm).To(Equal(int32(1000)))
		Expect(o.BufferSize).To(Equal(4096))
	})
})
