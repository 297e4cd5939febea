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

package server_test

import (
	"context"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libptc "github.com/adam-ikari/uvrpc-sub001/network/protocol"
	"github.com/adam-ikari/uvrpc-sub001/socket"
	"github.com/adam-ikari/uvrpc-sub001/socket/config"
	"github.com/adam-ikari/uvrpc-sub001/socket/server"
)

var _ = Describe("server.New", func() {
	It("rejects an unsupported network protocol", func() {
		_, err := server.New(nil, nil, config.Server{Address: "127.0.0.1:0"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("tcp server", func() {
	It("echoes and reports that it is running", func() {
		var states []socket.ConnState
		echo := func(c socket.Context) {
			buf := make([]byte, 64)
			n, err := c.Read(buf)
			Expect(err).NotTo(HaveOccurred())
			_, err = c.Write(buf[:n])
			Expect(err).NotTo(HaveOccurred())
		}

		srv, err := server.New(func(s socket.ConnState, _ net.Conn) {
			states = append(states, s)
		}, echo, config.Server{
			Network: libptc.NetworkTCP,
			Address: "127.0.0.1:18199",
		})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		go func() { _ = srv.Listen(ctx) }()
		time.Sleep(50 * time.Millisecond)

		conn, err := net.Dial("tcp", "127.0.0.1:18199")
		Expect(err).NotTo(HaveOccurred())

		_, err = conn.Write([]byte("ping"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 64)
		n, err := conn.Read(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("ping"))

		Expect(srv.IsRunning()).To(BeTrue())

		_ = conn.Close()
		cancel()
		time.Sleep(50 * time.Millisecond)
	})
})

var _ = Describe("inproc server", func() {
	It("round-trips a payload through the registry", func() {
		echo := func(c socket.Context) {
			buf := make([]byte, 64)
			n, err := c.Read(buf)
			Expect(err).NotTo(HaveOccurred())
			_, _ = c.Write(buf[:n])
		}

		srv, err := server.NewInproc("srv-test-addr", nil, echo)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		go func() { _ = srv.Listen(ctx) }()
		time.Sleep(10 * time.Millisecond)

		Expect(srv.IsRunning()).To(BeTrue())

		pipe, err := socket.InprocDial("srv-test-addr")
		Expect(err).NotTo(HaveOccurred())
		pipe.ToServer <- []byte("ping")
		Eventually(pipe.ToClient, time.Second).Should(Receive(Equal([]byte("ping"))))

		cancel()
	})
})
