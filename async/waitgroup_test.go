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

package async_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adam-ikari/uvrpc-sub001/async"
)

var _ = Describe("WaitGroup", func() {
	It("starts with an already-resolved completion promise", func() {
		w := async.NewWaitGroup()
		Expect(w.Promise().IsFulfilled()).To(BeTrue())
	})

	It("resolves the completion promise when the counter returns to zero", func() {
		w := async.NewWaitGroup()
		Expect(w.Add(3)).NotTo(HaveOccurred())

		p := w.Promise()
		Expect(p.IsPending()).To(BeTrue())

		Expect(w.Done()).NotTo(HaveOccurred())
		Expect(w.Done()).NotTo(HaveOccurred())
		Expect(p.IsPending()).To(BeTrue())

		Expect(w.Done()).NotTo(HaveOccurred())
		Eventually(p.IsFulfilled).Should(BeTrue())
	})

	It("rejects Add/Done that would drive the counter negative", func() {
		w := async.NewWaitGroup()
		Expect(w.Done()).To(HaveOccurred())
	})

	It("starts a fresh completion promise for the next round", func() {
		w := async.NewWaitGroup()
		Expect(w.Add(1)).NotTo(HaveOccurred())
		first := w.Promise()
		Expect(w.Done()).NotTo(HaveOccurred())
		Eventually(first.IsFulfilled).Should(BeTrue())

		Expect(w.Add(1)).NotTo(HaveOccurred())
		second := w.Promise()
		Expect(second).NotTo(BeIdenticalTo(first))
		Expect(second.IsPending()).To(BeTrue())
	})
})
