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
	"time"

	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

func (b *bs) RegisterPending(msgid uint64, cb PendingCallback, deadline *time.Time) error {
	entry := pendingEntry{cb: cb, deadline: deadline}
	if _, loaded := b.pending.LoadOrStore(msgid, entry); loaded {
		return ErrAlreadyExists.Error()
	}
	return nil
}

func (b *bs) CancelPending(msgid uint64) error {
	if _, ok := b.pending.LoadAndDelete(msgid); !ok {
		return ErrNotFound.Error()
	}
	return nil
}

func (b *bs) SettlePending(msgid uint64, status libstt.Code, payload []byte) error {
	entry, ok := b.pending.LoadAndDelete(msgid)
	if !ok {
		b.cnt.responsesStale.Add(1)
		return ErrNotFound.Error()
	}
	b.cnt.responsesMatched.Add(1)
	if entry.cb != nil {
		entry.cb(status, payload)
	}
	return nil
}

func (b *bs) ExpirePending(now time.Time) {
	var expired []uint64
	b.pending.Range(func(msgid uint64, entry pendingEntry) bool {
		if entry.deadline != nil && !now.Before(*entry.deadline) {
			expired = append(expired, msgid)
		}
		return true
	})

	for _, msgid := range expired {
		entry, ok := b.pending.LoadAndDelete(msgid)
		if !ok {
			continue
		}
		if entry.cb != nil {
			entry.cb(libstt.Timeout, nil)
		}
	}
}

func (b *bs) DrainPending() {
	var all []uint64
	b.pending.Range(func(msgid uint64, _ pendingEntry) bool {
		all = append(all, msgid)
		return true
	})

	for _, msgid := range all {
		entry, ok := b.pending.LoadAndDelete(msgid)
		if !ok {
			continue
		}
		if entry.cb != nil {
			entry.cb(libstt.Cancelled, nil)
		}
	}
}
