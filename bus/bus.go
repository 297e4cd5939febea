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
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/adam-ikari/uvrpc-sub001/atomic"
	liblog "github.com/adam-ikari/uvrpc-sub001/logger"
)

type pendingEntry struct {
	cb       PendingCallback
	deadline *time.Time
}

type subscription struct {
	id      string
	pattern string
	cb      SubscribeCallback
	filter  FilterFunc
}

type counters struct {
	framesRouted           atomic.Int64
	handlerHits            atomic.Int64
	handlerMisses          atomic.Int64
	responsesMatched       atomic.Int64
	responsesStale         atomic.Int64
	publicationsDispatched atomic.Int64
}

type bs struct {
	log liblog.Logger

	handlers libatm.MapTyped[string, Handler]
	pending  libatm.MapTyped[uint64, pendingEntry]

	subMu sync.RWMutex
	subs  map[string][]subscription // keyed by pattern

	cnt counters
}

func newBus(log liblog.Logger) Bus {
	return &bs{
		log:      log,
		handlers: libatm.NewMapTyped[string, Handler](),
		pending:  libatm.NewMapTyped[uint64, pendingEntry](),
		subs:     make(map[string][]subscription),
	}
}

func (b *bs) logf(format string, args ...interface{}) {
	if b.log != nil {
		b.log.Debug(format, args...)
	}
}

func (b *bs) GetStats() Stats {
	b.subMu.RLock()
	active := 0
	for _, l := range b.subs {
		active += len(l)
	}
	b.subMu.RUnlock()

	return Stats{
		FramesRouted:           b.cnt.framesRouted.Load(),
		HandlerHits:            b.cnt.handlerHits.Load(),
		HandlerMisses:          b.cnt.handlerMisses.Load(),
		ResponsesMatched:       b.cnt.responsesMatched.Load(),
		ResponsesStale:         b.cnt.responsesStale.Load(),
		PublicationsDispatched: b.cnt.publicationsDispatched.Load(),
		SubscriptionsActive:    int64(active),
	}
}

func (b *bs) ClearStats() {
	b.cnt.framesRouted.Store(0)
	b.cnt.handlerHits.Store(0)
	b.cnt.handlerMisses.Store(0)
	b.cnt.responsesMatched.Store(0)
	b.cnt.responsesStale.Store(0)
	b.cnt.publicationsDispatched.Store(0)
}
