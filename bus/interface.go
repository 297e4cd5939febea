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

// Package bus routes decoded envelopes: to request handlers by method name,
// to pending-call callbacks by msgid, and to topic subscribers by pattern
// match. It holds no transport or session state of its own — Server/Client/
// Publisher/Subscriber in the rpc and pubsub packages own one Bus each and
// feed it decoded envelope.Envelope values.
package bus

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
	"github.com/adam-ikari/uvrpc-sub001/envelope"
	liblog "github.com/adam-ikari/uvrpc-sub001/logger"
	libstt "github.com/adam-ikari/uvrpc-sub001/status"
)

// ReplySink is handed to a request Handler so it can produce exactly one
// response for the originating peer and msgid. The rpc package's Server
// builds one per inbound request, binding it to the peer connection before
// calling Bus.DispatchRequest.
type ReplySink interface {
	// SendResponse encodes and sends a Response envelope for the request
	// this sink was created for. Calling it more than once is a caller
	// error the sink does not attempt to detect (at-most-once is a
	// contract, not an enforced invariant, to keep the sink allocation-free).
	SendResponse(status libstt.Code, payload []byte) error
}

// Handler answers one Request envelope. method and payload are the
// request's method name and payload; reply is used to produce the (single)
// response.
type Handler func(method string, payload []byte, reply ReplySink)

// PendingCallback settles one outstanding client call: status is libstt.Ok
// on success, or one of the other wire status codes (MethodNotFound,
// Timeout, Cancelled, ...) on failure.
type PendingCallback func(status libstt.Code, payload []byte)

// SubscribeCallback delivers one Publication to one matching subscription.
type SubscribeCallback func(topic string, payload []byte)

// FilterFunc implements topic-pattern matching beyond the default exact
// string equality — prefix or glob semantics, supplied at Subscribe time.
// It receives the subscription's pattern and the publication's topic.
type FilterFunc func(pattern, topic string) bool

// Stats is a point-in-time snapshot of a Bus's counters (spec §4.4).
type Stats struct {
	FramesRouted          int64
	HandlerHits           int64
	HandlerMisses         int64
	ResponsesMatched      int64
	ResponsesStale        int64
	PublicationsDispatched int64
	SubscriptionsActive   int64
}

// Bus is the handler table, pending-call table, and subscription table
// described in spec §4.4, plus the statistics counters.
type Bus interface {
	// RegisterHandler binds method to cb. Returns ErrAlreadyExists if a
	// handler is already registered for method.
	RegisterHandler(method string, cb Handler) error
	// UnregisterHandler removes method's handler, if any.
	UnregisterHandler(method string)

	// RegisterPending records a callback awaiting the response to msgid.
	// deadline is optional (nil disables the timeout for this call).
	// Returns ErrAlreadyExists if msgid is already pending.
	RegisterPending(msgid uint64, cb PendingCallback, deadline *time.Time) error
	// CancelPending removes and does NOT invoke the callback for msgid.
	// Returns ErrNotFound if msgid was not pending.
	CancelPending(msgid uint64) error
	// SettlePending removes and invokes the callback for msgid with status
	// and payload. Returns ErrNotFound (and increments ResponsesStale) if
	// msgid was not pending.
	SettlePending(msgid uint64, status libstt.Code, payload []byte) error
	// ExpirePending invokes, with libstt.Timeout, every pending entry whose
	// deadline is at or before now, removing them from the table.
	ExpirePending(now time.Time)
	// DrainPending removes and invokes every pending entry with libstt.Cancelled.
	// Used by Client.Disconnect/teardown.
	DrainPending()

	// Subscribe adds (pattern, cb) to the subscription table, returning an
	// opaque subscription id for Unsubscribe. filter may be nil, in which
	// case matching is exact string equality against pattern.
	Subscribe(pattern string, cb SubscribeCallback, filter FilterFunc) string
	// Unsubscribe removes the subscription created under id, if present.
	Unsubscribe(id string)

	// DispatchRequest looks up a handler for env.Method and invokes it with
	// reply; if none is registered it sinks a synthetic MethodNotFound
	// response through reply itself.
	DispatchRequest(env envelope.Envelope, reply ReplySink)
	// DispatchResponse looks up and settles the pending entry for
	// env.MsgId. A miss increments ResponsesStale and is otherwise silent.
	DispatchResponse(env envelope.Envelope)
	// DispatchPublication invokes every subscription whose pattern matches
	// topic (via its filter, or exact equality when filter is nil).
	DispatchPublication(topic string, payload []byte)

	// GetStats returns a snapshot of the counters.
	GetStats() Stats
	// ClearStats resets every counter to zero except SubscriptionsActive,
	// which always reflects the live subscription count.
	ClearStats()
}

// New returns an empty Bus. log may be nil, in which case dispatch-time
// diagnostics (handler misses, stale responses) are not logged.
func New(log liblog.Logger) Bus {
	return newBus(log)
}

// Error codes reserved for this package.
const (
	ErrAlreadyExists liberr.CodeError = iota + liberr.MinPkgBus // method/msgid already registered
	ErrNotFound                                                  // msgid not in the pending table
)

func init() {
	if liberr.ExistInMapMessage(ErrAlreadyExists) {
		panic(fmt.Errorf("error code collision with package bus"))
	}
	liberr.RegisterIdFctMessage(ErrAlreadyExists, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrAlreadyExists:
		return "method or msgid is already registered"
	case ErrNotFound:
		return "msgid is not in the pending-call table"
	}
	return liberr.NullMessage
}

// newSubscriptionID returns a fresh, process-wide-unique subscription id.
func newSubscriptionID() string {
	return uuid.NewString()
}
