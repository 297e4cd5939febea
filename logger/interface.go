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

// Package logger wires the session/bus/transport diagnostics onto logrus,
// reusing the severity scale of the level subpackage instead of introducing
// a parallel one.
package logger

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	libctx "github.com/adam-ikari/uvrpc-sub001/context"
	loglvl "github.com/adam-ikari/uvrpc-sub001/logger/level"
)

// FuncLog returns a Logger instance, used for lazy dependency injection.
type FuncLog func() Logger

// Fields carries structured key-value data attached to a log entry.
type Fields map[string]interface{}

// Clone returns an independent copy of the fields map.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}

	n := make(Fields, len(f))
	for k, v := range f {
		n[k] = v
	}
	return n
}

// Logger is the structured logging surface shared by the transport, bus and
// RPC/pub-sub session layers. It doubles as an io.Writer so it can sink the
// output of components (e.g. the frame codec in verbose mode) that only know
// how to write bytes.
type Logger interface {
	io.Writer

	// SetLevel changes the minimal severity that will be emitted.
	SetLevel(lvl loglvl.Level)

	// GetLevel returns the minimal severity currently emitted.
	GetLevel() loglvl.Level

	// SetFields replaces the default fields merged into every entry.
	SetFields(f Fields)

	// GetFields returns the default fields merged into every entry.
	GetFields() Fields

	// WithField returns a derived Logger carrying one extra field, without
	// mutating the receiver's default fields.
	WithField(key string, val interface{}) Logger

	// Clone duplicates the logger, including level and fields.
	Clone() Logger

	Debug(message string, args ...interface{})
	Info(message string, args ...interface{})
	Warning(message string, args ...interface{})
	Error(err error, message string, args ...interface{})
	Fatal(err error, message string, args ...interface{})
	Panic(err error, message string, args ...interface{})

	// CheckError logs err at lvlKO if non-nil; otherwise, if lvlOK is not
	// loglvl.NilLevel, logs message at lvlOK. Returns true when err was
	// non-nil and thus logged as a failure.
	CheckError(lvlKO, lvlOK loglvl.Level, message string, err error) bool
}

type lgr struct {
	m sync.RWMutex
	x libctx.Config[uint8]
	l *logrus.Logger
	v loglvl.Level
}

// ctxKeyFields is the key under which the logger's structured Fields are
// kept in x, the per-logger context.Config store that Clone copies.
const ctxKeyFields uint8 = 1

func (o *lgr) fields() Fields {
	v, ok := o.x.Load(ctxKeyFields)
	if !ok {
		return nil
	}
	f, _ := v.(Fields)
	return f
}

func (o *lgr) setFields(f Fields) {
	o.x.Store(ctxKeyFields, f)
}

// New returns a Logger writing through logrus, defaulting to InfoLevel with
// a text formatter. The field store keeps ctx's values but not its
// cancellation, so cancelling ctx does not stop log output or drop fields.
func New(ctx context.Context) Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if ctx == nil {
		ctx = context.Background()
	}

	o := &lgr{
		x: libctx.New[uint8](context.WithoutCancel(ctx)),
		l: l,
	}
	o.SetLevel(loglvl.InfoLevel)

	return o
}

// NewFrom builds a Logger seeded from an existing one (level and fields are
// copied), falling back to New defaults when other is nil or empty.
func NewFrom(ctx context.Context, other ...Logger) Logger {
	n := New(ctx)

	for _, o := range other {
		if o == nil {
			continue
		}

		n.SetLevel(o.GetLevel())
		n.SetFields(o.GetFields())
	}

	return n
}
