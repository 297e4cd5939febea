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

package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"

	loglvl "github.com/adam-ikari/uvrpc-sub001/logger/level"
)

func (o *lgr) SetLevel(lvl loglvl.Level) {
	o.m.Lock()
	defer o.m.Unlock()

	o.v = lvl
	o.l.SetLevel(lvl.Logrus())
}

func (o *lgr) GetLevel() loglvl.Level {
	o.m.RLock()
	defer o.m.RUnlock()

	return o.v
}

func (o *lgr) SetFields(f Fields) {
	o.setFields(f.Clone())
}

func (o *lgr) GetFields() Fields {
	return o.fields().Clone()
}

func (o *lgr) WithField(key string, val interface{}) Logger {
	o.m.RLock()
	v := o.v
	o.m.RUnlock()

	f := o.fields().Clone()
	if f == nil {
		f = Fields{}
	}
	f[key] = val

	n := &lgr{x: o.x.Clone(o.x.GetContext()), l: o.l, v: v}
	n.setFields(f)
	return n
}

func (o *lgr) Clone() Logger {
	o.m.RLock()
	defer o.m.RUnlock()

	n := &lgr{
		x: o.x.Clone(o.x.GetContext()),
		l: o.l,
		v: o.v,
	}
	n.setFields(o.fields().Clone())
	return n
}

// Write implements io.Writer, logging the given bytes at Info level with
// any trailing newline trimmed. It lets components that only emit raw
// bytes (e.g. a frame codec running in verbose mode) sink into the same
// logger as the rest of the session.
func (o *lgr) Write(p []byte) (n int, err error) {
	msg := string(p)
	for len(msg) > 0 && (msg[len(msg)-1] == '\n' || msg[len(msg)-1] == '\r') {
		msg = msg[:len(msg)-1]
	}

	o.entry().Info(msg)
	return len(p), nil
}

func (o *lgr) entry() *logrus.Entry {
	f := o.fields()
	if len(f) == 0 {
		return logrus.NewEntry(o.l)
	}

	return o.l.WithFields(logrus.Fields(f))
}

func (o *lgr) Debug(message string, args ...interface{}) {
	o.entry().Debug(fmt.Sprintf(message, args...))
}

func (o *lgr) Info(message string, args ...interface{}) {
	o.entry().Info(fmt.Sprintf(message, args...))
}

func (o *lgr) Warning(message string, args ...interface{}) {
	o.entry().Warning(fmt.Sprintf(message, args...))
}

func (o *lgr) Error(err error, message string, args ...interface{}) {
	o.withError(err).Error(fmt.Sprintf(message, args...))
}

func (o *lgr) Fatal(err error, message string, args ...interface{}) {
	o.withError(err).Fatal(fmt.Sprintf(message, args...))
}

func (o *lgr) Panic(err error, message string, args ...interface{}) {
	o.withError(err).Panic(fmt.Sprintf(message, args...))
}

func (o *lgr) withError(err error) *logrus.Entry {
	e := o.entry()
	if err != nil {
		e = e.WithError(err)
	}
	return e
}

func (o *lgr) CheckError(lvlKO, lvlOK loglvl.Level, message string, err error) bool {
	if err != nil {
		o.withError(err).Log(lvlKO.Logrus(), message)
		return true
	}

	switch lvlOK {
	case loglvl.NilLevel:
		// success path is silent
	case loglvl.DebugLevel:
		o.Debug(message)
	case loglvl.WarnLevel:
		o.Warning(message)
	default:
		o.Info(message)
	}

	return false
}
