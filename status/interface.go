/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package status carries UVRPC's wire-level result codes: the bit-exact
// signed 32-bit values that cross the network inside a Response envelope.
// It is deliberately small and self-contained (no dependency on the
// internal errors.CodeError hierarchy) since a Code is the one piece of
// UVRPC state that another process, possibly written in another language,
// must be able to interpret from the raw wire bytes alone.
package status

// Code is the signed 32-bit result code carried by a Response envelope.
// Zero means success; every other value is a failure kind.
type Code int32

// Bit-exact status codes, per the wire contract.
const (
	Ok             Code = 0
	Generic        Code = -1
	InvalidParam   Code = -2
	NoMemory       Code = -3
	MethodNotFound Code = -4
	Timeout        Code = -5
	NotFound       Code = -6
	NotConnected   Code = -7
	Cancelled      Code = -8
)

var names = map[Code]string{
	Ok:             "Ok",
	Generic:        "Generic",
	InvalidParam:   "InvalidParam",
	NoMemory:       "NoMemory",
	MethodNotFound: "MethodNotFound",
	Timeout:        "Timeout",
	NotFound:       "NotFound",
	NotConnected:   "NotConnected",
	Cancelled:      "Cancelled",
}

// String returns the status name, or "Unknown" for a value outside the
// bit-exact table above (a forward-compat peer may send one).
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "Unknown"
}

// OK reports whether the code is the success code.
func (c Code) OK() bool {
	return c == Ok
}
