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

package status

import "fmt"

// Error adapts a non-Ok Code to the standard error interface, so a status
// returned over the wire can be handled with errors.Is/errors.As like any
// other failure in this module.
type Error struct {
	Code    Code
	Message string
}

// New wraps a non-Ok code as an error. Ok returns nil, matching the
// convention that a nil error means success.
func New(code Code, message string) error {
	if code == Ok {
		return nil
	}
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a *Error with the same Code, so
// errors.Is(err, status.From(status.MethodNotFound)) matches any
// MethodNotFound error whatever its message.
func (e *Error) Is(target error) bool {
	var t *Error
	if ok := asError(target, &t); ok {
		return t.Code == e.Code
	}
	return false
}

func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}

// From converts a Code directly into an error, for call sites that only
// have the code and not a message (e.g. a synthesized MethodNotFound).
func From(code Code) error {
	return New(code, "")
}
