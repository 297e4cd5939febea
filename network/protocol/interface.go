/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package protocol enumerates the network families a transport endpoint can
// bind or dial, with the marshaling glue needed to carry that choice through
// JSON/YAML/TOML configuration files and Viper-decoded structs.
package protocol

// NetworkProtocol identifies the network family used to dial or listen.
// The zero value, NetworkEmpty, is never a valid, connectable protocol.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

// Int returns the numeric value of the protocol, or 0 if it is not one of
// the defined constants.
func (n NetworkProtocol) Int() int {
	if n > NetworkUnixGram {
		return 0
	}
	return int(n)
}

// Int64 is Int as an int64.
func (n NetworkProtocol) Int64() int64 {
	return int64(n.Int())
}

// Uint is Int as a uint.
func (n NetworkProtocol) Uint() uint {
	return uint(n.Int())
}

// Uint64 is Int as a uint64.
func (n NetworkProtocol) Uint64() uint64 {
	return uint64(n.Int())
}
