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

package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// UnmarshalJSON accepts a JSON string and resolves it with Parse. Malformed
// or unrecognized content yields NetworkEmpty rather than an error, since an
// absent/garbled protocol is a configuration choice, not a syntax failure.
func (n *NetworkProtocol) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		*n = NetworkEmpty
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*n = NetworkEmpty
		return nil
	}

	*n = Parse(s)
	return nil
}

// UnmarshalYAML implements yaml.v3's node-based Unmarshaler.
func (n *NetworkProtocol) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*n = NetworkEmpty
		return nil
	}

	*n = Parse(value.Value)
	return nil
}

// UnmarshalTOML accepts the string or []byte forms BurntSushi/go-toml
// decoders hand to a custom Unmarshaler, rejecting any other Go type.
func (n *NetworkProtocol) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case []byte:
		*n = Parse(string(t))
		return nil
	case string:
		*n = Parse(t)
		return nil
	default:
		*n = NetworkEmpty
		return fmt.Errorf("protocol: value %v is not in valid format for NetworkProtocol", v)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NetworkProtocol) UnmarshalText(data []byte) error {
	*n = ParseBytes(data)
	return nil
}

// UnmarshalCBOR accepts either a real CBOR text-string payload (as produced
// by MarshalCBOR) or a bare ASCII protocol name, falling back to the latter
// when CBOR decoding fails.
func (n *NetworkProtocol) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cbor.Unmarshal(data, &s); err == nil {
		*n = Parse(s)
		return nil
	}

	*n = ParseBytes(data)
	return nil
}
