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

package frame

import (
	"encoding/binary"
)

func encode(payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, ErrPayloadTooLarge.Error()
	}

	out := make([]byte, LengthSize+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(payload)))
	copy(out[LengthSize:], payload)

	return out, nil
}

func feed(buf []byte, newBytes []byte) ([][]byte, []byte, error) {
	if len(newBytes) > 0 {
		buf = append(buf, newBytes...)
	}

	var frames [][]byte

	for {
		if len(buf) < LengthSize {
			break
		}

		n := binary.BigEndian.Uint32(buf[:LengthSize])
		if n == 0 || n > MaxPayload {
			return frames, nil, ErrFrameInvalid.Error()
		}

		total := LengthSize + int(n)
		if len(buf) < total {
			break
		}

		payload := make([]byte, n)
		copy(payload, buf[LengthSize:total])
		frames = append(frames, payload)

		buf = buf[total:]
	}

	return frames, buf, nil
}
