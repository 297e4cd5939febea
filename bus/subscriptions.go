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

func (b *bs) Subscribe(pattern string, cb SubscribeCallback, filter FilterFunc) string {
	sub := subscription{
		id:      newSubscriptionID(),
		pattern: pattern,
		cb:      cb,
		filter:  filter,
	}

	b.subMu.Lock()
	b.subs[pattern] = append(b.subs[pattern], sub)
	b.subMu.Unlock()

	return sub.id
}

func (b *bs) Unsubscribe(id string) {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	for pattern, list := range b.subs {
		for i, sub := range list {
			if sub.id != id {
				continue
			}
			b.subs[pattern] = append(list[:i], list[i+1:]...)
			if len(b.subs[pattern]) == 0 {
				delete(b.subs, pattern)
			}
			return
		}
	}
}

// matching returns every live subscription whose pattern matches topic,
// taken under a read lock so dispatch never blocks Subscribe/Unsubscribe
// longer than the copy itself.
func (b *bs) matching(topic string) []subscription {
	b.subMu.RLock()
	defer b.subMu.RUnlock()

	var out []subscription
	for pattern, list := range b.subs {
		for _, sub := range list {
			if sub.filter != nil {
				if sub.filter(pattern, topic) {
					out = append(out, sub)
				}
				continue
			}
			if pattern == topic {
				out = append(out, sub)
			}
		}
	}
	return out
}
