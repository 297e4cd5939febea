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

package config

import (
	"strings"

	libprm "github.com/adam-ikari/uvrpc-sub001/file/perm"
	libptc "github.com/adam-ikari/uvrpc-sub001/network/protocol"
)

// Options is the address-URI-level configuration shared by every transport
// flavor: the scheme identifies tcp/udp/ipc/inproc, the rest of the URI is
// the flavor-specific address (host:port, filesystem path, or logical
// name). It decodes from viper/mapstructure the same way network/protocol's
// own NetworkProtocol does, via WithDecodeHook-compatible struct tags.
type Options struct {
	Scheme     string                 `json:"scheme" yaml:"scheme" toml:"scheme" mapstructure:"scheme"`
	Transport  libptc.NetworkProtocol `json:"transport" yaml:"transport" toml:"transport" mapstructure:"transport"`
	Address    string                 `json:"address" yaml:"address" toml:"address" mapstructure:"address"`
	BufferSize int                    `json:"buffer_size,omitempty" yaml:"buffer_size,omitempty" toml:"buffer_size,omitempty" mapstructure:"buffer_size"`
	PermFile   libprm.Perm            `json:"perm_file,omitempty" yaml:"perm_file,omitempty" toml:"perm_file,omitempty" mapstructure:"perm_file"`
	GroupPerm  int32                  `json:"group_perm,omitempty" yaml:"group_perm,omitempty" toml:"group_perm,omitempty" mapstructure:"group_perm"`
}

// Option mutates an Options being built by New.
type Option func(*Options)

// WithBufferSize overrides the per-connection read buffer size.
func WithBufferSize(n int) Option {
	return func(o *Options) { o.BufferSize = n }
}

// WithPermFile sets the file mode applied to a freshly bound ipc socket file.
func WithPermFile(p libprm.Perm) Option {
	return func(o *Options) { o.PermFile = p }
}

// WithGroupPerm sets the owning group id applied to a freshly bound ipc
// socket file.
func WithGroupPerm(gid int32) Option {
	return func(o *Options) { o.GroupPerm = gid }
}

// New builds an Options for transport/address, applying opts in order.
func New(transport libptc.NetworkProtocol, address string, opts ...Option) *Options {
	o := &Options{Transport: transport, Address: address}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Parse decodes one of the four wire-spec address URIs — tcp://host:port,
// udp://host:port, ipc:///path/to/sock, inproc://logical-name — into an
// Options. The transport constructors do not call it: they take the
// config.Server or config.Client that ToServer and ToClient project from it.
func Parse(uri string) (*Options, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return nil, ErrInvalidURI.Error()
	}

	o := &Options{Scheme: scheme, Address: rest}

	switch scheme {
	case "tcp":
		o.Transport = libptc.NetworkTCP
	case "udp":
		o.Transport = libptc.NetworkUDP
	case "ipc":
		o.Transport = libptc.NetworkUnix
		o.Address = "/" + strings.TrimPrefix(rest, "/")
	case "inproc":
		o.Transport = libptc.NetworkEmpty // inproc has no net.Conn-level protocol
	default:
		return nil, ErrInvalidURI.Error()
	}

	if o.Address == "" {
		return nil, ErrInvalidURI.Error()
	}

	return o, nil
}

// ToServer projects o onto the low-level Server shape consumed by
// socket/server's flavor constructors.
func (o *Options) ToServer() Server {
	return Server{Network: o.Transport, Address: o.Address, PermFile: o.PermFile, GroupPerm: o.GroupPerm}
}

// ToClient projects o onto the low-level Client shape consumed by
// socket/client's flavor constructors.
func (o *Options) ToClient() Client {
	return Client{Network: o.Transport, Address: o.Address}
}

// IsInproc reports whether o names the in-process loopback scheme, which
// bypasses net.Conn entirely in favor of the process-wide registry.
func (o *Options) IsInproc() bool {
	return o.Scheme == "inproc"
}
