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

// Package config holds the address/transport configuration consumed by the
// socket/server and socket/client factories: a low-level Server/Client pair
// matching one network.protocol flavor, and a higher-level Options builder
// that parses the four address-URI schemes from the wire spec (tcp://,
// udp://, ipc://, inproc://) into one of those.
package config

import (
	"errors"
	"fmt"

	libprm "github.com/adam-ikari/uvrpc-sub001/file/perm"
	liberr "github.com/adam-ikari/uvrpc-sub001/errors"
	libptc "github.com/adam-ikari/uvrpc-sub001/network/protocol"
)

// MaxGID is the largest POSIX group id this package accepts for GroupPerm.
const MaxGID = 1<<31 - 1

// Client configures a dialed endpoint.
type Client struct {
	Network libptc.NetworkProtocol `json:"network" yaml:"network" toml:"network" mapstructure:"network"`
	Address string                 `json:"address" yaml:"address" toml:"address" mapstructure:"address"`
}

// Validate reports whether c names a supported, well-formed endpoint.
func (c Client) Validate() error {
	return validateAddress(c.Network, c.Address)
}

// Server configures a listening endpoint. PermFile/GroupPerm only apply to
// ipc (unix-socket) addresses, where the bound file's mode and owning group
// must be set explicitly since the kernel default is often too permissive.
type Server struct {
	Network   libptc.NetworkProtocol `json:"network" yaml:"network" toml:"network" mapstructure:"network"`
	Address   string                 `json:"address" yaml:"address" toml:"address" mapstructure:"address"`
	PermFile  libprm.Perm            `json:"perm_file,omitempty" yaml:"perm_file,omitempty" toml:"perm_file,omitempty" mapstructure:"perm_file"`
	GroupPerm int32                  `json:"group_perm,omitempty" yaml:"group_perm,omitempty" toml:"group_perm,omitempty" mapstructure:"group_perm"`
}

// Validate reports whether s names a supported, well-formed endpoint.
func (s Server) Validate() error {
	if err := validateAddress(s.Network, s.Address); err != nil {
		return err
	}
	if s.GroupPerm < 0 || s.GroupPerm > MaxGID {
		return ErrInvalidGroup.Error()
	}
	return nil
}

func validateAddress(n libptc.NetworkProtocol, address string) error {
	switch n {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		return validateHostPort("tcp", address)
	case libptc.NetworkUDP, libptc.NetworkUDP4, libptc.NetworkUDP6:
		return validateHostPort("udp", address)
	case libptc.NetworkUnix, libptc.NetworkUnixGram:
		if address == "" {
			return ErrInvalidAddress.Error()
		}
		return nil
	default:
		return ErrInvalidProtocol.Error()
	}
}

// Error codes reserved for this package.
const (
	ErrInvalidProtocol liberr.CodeError = iota + liberr.MinPkgSocket + 50 // unsupported/zero NetworkProtocol
	ErrInvalidAddress                                                     // address does not parse for its protocol
	ErrInvalidGroup                                                       // GroupPerm outside [0, MaxGID]
	ErrInvalidURI                                                         // address-URI scheme not one of tcp/udp/ipc/inproc
)

func init() {
	if liberr.ExistInMapMessage(ErrInvalidProtocol) {
		panic(errors.New("error code collision with package socket/config"))
	}
	liberr.RegisterIdFctMessage(ErrInvalidProtocol, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrInvalidProtocol:
		return "unsupported or zero network protocol"
	case ErrInvalidAddress:
		return "address does not parse for its protocol"
	case ErrInvalidGroup:
		return fmt.Sprintf("group permission must be between 0 and %d", MaxGID)
	case ErrInvalidURI:
		return "address URI scheme must be tcp, udp, ipc, or inproc"
	}
	return liberr.NullMessage
}
