//go:build linux || darwin

package resolve

import (
	"github.com/opd-ai/sockets/sockaddr"
)

// Resolution hint flags, analogous to the platform AI_* flags.
const (
	// FlagPassive requests wildcard addresses suitable for binding when
	// no host is given, instead of loopback.
	FlagPassive = 0x1
	// FlagCanonName requests the canonical name of the host on the first
	// returned candidate.
	FlagCanonName = 0x2
	// FlagNumericHost restricts the host to a numeric address string; no
	// name lookup is performed.
	FlagNumericHost = 0x4
	// FlagNumericService restricts the service to a numeric port string.
	FlagNumericService = 0x8
)

// AddrInfo bundles a socket's creation parameters with one concrete
// address. Resolution produces them; socket construction and bind/connect
// consume them.
type AddrInfo struct {
	Flags    int
	Family   sockaddr.Family
	SockType sockaddr.Type
	Protocol sockaddr.Protocol
	Addr     sockaddr.Value

	// CanonicalName is the canonical host name when requested via
	// FlagCanonName, empty otherwise.
	CanonicalName string
}

// Clone returns a copy of the AddrInfo. The Addr value is shared; callers
// that substitute a new address assign the field rather than mutating the
// shared value.
func (ai *AddrInfo) Clone() *AddrInfo {
	if ai == nil {
		return nil
	}
	c := *ai
	return &c
}

// Network maps the socket type to the stdlib network string used for
// service lookups.
func (ai *AddrInfo) Network() string {
	if ai != nil && ai.SockType == sockaddr.TypeDatagram {
		return "udp"
	}
	return "tcp"
}
