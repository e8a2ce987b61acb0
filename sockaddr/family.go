//go:build linux || darwin

package sockaddr

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Family identifies a socket address family. Values mirror the platform's
// AF_* constants so they can be passed straight to socket(2).
type Family uint16

const (
	// FamilyUnspec leaves the family unconstrained, typically in
	// resolution hints.
	FamilyUnspec Family = unix.AF_UNSPEC
	// FamilyUnix is the unix-domain (local) family.
	FamilyUnix Family = unix.AF_UNIX
	// FamilyINET is the IPv4 family.
	FamilyINET Family = unix.AF_INET
	// FamilyINET6 is the IPv6 family.
	FamilyINET6 Family = unix.AF_INET6
	// FamilySystem is the kernel system address family. The value follows
	// the Darwin AF_SYSTEM kernel-control convention; on platforms without
	// it the family is carried as an encoding only and cannot back a live
	// descriptor.
	FamilySystem Family = 32
)

// String returns a human-readable representation of the Family.
func (f Family) String() string {
	switch f {
	case FamilyUnspec:
		return "unspec"
	case FamilyUnix:
		return "unix"
	case FamilyINET:
		return "inet"
	case FamilyINET6:
		return "inet6"
	case FamilySystem:
		return "system"
	default:
		return fmt.Sprintf("family(%d)", uint16(f))
	}
}

// Type identifies a socket type, mirroring the platform SOCK_* constants.
type Type int

const (
	// TypeStream is a connection-oriented byte stream (SOCK_STREAM).
	TypeStream Type = unix.SOCK_STREAM
	// TypeDatagram is a connectionless datagram socket (SOCK_DGRAM).
	TypeDatagram Type = unix.SOCK_DGRAM
	// TypeRaw is a raw protocol socket (SOCK_RAW).
	TypeRaw Type = unix.SOCK_RAW
	// TypeSeqPacket is a sequenced, reliable datagram socket (SOCK_SEQPACKET).
	TypeSeqPacket Type = unix.SOCK_SEQPACKET
)

// String returns a human-readable representation of the Type.
func (t Type) String() string {
	switch t {
	case TypeStream:
		return "stream"
	case TypeDatagram:
		return "datagram"
	case TypeRaw:
		return "raw"
	case TypeSeqPacket:
		return "seqpacket"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Protocol identifies a transport protocol, mirroring IPPROTO_* constants.
// ProtocolDefault (0) lets the kernel pick the family's default.
type Protocol int

const (
	// ProtocolDefault selects the default protocol for the socket type.
	ProtocolDefault Protocol = 0
	// ProtocolTCP is IPPROTO_TCP.
	ProtocolTCP Protocol = unix.IPPROTO_TCP
	// ProtocolUDP is IPPROTO_UDP.
	ProtocolUDP Protocol = unix.IPPROTO_UDP
)

// String returns a human-readable representation of the Protocol.
func (p Protocol) String() string {
	switch p {
	case ProtocolDefault:
		return "default"
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	default:
		return fmt.Sprintf("protocol(%d)", int(p))
	}
}
