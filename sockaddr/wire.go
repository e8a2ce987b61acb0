//go:build linux || darwin

package sockaddr

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Fixed native layout sizes per family. The header is always the 16-bit
// family field in host byte order; ports, where present, are in network
// byte order.
const (
	// SizeofIPv4 is the sockaddr_in layout size.
	SizeofIPv4 = 16
	// SizeofIPv6 is the sockaddr_in6 layout size.
	SizeofIPv6 = 28
	// SizeofUnix is the family header plus the UnixPathMax path buffer.
	SizeofUnix = 2 + UnixPathMax
	// SizeofSystem is the sockaddr_sys layout size.
	SizeofSystem = 32
)

// nativeEndian is the host byte order used for the family field and the
// non-port scalar fields, matching the native sockaddr structures.
var nativeEndian = binary.NativeEndian

// MarshalWire encodes an IPv4 address as a sockaddr_in: family, port in
// network byte order, the four address bytes, then zero padding.
func (a *IPv4) MarshalWire() ([]byte, error) {
	b := make([]byte, SizeofIPv4)
	nativeEndian.PutUint16(b[0:2], uint16(FamilyINET))
	binary.BigEndian.PutUint16(b[2:4], a.Port)
	copy(b[4:8], a.Addr[:])
	return b, nil
}

// MarshalWire encodes an IPv6 address as a sockaddr_in6: family, port in
// network byte order, flow label in network byte order, the sixteen
// address bytes, then the scope identifier in host order.
func (a *IPv6) MarshalWire() ([]byte, error) {
	b := make([]byte, SizeofIPv6)
	nativeEndian.PutUint16(b[0:2], uint16(FamilyINET6))
	binary.BigEndian.PutUint16(b[2:4], a.Port)
	binary.BigEndian.PutUint32(b[4:8], a.FlowInfo)
	copy(b[8:24], a.Addr[:])
	nativeEndian.PutUint32(b[24:28], a.ScopeID)
	return b, nil
}

// MarshalWire encodes a unix-domain address: family followed by the
// NUL-padded path buffer.
func (u *Unix) MarshalWire() ([]byte, error) {
	b := make([]byte, SizeofUnix)
	nativeEndian.PutUint16(b[0:2], uint16(FamilyUnix))
	copy(b[2:], u.path[:u.n])
	return b, nil
}

// MarshalWire encodes a system address: family, the 16-bit system address,
// then the seven reserved words, all in host order.
func (a *System) MarshalWire() ([]byte, error) {
	b := make([]byte, SizeofSystem)
	nativeEndian.PutUint16(b[0:2], uint16(FamilySystem))
	nativeEndian.PutUint16(b[2:4], a.SysAddr)
	for i, w := range a.Reserved {
		nativeEndian.PutUint32(b[4+4*i:8+4*i], w)
	}
	return b, nil
}

// MarshalWire returns the opaque bytes exactly as captured.
func (u *Unknown) MarshalWire() ([]byte, error) {
	if u.Size < 2 || u.Size > UnknownStorage {
		return nil, fmt.Errorf("%w: size %d", ErrOversizedAddress, u.Size)
	}
	b := make([]byte, u.Size)
	copy(b, u.Raw[:u.Size])
	return b, nil
}

// UnmarshalWire decodes a fixed native layout into the variant matching
// its family field. Families without a dedicated variant decode to
// Unknown, so decode(encode(v)) holds for every Value.
func UnmarshalWire(b []byte) (Value, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(b))
	}
	switch Family(nativeEndian.Uint16(b[0:2])) {
	case FamilyINET:
		if len(b) < SizeofIPv4 {
			return nil, fmt.Errorf("%w: inet needs %d bytes, got %d", ErrShortBuffer, SizeofIPv4, len(b))
		}
		a := &IPv4{Port: binary.BigEndian.Uint16(b[2:4])}
		copy(a.Addr[:], b[4:8])
		return a, nil
	case FamilyINET6:
		if len(b) < SizeofIPv6 {
			return nil, fmt.Errorf("%w: inet6 needs %d bytes, got %d", ErrShortBuffer, SizeofIPv6, len(b))
		}
		a := &IPv6{
			Port:     binary.BigEndian.Uint16(b[2:4]),
			FlowInfo: binary.BigEndian.Uint32(b[4:8]),
			ScopeID:  nativeEndian.Uint32(b[24:28]),
		}
		copy(a.Addr[:], b[8:24])
		return a, nil
	case FamilyUnix:
		path := b[2:]
		if i := bytes.IndexByte(path, 0); i >= 0 {
			path = path[:i]
		}
		return NewUnix(string(path))
	case FamilySystem:
		if len(b) < SizeofSystem {
			return nil, fmt.Errorf("%w: system needs %d bytes, got %d", ErrShortBuffer, SizeofSystem, len(b))
		}
		a := &System{SysAddr: nativeEndian.Uint16(b[2:4])}
		for i := range a.Reserved {
			a.Reserved[i] = nativeEndian.Uint32(b[4+4*i : 8+4*i])
		}
		return a, nil
	default:
		return NewUnknown(b)
	}
}
