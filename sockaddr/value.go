//go:build linux || darwin

package sockaddr

import (
	"fmt"
	"net"
	"strconv"
)

const (
	// UnixPathMax is the conventional unix-domain path capacity. Paths
	// longer than this are a construction error, never truncated.
	UnixPathMax = 104

	// UnknownStorage is the opaque capacity reserved for unknown
	// families, sized to cover the largest native address structure
	// (sockaddr_storage).
	UnknownStorage = 128
)

// Value is the closed set of socket address encodings. Exactly the types in
// this package satisfy it; callers switch over the concrete variants
// exhaustively instead of reinterpreting raw memory.
type Value interface {
	value()

	// Family returns the address family tag of the variant.
	Family() Family

	// MarshalWire encodes the address into its fixed-size native layout.
	MarshalWire() ([]byte, error)

	// String returns a human-readable representation.
	String() string
}

// IPv4 is an AF_INET address: a 32-bit address plus a port.
type IPv4 struct {
	Port uint16
	Addr [4]byte
}

func (*IPv4) value() {}

// Family returns FamilyINET.
func (*IPv4) Family() Family { return FamilyINET }

// String returns the address in host:port form.
func (a *IPv4) String() string {
	return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(int(a.Port)))
}

// IPv6 is an AF_INET6 address: a 128-bit address, port, flow label and
// scope identifier.
type IPv6 struct {
	Port     uint16
	FlowInfo uint32
	Addr     [16]byte
	ScopeID  uint32
}

func (*IPv6) value() {}

// Family returns FamilyINET6.
func (*IPv6) Family() Family { return FamilyINET6 }

// String returns the address in [host]:port form.
func (a *IPv6) String() string {
	host := net.IP(a.Addr[:]).String()
	if a.ScopeID != 0 {
		host += "%" + strconv.FormatUint(uint64(a.ScopeID), 10)
	}
	return net.JoinHostPort(host, strconv.Itoa(int(a.Port)))
}

// Unix is an AF_UNIX (local) address: a filesystem path of at most
// UnixPathMax bytes. Construct it with NewUnix so the limit is enforced
// before any syscall sees the path.
type Unix struct {
	path [UnixPathMax]byte
	n    int
}

// NewUnix builds a unix-domain address, failing with ErrPathTooLong when
// the encoded path exceeds UnixPathMax bytes.
func NewUnix(path string) (*Unix, error) {
	if len(path) > UnixPathMax {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrPathTooLong, len(path), UnixPathMax)
	}
	u := &Unix{n: len(path)}
	copy(u.path[:], path)
	return u, nil
}

func (*Unix) value() {}

// Family returns FamilyUnix.
func (*Unix) Family() Family { return FamilyUnix }

// Path returns the stored filesystem path.
func (u *Unix) Path() string { return string(u.path[:u.n]) }

// String returns the filesystem path.
func (u *Unix) String() string { return u.Path() }

// System is a kernel system address following the Darwin AF_SYSTEM
// kernel-control layout: a 16-bit system address plus reserved words.
type System struct {
	SysAddr  uint16
	Reserved [7]uint32
}

func (*System) value() {}

// Family returns FamilySystem.
func (*System) Family() Family { return FamilySystem }

// String returns a human-readable representation.
func (a *System) String() string {
	return fmt.Sprintf("system(%d)", a.SysAddr)
}

// Unknown carries an address family this package has no dedicated variant
// for. Raw holds the complete native structure, family header included, so
// that nothing the kernel hands us is ever dropped.
type Unknown struct {
	RawFamily uint16
	Raw       [UnknownStorage]byte
	Size      int
}

// NewUnknown copies an opaque native address into an Unknown value. The
// buffer must begin with the 16-bit family field and fit UnknownStorage.
func NewUnknown(raw []byte) (*Unknown, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(raw))
	}
	if len(raw) > UnknownStorage {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrOversizedAddress, len(raw), UnknownStorage)
	}
	u := &Unknown{RawFamily: nativeEndian.Uint16(raw), Size: len(raw)}
	copy(u.Raw[:], raw)
	return u, nil
}

func (*Unknown) value() {}

// Family returns the raw family tag carried in the opaque bytes.
func (u *Unknown) Family() Family { return Family(u.RawFamily) }

// String returns a human-readable representation.
func (u *Unknown) String() string {
	return fmt.Sprintf("unknown(family=%d, %d bytes)", u.RawFamily, u.Size)
}

// Port reports the port of an address and whether the family has one.
func Port(v Value) (uint16, bool) {
	switch a := v.(type) {
	case *IPv4:
		return a.Port, true
	case *IPv6:
		return a.Port, true
	case *Unix, *System, *Unknown:
		return 0, false
	}
	return 0, false
}

// SetPort assigns the port of an IPv4 or IPv6 address. Ports are only
// meaningful for those families; every other variant fails with
// ErrUnsupportedOperation.
func SetPort(v Value, port uint16) error {
	switch a := v.(type) {
	case *IPv4:
		a.Port = port
		return nil
	case *IPv6:
		a.Port = port
		return nil
	case *Unix, *System, *Unknown:
		return fmt.Errorf("set port on %s address: %w", v.Family(), ErrUnsupportedOperation)
	}
	return fmt.Errorf("set port on %T: %w", v, ErrUnsupportedOperation)
}

// FromIP builds the matching IP variant for a stdlib address. IPv4-mapped
// addresses collapse to the IPv4 variant.
func FromIP(ip net.IP, port uint16) Value {
	if v4 := ip.To4(); v4 != nil {
		a := &IPv4{Port: port}
		copy(a.Addr[:], v4)
		return a
	}
	a := &IPv6{Port: port}
	copy(a.Addr[:], ip.To16())
	return a
}
