//go:build linux || darwin

package sockaddr

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"
)

// ToSockaddr converts a Value into the unix.Sockaddr the syscall layer
// consumes. System and Unknown addresses have no syscall-facing form here
// and fail with ErrUnsupportedOperation.
func ToSockaddr(v Value) (unix.Sockaddr, error) {
	switch a := v.(type) {
	case *IPv4:
		return &unix.SockaddrInet4{Port: int(a.Port), Addr: a.Addr}, nil
	case *IPv6:
		return &unix.SockaddrInet6{Port: int(a.Port), ZoneId: a.ScopeID, Addr: a.Addr}, nil
	case *Unix:
		return &unix.SockaddrUnix{Name: a.Path()}, nil
	case *System, *Unknown:
		return nil, fmt.Errorf("%s address cannot back a descriptor: %w", v.Family(), ErrUnsupportedOperation)
	}
	return nil, fmt.Errorf("convert %T: %w", v, ErrUnsupportedOperation)
}

// FromSockaddr converts a kernel-returned unix.Sockaddr into a Value. A
// nil sockaddr (connected stream sockets report no per-message peer)
// yields a nil Value.
func FromSockaddr(sa unix.Sockaddr) (Value, error) {
	switch s := sa.(type) {
	case nil:
		return nil, nil
	case *unix.SockaddrInet4:
		return &IPv4{Port: uint16(s.Port), Addr: s.Addr}, nil
	case *unix.SockaddrInet6:
		return &IPv6{Port: uint16(s.Port), ScopeID: s.ZoneId, Addr: s.Addr}, nil
	case *unix.SockaddrUnix:
		return NewUnix(s.Name)
	default:
		return nil, fmt.Errorf("convert %T: %w", sa, ErrUnsupportedOperation)
	}
}

// ToNetAddr converts a Value to a net.Addr for interoperability with code
// built on the standard library interfaces. Stream-flavored networks map
// to TCP addresses, everything else IP-based maps to UDP. System and
// Unknown addresses have no net.Addr form and yield nil.
func ToNetAddr(v Value, network string) net.Addr {
	switch a := v.(type) {
	case *IPv4:
		return ipNetAddr(net.IP(a.Addr[:]), int(a.Port), "", network)
	case *IPv6:
		zone := ""
		if a.ScopeID != 0 {
			if ifi, err := net.InterfaceByIndex(int(a.ScopeID)); err == nil {
				zone = ifi.Name
			} else {
				zone = strconv.FormatUint(uint64(a.ScopeID), 10)
			}
		}
		return ipNetAddr(net.IP(a.Addr[:]), int(a.Port), zone, network)
	case *Unix:
		return &net.UnixAddr{Name: a.Path(), Net: "unix"}
	case *System, *Unknown:
		return nil
	}
	return nil
}

func ipNetAddr(ip net.IP, port int, zone, network string) net.Addr {
	if network == "tcp" || network == "tcp4" || network == "tcp6" {
		return &net.TCPAddr{IP: ip, Port: port, Zone: zone}
	}
	return &net.UDPAddr{IP: ip, Port: port, Zone: zone}
}
