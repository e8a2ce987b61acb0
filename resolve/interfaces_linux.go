//go:build linux

package resolve

import (
	"golang.org/x/sys/unix"

	"github.com/opd-ai/sockets/sockaddr"
)

// pointToPointPeer asks the kernel for the peer address of a
// point-to-point link via SIOCGIFDSTADDR. Links without an IPv4 peer
// report nil; the enumeration itself never fails over one interface.
func pointToPointPeer(name string) sockaddr.Value {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil
	}
	defer unix.Close(fd)

	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return nil
	}
	if err := unix.IoctlIfreq(fd, unix.SIOCGIFDSTADDR, ifr); err != nil {
		return nil
	}
	ip, err := ifr.Inet4Addr()
	if err != nil {
		return nil
	}

	peer := &sockaddr.IPv4{}
	copy(peer.Addr[:], ip)
	return peer
}
