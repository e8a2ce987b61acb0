//go:build linux || darwin

package resolve

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sockets/sockaddr"
)

// InterfaceInfo describes one address of one local network interface.
// Optional fields are nil when the interface type does not carry them;
// they are never defaulted to zero addresses.
type InterfaceInfo struct {
	Name  string
	Index int
	Flags net.Flags

	// Addr is the interface address, nil for interfaces with no
	// configured address.
	Addr sockaddr.Value
	// Netmask is the network mask when the address carries one.
	Netmask sockaddr.Value
	// Broadcast is the broadcast address on broadcast-capable IPv4
	// interfaces.
	Broadcast sockaddr.Value
	// Destination is the peer address on point-to-point links, nil
	// everywhere else and on platforms that do not expose it.
	Destination sockaddr.Value
}

// Interfaces is the getifaddrs analogue: it enumerates local network
// interfaces, one record per configured address, plus one bare record for
// interfaces with no address.
func Interfaces() ([]*InterfaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("enumerate interfaces: %w", err)
	}

	var results []*InterfaceInfo
	for _, ifi := range ifaces {
		addrs, err := ifi.Addrs()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":  "Interfaces",
				"interface": ifi.Name,
				"error":     err.Error(),
			}).Debug("Skipping addresses of interface")
			addrs = nil
		}

		if len(addrs) == 0 {
			results = append(results, &InterfaceInfo{
				Name:  ifi.Name,
				Index: ifi.Index,
				Flags: ifi.Flags,
			})
			continue
		}

		for _, addr := range addrs {
			results = append(results, interfaceRecord(ifi, addr))
		}
	}
	return results, nil
}

// interfaceRecord builds the record for one interface address, deriving
// the optional netmask and broadcast fields where they exist.
func interfaceRecord(ifi net.Interface, addr net.Addr) *InterfaceInfo {
	info := &InterfaceInfo{
		Name:  ifi.Name,
		Index: ifi.Index,
		Flags: ifi.Flags,
	}

	ipnet, ok := addr.(*net.IPNet)
	if !ok {
		if ipaddr, ok := addr.(*net.IPAddr); ok {
			info.Addr = sockaddr.FromIP(ipaddr.IP, 0)
		}
		return info
	}

	info.Addr = sockaddr.FromIP(ipnet.IP, 0)
	info.Netmask = maskValue(ipnet)

	if ifi.Flags&net.FlagBroadcast != 0 {
		if bcast := broadcastOf(ipnet); bcast != nil {
			info.Broadcast = bcast
		}
	}
	if ifi.Flags&net.FlagPointToPoint != 0 {
		info.Destination = pointToPointPeer(ifi.Name)
	}
	return info
}

// maskValue renders the network mask in the same family as the address.
func maskValue(ipnet *net.IPNet) sockaddr.Value {
	if len(ipnet.Mask) == 0 {
		return nil
	}
	return sockaddr.FromIP(net.IP(ipnet.Mask), 0)
}

// broadcastOf computes addr | ^mask for IPv4 networks. IPv6 has no
// broadcast addresses.
func broadcastOf(ipnet *net.IPNet) sockaddr.Value {
	ip4 := ipnet.IP.To4()
	if ip4 == nil || len(ipnet.Mask) != net.IPv4len {
		return nil
	}
	b := &sockaddr.IPv4{}
	for i := 0; i < net.IPv4len; i++ {
		b.Addr[i] = ip4[i] | ^ipnet.Mask[i]
	}
	return b
}
