//go:build linux || darwin

package resolve

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sockets/sockaddr"
)

// Resolve is the getaddrinfo analogue. At least one of host and service
// must be supplied. The hints template constrains family, socket type,
// protocol and flags; a nil hints behaves like a zero value. The result
// is an owned slice, one AddrInfo per candidate address and socket type,
// in the order the platform resolver produced the addresses.
func Resolve(ctx context.Context, host, service string, hints *AddrInfo) ([]*AddrInfo, error) {
	if host == "" && service == "" {
		return nil, fmt.Errorf("resolve: %w", ErrNoInput)
	}
	if hints == nil {
		hints = &AddrInfo{}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Resolve",
		"host":     host,
		"service":  service,
		"family":   hints.Family.String(),
	}).Debug("Resolving host and service")

	port, err := lookupService(ctx, service, hints)
	if err != nil {
		return nil, err
	}

	ips, err := lookupHost(ctx, host, hints)
	if err != nil {
		return nil, err
	}

	canonical := ""
	if hints.Flags&FlagCanonName != 0 {
		canonical = canonicalName(ctx, host)
	}

	results := buildCandidates(ips, port, hints, canonical)
	if len(results) == 0 {
		return nil, fmt.Errorf("resolve %q: %w", host, ErrNoAddresses)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Resolve",
		"host":       host,
		"candidates": len(results),
	}).Debug("Resolution complete")

	return results, nil
}

// lookupService turns a service name or numeric port string into a port.
func lookupService(ctx context.Context, service string, hints *AddrInfo) (uint16, error) {
	if service == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(service); err == nil {
		if n < 0 || n > 65535 {
			return 0, fmt.Errorf("%w: port %d out of range", ErrInvalidService, n)
		}
		return uint16(n), nil
	}
	if hints.Flags&FlagNumericService != 0 {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidService, service)
	}
	n, err := net.DefaultResolver.LookupPort(ctx, hints.Network(), service)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidService, service, err)
	}
	return uint16(n), nil
}

// lookupHost turns the host string into candidate IPs. An empty host maps
// to the wildcard address with FlagPassive, loopback otherwise, matching
// getaddrinfo semantics.
func lookupHost(ctx context.Context, host string, hints *AddrInfo) ([]net.IPAddr, error) {
	if host == "" {
		if hints.Flags&FlagPassive != 0 {
			return implicitHosts(hints, net.IPv4zero, net.IPv6unspecified), nil
		}
		return implicitHosts(hints, net.IPv4(127, 0, 0, 1), net.IPv6loopback), nil
	}
	if ip := net.ParseIP(host); ip != nil {
		return []net.IPAddr{{IP: ip}}, nil
	}
	if hints.Flags&FlagNumericHost != 0 {
		return nil, fmt.Errorf("%w: %q is not numeric", ErrInvalidHost, host)
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("resolve host %q: %w", host, err)
	}
	return addrs, nil
}

// implicitHosts picks the wildcard or loopback candidates allowed by the
// family hint.
func implicitHosts(hints *AddrInfo, v4, v6 net.IP) []net.IPAddr {
	switch hints.Family {
	case sockaddr.FamilyINET:
		return []net.IPAddr{{IP: v4}}
	case sockaddr.FamilyINET6:
		return []net.IPAddr{{IP: v6}}
	default:
		return []net.IPAddr{{IP: v4}, {IP: v6}}
	}
}

// canonicalName performs the CNAME lookup behind FlagCanonName. A failed
// lookup falls back to the host as given; the flag never fails resolution.
func canonicalName(ctx context.Context, host string) string {
	if host == "" || net.ParseIP(host) != nil {
		return host
	}
	cname, err := net.DefaultResolver.LookupCNAME(ctx, host)
	if err != nil {
		return host
	}
	return strings.TrimSuffix(cname, ".")
}

// buildCandidates flattens the address list into AddrInfo values, one per
// socket type when the hints leave the type open.
func buildCandidates(ips []net.IPAddr, port uint16, hints *AddrInfo, canonical string) []*AddrInfo {
	types := []sockaddr.Type{hints.SockType}
	if hints.SockType == 0 {
		types = []sockaddr.Type{sockaddr.TypeStream, sockaddr.TypeDatagram}
	}

	var results []*AddrInfo
	for _, ip := range ips {
		value := sockaddr.FromIP(ip.IP, port)
		family := value.Family()
		if hints.Family != sockaddr.FamilyUnspec && family != hints.Family {
			continue
		}
		if v6, ok := value.(*sockaddr.IPv6); ok && ip.Zone != "" {
			if ifi, err := net.InterfaceByName(ip.Zone); err == nil {
				v6.ScopeID = uint32(ifi.Index)
			}
		}
		for _, st := range types {
			results = append(results, &AddrInfo{
				Flags:         hints.Flags,
				Family:        family,
				SockType:      st,
				Protocol:      defaultProtocol(st, hints.Protocol),
				Addr:          value,
				CanonicalName: canonical,
			})
			// getaddrinfo reports the canonical name on the first entry only
			canonical = ""
		}
	}
	return results
}

// defaultProtocol fills in the conventional protocol for a socket type
// when the hints leave it unset.
func defaultProtocol(st sockaddr.Type, hinted sockaddr.Protocol) sockaddr.Protocol {
	if hinted != sockaddr.ProtocolDefault {
		return hinted
	}
	switch st {
	case sockaddr.TypeStream:
		return sockaddr.ProtocolTCP
	case sockaddr.TypeDatagram:
		return sockaddr.ProtocolUDP
	default:
		return sockaddr.ProtocolDefault
	}
}

// ReverseResolve is the getnameinfo analogue: it maps a concrete address
// back to a host name and service name. The host half is a PTR lookup;
// the service half consults the platform service database with a
// built-in fallback table, see serviceName. Either result may be empty
// when no name exists; that is not an error. Addresses without a reverse
// form (System, Unknown) fail with sockaddr.ErrUnsupportedOperation.
func ReverseResolve(ctx context.Context, v sockaddr.Value) (host, service string, err error) {
	switch a := v.(type) {
	case *sockaddr.IPv4:
		host = reverseHost(ctx, net.IP(a.Addr[:]).String())
		service = serviceName(a.Port)
		return host, service, nil
	case *sockaddr.IPv6:
		host = reverseHost(ctx, net.IP(a.Addr[:]).String())
		service = serviceName(a.Port)
		return host, service, nil
	case *sockaddr.Unix:
		return a.Path(), "", nil
	default:
		return "", "", fmt.Errorf("reverse resolve %s address: %w", v.Family(), sockaddr.ErrUnsupportedOperation)
	}
}

// reverseHost performs the PTR lookup, reporting absence as empty.
func reverseHost(ctx context.Context, ip string) string {
	names, err := net.DefaultResolver.LookupAddr(ctx, ip)
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}
