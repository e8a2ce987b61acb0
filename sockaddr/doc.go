// Package sockaddr models the socket address families used by the rest of
// the library as one closed sum type, Value, and converts each variant
// losslessly to and from the platform's fixed-size wire layout.
//
// # Address Model
//
// The supported encodings are IPv4, IPv6, unix-domain paths, kernel system
// addresses, and an opaque Unknown catch-all. Unknown exists so that no
// address family handed to us by the kernel is ever silently dropped: a
// family this package does not understand round-trips through Unknown with
// its raw bytes intact.
//
// Every variant satisfies:
//
//	type Value interface {
//	    Family() Family
//	    MarshalWire() ([]byte, error)
//	    String() string
//	}
//
// and UnmarshalWire is the inverse of MarshalWire for all of them:
//
//	v := &sockaddr.IPv4{Port: 8080, Addr: [4]byte{127, 0, 0, 1}}
//	b, _ := v.MarshalWire()
//	back, _ := sockaddr.UnmarshalWire(b) // == v
//
// # Wire Layout
//
// The layouts follow the native sockaddr structures: a 16-bit family field
// in host byte order, the 16-bit port (where the family has one) in network
// byte order, then the family-specific payload. These are bit-exact interop
// boundaries with any peer using the native stack.
//
// Ports only exist for IPv4 and IPv6; SetPort on any other variant fails
// with ErrUnsupportedOperation rather than writing into reserved bytes.
package sockaddr
