// Package resolve wraps the platform's name, service and interface lookup
// facilities and flattens their results into owned, materialized slices of
// AddrInfo values — the creation parameters a socket needs, bundled with
// one concrete sockaddr.Value.
//
// Resolve is the getaddrinfo analogue: it accepts a hostname or numeric
// address and/or a service name or port, plus hints, and returns candidate
// AddrInfo values in the order the platform resolver produced them.
// ReverseResolve is the getnameinfo analogue and Interfaces the getifaddrs
// analogue; both report missing fields as absent rather than defaulting
// them to zero.
package resolve
