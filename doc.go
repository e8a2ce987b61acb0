// Package sockets is a host-level networking primitive layer: it creates,
// configures and drives BSD-style sockets (stream, datagram, unix-domain,
// raw) and performs address resolution, unifying the incompatible
// wire-level address families behind one polymorphic model.
//
// The layer is split into four focused packages plus this facade:
//
//   - sockaddr models the address families as a closed sum type with
//     lossless conversions to and from the native fixed-size layouts;
//   - resolve wraps name, service and interface lookup, producing
//     AddrInfo values a socket is constructed from;
//   - socket owns one descriptor and drives it through creation, binding
//     or connecting, accepting, partial-transfer I/O and teardown;
//   - multiplex waits for readiness on many sockets with one call.
//
// # Getting Started
//
// Resolve, construct, connect:
//
//	listener, err := sockets.ListenStream(ctx, "", "9000", sockets.DefaultBacklog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer listener.Close()
//
//	client, err := sockets.DialStream(ctx, "localhost", "9000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.Send([]byte("PING"), 0, 0)
//
// Code built against the standard library interfaces can wrap the
// primitives with NewConn and NewListener, which adapt a connected or
// listening Socket to net.Conn and net.Listener.
//
// The layer is synchronous and blocking throughout: concurrency, if any,
// belongs to the caller, either one goroutine per socket or a readiness
// loop over package multiplex. There is no transport protocol, no
// reliability layer and no TLS here; those are concerns layered on top.
package sockets
