// Package multiplex waits for readiness on many sockets with one blocking
// select(2)-style call. It observes descriptors owned by package socket
// without ever taking ownership of them: sockets stay open, blocking
// semantics stay whatever their owner configured.
//
// Wait mutates the given sets in place so that, on return, each set holds
// only the members whose status changed:
//
//	read := multiplex.NewSet(a, b)
//	n, err := multiplex.Wait(read, nil, nil, &timeout)
//	// read now contains only the sockets with pending data
package multiplex
