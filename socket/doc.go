// Package socket drives one OS descriptor through the BSD socket
// lifecycle: creation, binding or connecting, listening, accepting,
// partial-transfer I/O, shutdown and teardown.
//
// # Ownership
//
// A Socket exclusively owns its descriptor. Exactly one Socket holds a
// given descriptor at a time; Accept transfers ownership of a fresh
// descriptor into a fresh Socket and never aliases the listener's handle.
// Close releases the descriptor and is idempotent. A Socket that is
// garbage collected without Close gets a best-effort close whose error is
// swallowed, the same way the standard library treats its net descriptors.
//
// # Blocking Model
//
// Every operation is synchronous and blocks the calling goroutine until
// its syscall completes or fails. There is no internal scheduler; drive
// many sockets from one goroutine with package multiplex, or dedicate a
// goroutine per socket. A Socket is single-owner: concurrent calls on the
// same Socket require external synchronization. The only way to unblock a
// pending call is closing the descriptor from elsewhere, which races with
// the in-flight syscall and is a caller obligation, not a guarantee.
//
// # Host-based Binding
//
// BindHost and ConnectHost resolve the host to a candidate list and try
// each candidate in order. A descriptor that failed a bind or connect is
// not reusable across address families, so each failed attempt discards
// the descriptor and allocates a fresh one; every per-candidate error is
// retained and surfaced in AddrExhaustedError when the list runs out.
package socket
