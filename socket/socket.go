//go:build linux || darwin

package socket

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/opd-ai/sockets/resolve"
	"github.com/opd-ai/sockets/sockaddr"
)

// State tracks where a Socket sits in its lifecycle. Closed is terminal.
type State uint8

const (
	// StateOpen is a freshly created descriptor, neither bound nor
	// connected.
	StateOpen State = iota
	// StateBound follows a successful bind.
	StateBound
	// StateConnected follows a successful connect.
	StateConnected
	// StateListening follows Listen on a stream socket.
	StateListening
	// StateClosed follows Close; no further operation is legal.
	StateClosed
)

// String returns a human-readable representation of the State.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateBound:
		return "bound"
	case StateConnected:
		return "connected"
	case StateListening:
		return "listening"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// ShutdownMode selects which direction Shutdown disables.
type ShutdownMode int

const (
	// PreventRead disables further receives (SHUT_RD).
	PreventRead ShutdownMode = unix.SHUT_RD
	// PreventWrite disables further sends (SHUT_WR).
	PreventWrite ShutdownMode = unix.SHUT_WR
	// PreventBoth disables both directions (SHUT_RDWR).
	PreventBoth ShutdownMode = unix.SHUT_RDWR
)

// Socket owns one OS descriptor together with the AddrInfo it was created
// from. See the package documentation for the ownership and blocking
// model.
type Socket struct {
	fd     int
	family sockaddr.Family
	sotype sockaddr.Type
	proto  sockaddr.Protocol

	info      *resolve.AddrInfo
	state     State
	closed    bool
	reuseAddr bool
}

// New allocates a descriptor for the given family, type and protocol.
// Address reuse is enabled by default so rapid bind/rebind cycles in
// server and test scenarios do not spuriously fail with "address in use";
// SetReuseAddress(false) restores the kernel default.
func New(family sockaddr.Family, sotype sockaddr.Type, proto sockaddr.Protocol) (*Socket, error) {
	fd, err := newDescriptor(family, sotype, proto, true)
	if err != nil {
		return nil, err
	}

	s := &Socket{
		fd:        fd,
		family:    family,
		sotype:    sotype,
		proto:     proto,
		state:     StateOpen,
		reuseAddr: true,
	}
	runtime.SetFinalizer(s, (*Socket).finalize)

	logrus.WithFields(logrus.Fields{
		"function": "New",
		"fd":       fd,
		"family":   family.String(),
		"type":     sotype.String(),
	}).Debug("Socket created")

	return s, nil
}

// NewFromAddrInfo allocates a descriptor from resolution output and keeps
// the AddrInfo for the later bind or connect.
func NewFromAddrInfo(info *resolve.AddrInfo) (*Socket, error) {
	s, err := New(info.Family, info.SockType, info.Protocol)
	if err != nil {
		return nil, err
	}
	s.info = info.Clone()
	return s, nil
}

// newDescriptor performs the socket(2) call plus the default option setup,
// closing the descriptor again on any error path.
func newDescriptor(family sockaddr.Family, sotype sockaddr.Type, proto sockaddr.Protocol, reuse bool) (int, error) {
	fd, err := unix.Socket(int(family), int(sotype), int(proto))
	if err != nil {
		return -1, newSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)

	if reuse {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			_ = unix.Close(fd)
			return -1, newSyscallError("setsockopt", err)
		}
	}
	return fd, nil
}

// Fd exposes the raw descriptor for readiness multiplexing. The caller
// observes it only; ownership stays with the Socket.
func (s *Socket) Fd() int { return s.fd }

// Info returns the AddrInfo associated with the socket, nil when the
// socket was created from bare parameters and never bound or connected
// through resolution.
func (s *Socket) Info() *resolve.AddrInfo { return s.info }

// State reports the lifecycle state.
func (s *Socket) State() State { return s.state }

// Type reports the socket type the descriptor was created with.
func (s *Socket) Type() sockaddr.Type { return s.sotype }

// Listen marks a stream socket as passive. The backlog must be
// non-negative; everything else is forwarded to the OS.
func (s *Socket) Listen(backlog int) error {
	if s.closed {
		return ErrClosed
	}
	if backlog < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeBacklog, backlog)
	}
	if err := unix.Listen(s.fd, backlog); err != nil {
		return newSyscallError("listen", err)
	}
	s.state = StateListening
	return nil
}

// Accept blocks until a pending connection exists and returns a new
// Socket owning the new descriptor, carrying a copy of the listener's
// AddrInfo with the peer's address substituted in. On a non-blocking
// listener with nothing pending it fails with ErrWouldBlock.
func (s *Socket) Accept() (*Socket, error) {
	if s.closed {
		return nil, ErrClosed
	}

	nfd, sa, err := unix.Accept(s.fd)
	for err == unix.EINTR {
		nfd, sa, err = unix.Accept(s.fd)
	}
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return nil, fmt.Errorf("accept: %w", ErrWouldBlock)
	}
	if err != nil {
		return nil, newSyscallError("accept", err)
	}
	unix.CloseOnExec(nfd)

	info := s.info.Clone()
	if info == nil {
		info = &resolve.AddrInfo{Family: s.family, SockType: s.sotype, Protocol: s.proto}
	}
	if peer, err := sockaddr.FromSockaddr(sa); err == nil {
		info.Addr = peer
	}

	accepted := &Socket{
		fd:        nfd,
		family:    s.family,
		sotype:    s.sotype,
		proto:     s.proto,
		info:      info,
		state:     StateConnected,
		reuseAddr: s.reuseAddr,
	}
	runtime.SetFinalizer(accepted, (*Socket).finalize)

	logrus.WithFields(logrus.Fields{
		"function":    "Socket.Accept",
		"listener_fd": s.fd,
		"fd":          nfd,
	}).Debug("Connection accepted")

	return accepted, nil
}

// Shutdown disables further transfers in the given direction without
// releasing the descriptor; it is independent of Close.
func (s *Socket) Shutdown(how ShutdownMode) error {
	if s.closed {
		return ErrClosed
	}
	if err := unix.Shutdown(s.fd, int(how)); err != nil {
		return newSyscallError("shutdown", err)
	}
	return nil
}

// Close releases the descriptor. It is idempotent: the second and later
// calls return nil without issuing another syscall.
func (s *Socket) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.state = StateClosed
	runtime.SetFinalizer(s, nil)

	logrus.WithFields(logrus.Fields{
		"function": "Socket.Close",
		"fd":       s.fd,
	}).Debug("Closing socket")

	if err := unix.Close(s.fd); err != nil {
		return newSyscallError("close", err)
	}
	return nil
}

// finalize is the implicit cleanup path for sockets dropped without
// Close. Cleanup-time failures are swallowed; they must never surface
// over an already-failing or already-successful path.
func (s *Socket) finalize() {
	if !s.closed {
		s.closed = true
		s.state = StateClosed
		_ = unix.Close(s.fd)
	}
}

// Addr reports the local address the descriptor is bound to.
func (s *Socket) Addr() (sockaddr.Value, error) {
	if s.closed {
		return nil, ErrClosed
	}
	sa, err := unix.Getsockname(s.fd)
	if err != nil {
		return nil, newSyscallError("getsockname", err)
	}
	return sockaddr.FromSockaddr(sa)
}

// Peer reports the remote address of a connected descriptor.
func (s *Socket) Peer() (sockaddr.Value, error) {
	if s.closed {
		return nil, ErrClosed
	}
	sa, err := unix.Getpeername(s.fd)
	if err != nil {
		return nil, newSyscallError("getpeername", err)
	}
	return sockaddr.FromSockaddr(sa)
}
