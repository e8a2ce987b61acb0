//go:build linux || darwin

package socket

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/opd-ai/sockets/resolve"
	"github.com/opd-ai/sockets/sockaddr"
)

// Bind assigns the local address directly, with no resolution and no
// retry: a failure surfaces the single errno.
func (s *Socket) Bind(v sockaddr.Value) error {
	if s.closed {
		return ErrClosed
	}
	sa, err := sockaddr.ToSockaddr(v)
	if err != nil {
		return err
	}
	if err := unix.Bind(s.fd, sa); err != nil {
		return newSyscallError("bind", err)
	}
	s.state = StateBound
	s.recordAddr(v)
	return nil
}

// Connect establishes the remote address directly, with no resolution and
// no retry.
func (s *Socket) Connect(v sockaddr.Value) error {
	if s.closed {
		return ErrClosed
	}
	sa, err := sockaddr.ToSockaddr(v)
	if err != nil {
		return err
	}
	err = unix.Connect(s.fd, sa)
	for err == unix.EINTR {
		err = unix.Connect(s.fd, sa)
	}
	if err != nil {
		return newSyscallError("connect", err)
	}
	s.state = StateConnected
	s.recordAddr(v)
	return nil
}

// BindHost resolves the host to a candidate list and binds to the first
// usable candidate; see eachCandidate for the retry policy.
func (s *Socket) BindHost(ctx context.Context, host string, port uint16) error {
	return s.eachCandidate(ctx, host, port, "bind", StateBound, unix.Bind)
}

// ConnectHost resolves the host to a candidate list and connects to the
// first usable candidate; identical policy to BindHost.
func (s *Socket) ConnectHost(ctx context.Context, host string, port uint16) error {
	return s.eachCandidate(ctx, host, port, "connect", StateConnected, func(fd int, sa unix.Sockaddr) error {
		err := unix.Connect(fd, sa)
		for err == unix.EINTR {
			err = unix.Connect(fd, sa)
		}
		return err
	})
}

// eachCandidate resolves the host to a candidate list and hands it to
// tryCandidates.
func (s *Socket) eachCandidate(ctx context.Context, host string, port uint16, op string, success State, call func(int, unix.Sockaddr) error) error {
	if s.closed {
		return ErrClosed
	}

	hints := &resolve.AddrInfo{SockType: s.sotype, Protocol: s.proto}
	if op == "bind" {
		hints.Flags = resolve.FlagPassive
	}
	candidates, err := resolve.Resolve(ctx, host, strconv.Itoa(int(port)), hints)
	if err != nil {
		return err
	}
	return s.tryCandidates(candidates, op, success, call)
}

// tryCandidates attempts every candidate in order until one succeeds. A
// descriptor that failed an attempt is discarded and replaced with a
// fresh one before the next candidate — a half-bound descriptor is not
// reusable, least of all across address families. Every errno seen is
// accumulated; exhausting the list fails with AddrExhaustedError.
func (s *Socket) tryCandidates(candidates []*resolve.AddrInfo, op string, success State, call func(int, unix.Sockaddr) error) error {
	var errs []error
	for _, ai := range candidates {
		sa, err := sockaddr.ToSockaddr(ai.Addr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if s.family != ai.Family || s.state != StateOpen {
			if err := s.recreate(ai.Family); err != nil {
				errs = append(errs, err)
				continue
			}
		}

		if err := call(s.fd, sa); err != nil {
			logrus.WithFields(logrus.Fields{
				"function":  "Socket.tryCandidates",
				"operation": op,
				"candidate": ai.Addr.String(),
				"error":     err.Error(),
			}).Debug("Candidate failed")
			errs = append(errs, newSyscallError(op, err))
			// the descriptor participated in a failed attempt; replace
			// it so the next candidate starts clean
			if rerr := s.recreate(ai.Family); rerr != nil {
				errs = append(errs, rerr)
			}
			continue
		}

		s.state = success
		s.info = ai
		return nil
	}

	return &AddrExhaustedError{Op: op, Errs: errs}
}

// recreate is the explicit close-and-reallocate transition used between
// candidate attempts. The close error of the discarded descriptor is
// swallowed; the socket returns to StateOpen in the requested family with
// its reuse setting re-applied.
func (s *Socket) recreate(family sockaddr.Family) error {
	fd, err := newDescriptor(family, s.sotype, s.proto, s.reuseAddr)
	if err != nil {
		return err
	}
	_ = unix.Close(s.fd)
	s.fd = fd
	s.family = family
	s.state = StateOpen
	return nil
}

// recordAddr keeps the AddrInfo in step with the descriptor after a
// direct bind or connect.
func (s *Socket) recordAddr(v sockaddr.Value) {
	if s.info == nil {
		s.info = &resolve.AddrInfo{Family: s.family, SockType: s.sotype, Protocol: s.proto}
	}
	s.info.Addr = v
}
