//go:build linux || darwin

package multiplex

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/sys/unix"

	"github.com/opd-ai/sockets/socket"
)

// Set is a collection of sockets keyed by descriptor, the unit Wait
// operates on. The zero value is not usable; construct sets with NewSet.
type Set struct {
	members map[int]*socket.Socket
}

// NewSet builds a set from the given sockets.
func NewSet(socks ...*socket.Socket) *Set {
	s := &Set{members: make(map[int]*socket.Socket, len(socks))}
	for _, sock := range socks {
		s.Add(sock)
	}
	return s
}

// Add inserts a socket, replacing any previous member with the same
// descriptor.
func (s *Set) Add(sock *socket.Socket) {
	s.members[sock.Fd()] = sock
}

// Remove drops a socket from the set.
func (s *Set) Remove(sock *socket.Socket) {
	delete(s.members, sock.Fd())
}

// Contains reports membership.
func (s *Set) Contains(sock *socket.Socket) bool {
	_, ok := s.members[sock.Fd()]
	return ok
}

// Len reports the member count.
func (s *Set) Len() int {
	return len(s.members)
}

// Sockets returns the members ordered by descriptor.
func (s *Set) Sockets() []*socket.Socket {
	out := make([]*socket.Socket, 0, len(s.members))
	for _, sock := range s.members {
		out = append(out, sock)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fd() < out[j].Fd() })
	return out
}

// Wait blocks until a member of any set becomes ready for its direction
// (read, write, or exceptional condition) or the timeout elapses. A nil
// timeout blocks indefinitely; a zero timeout polls and returns at once.
// Nil or empty sets are simply absent from the wait.
//
// On success the sets are mutated in place to hold only the ready subset
// and the count of descriptors whose status changed is returned. On
// failure the sets are left unchanged.
func Wait(read, write, except *Set, timeout *time.Duration) (int, error) {
	highest := -1
	rs := fdSetOf(read, &highest)
	ws := fdSetOf(write, &highest)
	es := fdSetOf(except, &highest)

	var tv *unix.Timeval
	if timeout != nil {
		t := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &t
	}

	n, err := unix.Select(highest+1, rs, ws, es, tv)
	if err != nil {
		if errno, ok := err.(unix.Errno); ok {
			return 0, &socket.SyscallError{Op: "select", Errno: errno}
		}
		return 0, fmt.Errorf("select: %w", err)
	}

	prune(read, rs)
	prune(write, ws)
	prune(except, es)
	return n, nil
}

// fdSetOf renders a Set as the kernel bitmap, tracking the highest
// descriptor seen across all sets.
func fdSetOf(s *Set, highest *int) *unix.FdSet {
	if s == nil || len(s.members) == 0 {
		return nil
	}
	fds := &unix.FdSet{}
	for fd := range s.members {
		fds.Set(fd)
		if fd > *highest {
			*highest = fd
		}
	}
	return fds
}

// prune drops every member the kernel did not mark ready.
func prune(s *Set, fds *unix.FdSet) {
	if s == nil || fds == nil {
		return
	}
	for fd := range s.members {
		if !fds.IsSet(fd) {
			delete(s.members, fd)
		}
	}
}
