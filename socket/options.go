//go:build linux || darwin

package socket

import (
	"time"

	"golang.org/x/sys/unix"
)

// SetReuseAddress toggles SO_REUSEADDR. New sockets start with it
// enabled; the setting survives the descriptor recreation BindHost and
// ConnectHost perform between candidates.
func (s *Socket) SetReuseAddress(on bool) error {
	if s.closed {
		return ErrClosed
	}
	v := 0
	if on {
		v = 1
	}
	if err := unix.SetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, v); err != nil {
		return newSyscallError("setsockopt", err)
	}
	s.reuseAddr = on
	return nil
}

// ReuseAddress reports the current reuse setting.
func (s *Socket) ReuseAddress() bool { return s.reuseAddr }

// SetShouldBlock toggles the descriptor between blocking and non-blocking
// mode. In non-blocking mode Recv reports ErrWouldBlock instead of
// waiting, which lets a caller build its own readiness loop on top of
// package multiplex.
func (s *Socket) SetShouldBlock(block bool) error {
	if s.closed {
		return ErrClosed
	}
	if err := unix.SetNonblock(s.fd, !block); err != nil {
		return newSyscallError("fcntl", err)
	}
	return nil
}

// SetTimeout installs a kernel-level transfer timeout; option selects the
// direction (SO_RCVTIMEO or SO_SNDTIMEO). A zero duration clears it. An
// expired timeout surfaces from Recv and Send as ErrWouldBlock.
func (s *Socket) SetTimeout(option int, d time.Duration) error {
	if s.closed {
		return ErrClosed
	}
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if err := unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, option, &tv); err != nil {
		return newSyscallError("setsockopt", err)
	}
	return nil
}

// SetOption writes a raw option value. This is deliberately an escape
// hatch to the full native option surface rather than an enumerated
// subset; the caller supplies the level, option id and the exact bytes
// the option expects.
func (s *Socket) SetOption(level, name int, value []byte) error {
	if s.closed {
		return ErrClosed
	}
	if err := unix.SetsockoptString(s.fd, level, name, string(value)); err != nil {
		return newSyscallError("setsockopt", err)
	}
	return nil
}

// GetOption reads a raw option value, the counterpart of SetOption.
func (s *Socket) GetOption(level, name int) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	v, err := unix.GetsockoptString(s.fd, level, name)
	if err != nil {
		return nil, newSyscallError("getsockopt", err)
	}
	return []byte(v), nil
}
