//go:build linux || darwin

package socket

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// Common errors for socket lifecycle misuse and non-fatal conditions
var (
	// ErrClosed indicates an operation on a socket that was already
	// closed; only Close itself is legal on a closed socket
	ErrClosed = errors.New("use of closed socket")

	// ErrWouldBlock indicates a non-blocking receive found no data; the
	// caller is expected to retry, typically after a readiness wait.
	// Never produced for genuine syscall failures.
	ErrWouldBlock = errors.New("operation would block")

	// ErrNegativeBacklog indicates Listen was given a negative backlog
	ErrNegativeBacklog = errors.New("backlog must be non-negative")

	// ErrNegativeSize indicates Recv was given a negative maximum size
	ErrNegativeSize = errors.New("receive size must be non-negative")
)

// SyscallError reports a failed OS call: which operation issued it and
// the captured error number.
type SyscallError struct {
	Op    string // syscall that failed: "socket", "bind", "send", ...
	Errno unix.Errno
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Errno)
}

func (e *SyscallError) Unwrap() error {
	return e.Errno
}

// newSyscallError wraps an error returned by the unix package, which is
// always an Errno for the calls this package issues.
func newSyscallError(op string, err error) error {
	if err == nil {
		return nil
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return &SyscallError{Op: op, Errno: errno}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// AddrExhaustedError reports that every candidate address from resolution
// failed a bind or connect attempt. Errs holds one error per candidate in
// attempt order so the caller can diagnose which family or local
// condition is at fault.
type AddrExhaustedError struct {
	Op   string
	Errs []error
}

func (e *AddrExhaustedError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: all %d candidate addresses failed: %s", e.Op, len(e.Errs), strings.Join(msgs, "; "))
}

func (e *AddrExhaustedError) Unwrap() []error {
	return e.Errs
}
