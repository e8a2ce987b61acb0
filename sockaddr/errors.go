//go:build linux || darwin

package sockaddr

import "errors"

// Common errors for address construction and conversion
var (
	// ErrUnsupportedOperation indicates the operation is not defined for
	// the address family, such as setting a port on a unix-domain address
	ErrUnsupportedOperation = errors.New("operation not supported for address family")

	// ErrPathTooLong indicates a unix-domain path exceeds UnixPathMax
	ErrPathTooLong = errors.New("unix socket path too long")

	// ErrShortBuffer indicates a wire buffer is too small to hold the
	// fixed layout for its family
	ErrShortBuffer = errors.New("buffer too short for address layout")

	// ErrOversizedAddress indicates a raw address exceeds the opaque
	// storage reserved for unknown families
	ErrOversizedAddress = errors.New("raw address exceeds opaque storage")
)
