//go:build linux || darwin

package resolve

import "errors"

// Common errors for resolution input validation
var (
	// ErrNoInput indicates neither a host nor a service was supplied
	ErrNoInput = errors.New("at least one of host and service is required")

	// ErrNoAddresses indicates resolution completed without producing
	// any usable candidate
	ErrNoAddresses = errors.New("no addresses found")

	// ErrInvalidService indicates the service is not a known name or a
	// port in the range 0-65535
	ErrInvalidService = errors.New("invalid service")

	// ErrInvalidHost indicates the host is not numeric although numeric
	// resolution was requested
	ErrInvalidHost = errors.New("invalid host")
)
