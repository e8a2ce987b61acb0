//go:build linux || darwin

package resolve

import (
	"strings"
	"testing"
)

const sampleServices = `# Network services, Internet style
tcpmux		1/tcp
echo		7/tcp
echo		7/udp
ssh		22/tcp				# SSH Remote Login Protocol
domain		53/tcp
domain		53/udp
http		80/tcp		www		# WorldWideWeb HTTP
# https 8443/tcp commented out entirely
garbage-line-without-port
postgresql	5432/tcp	postgres
`

// TestScanServices tests the services(5) parser against comments,
// aliases and malformed lines.
func TestScanServices(t *testing.T) {
	tests := []struct {
		name string
		port uint16
		want string
	}{
		{"first record wins", 7, "echo"},
		{"trailing comment stripped", 22, "ssh"},
		{"aliases ignored", 80, "http"},
		{"commented-out record invisible", 8443, ""},
		{"alias after name", 5432, "postgresql"},
		{"unregistered port", 49152, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanServices(strings.NewReader(sampleServices), tt.port); got != tt.want {
				t.Errorf("scanServices(%d) = %q, want %q", tt.port, got, tt.want)
			}
		})
	}
}

// TestServiceName tests that the lookup answers for well-known ports
// whether or not the host has a service database, and stays empty for
// dynamic ports.
func TestServiceName(t *testing.T) {
	if got := serviceName(80); got != "http" {
		t.Errorf("serviceName(80) = %q, want %q", got, "http")
	}
	if got := serviceName(49152); got != "" {
		t.Errorf("serviceName(49152) = %q, want empty", got)
	}
}

// TestServiceFromFile_Missing tests that an absent database degrades to
// no answer instead of an error.
func TestServiceFromFile_Missing(t *testing.T) {
	if got := serviceFromFile("/nonexistent/services", 80); got != "" {
		t.Errorf("serviceFromFile(missing) = %q, want empty", got)
	}
}
