//go:build linux || darwin

package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/opd-ai/sockets/sockaddr"
)

// TestResolve_NoInput tests that omitting both host and service is a
// parameter error, not a lookup attempt.
func TestResolve_NoInput(t *testing.T) {
	if _, err := Resolve(context.Background(), "", "", nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("Resolve(\"\", \"\") error = %v, want ErrNoInput", err)
	}
}

// TestResolve_NumericHostAndPort tests numeric resolution with no name
// lookups involved.
func TestResolve_NumericHostAndPort(t *testing.T) {
	infos, err := Resolve(context.Background(), "127.0.0.1", "5000", &AddrInfo{
		Flags:    FlagNumericHost | FlagNumericService,
		SockType: sockaddr.TypeStream,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("got %d candidates, want 1", len(infos))
	}

	ai := infos[0]
	if ai.Family != sockaddr.FamilyINET {
		t.Errorf("Family = %v, want inet", ai.Family)
	}
	if ai.SockType != sockaddr.TypeStream {
		t.Errorf("SockType = %v, want stream", ai.SockType)
	}
	if ai.Protocol != sockaddr.ProtocolTCP {
		t.Errorf("Protocol = %v, want tcp", ai.Protocol)
	}
	v4, ok := ai.Addr.(*sockaddr.IPv4)
	if !ok {
		t.Fatalf("Addr is %T, want *sockaddr.IPv4", ai.Addr)
	}
	if v4.Port != 5000 {
		t.Errorf("Port = %d, want 5000", v4.Port)
	}
	if v4.Addr != [4]byte{127, 0, 0, 1} {
		t.Errorf("Addr = %v, want 127.0.0.1", v4.Addr)
	}
}

// TestResolve_TypeExpansion tests that open-ended hints yield one entry
// per socket type.
func TestResolve_TypeExpansion(t *testing.T) {
	infos, err := Resolve(context.Background(), "127.0.0.1", "53", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d candidates, want stream and datagram", len(infos))
	}
	if infos[0].SockType != sockaddr.TypeStream || infos[1].SockType != sockaddr.TypeDatagram {
		t.Errorf("types = %v, %v, want stream, datagram", infos[0].SockType, infos[1].SockType)
	}
}

// TestResolve_PassiveWildcard tests AI_PASSIVE-style wildcard synthesis
// for an empty host.
func TestResolve_PassiveWildcard(t *testing.T) {
	infos, err := Resolve(context.Background(), "", "8080", &AddrInfo{
		Flags:    FlagPassive,
		Family:   sockaddr.FamilyINET,
		SockType: sockaddr.TypeStream,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("got %d candidates, want 1", len(infos))
	}
	v4, ok := infos[0].Addr.(*sockaddr.IPv4)
	if !ok {
		t.Fatalf("Addr is %T, want *sockaddr.IPv4", infos[0].Addr)
	}
	if v4.Addr != [4]byte{} {
		t.Errorf("Addr = %v, want wildcard", v4.Addr)
	}
	if v4.Port != 8080 {
		t.Errorf("Port = %d, want 8080", v4.Port)
	}
}

// TestResolve_BadService tests service validation.
func TestResolve_BadService(t *testing.T) {
	tests := []struct {
		name    string
		service string
		flags   int
	}{
		{"port out of range", "70000", 0},
		{"name under numeric flag", "http", FlagNumericService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(context.Background(), "127.0.0.1", tt.service, &AddrInfo{Flags: tt.flags})
			if !errors.Is(err, ErrInvalidService) {
				t.Errorf("Resolve() error = %v, want ErrInvalidService", err)
			}
		})
	}
}

// TestResolve_NumericHostRejectsName tests FlagNumericHost.
func TestResolve_NumericHostRejectsName(t *testing.T) {
	_, err := Resolve(context.Background(), "definitely-a-name.invalid", "80", &AddrInfo{Flags: FlagNumericHost})
	if !errors.Is(err, ErrInvalidHost) {
		t.Errorf("Resolve() error = %v, want ErrInvalidHost", err)
	}
}

// TestReverseResolve tests that missing names come back empty, never as
// errors, and that unsupported families are rejected.
func TestReverseResolve(t *testing.T) {
	ctx := context.Background()

	// A TEST-NET-1 address has no PTR record anywhere; both fields may
	// legitimately be empty and that must not be an error.
	host, service, err := ReverseResolve(ctx, &sockaddr.IPv4{Port: 80, Addr: [4]byte{192, 0, 2, 1}})
	if err != nil {
		t.Fatalf("ReverseResolve() error = %v", err)
	}
	if service != "http" {
		t.Errorf("service = %q, want %q", service, "http")
	}
	_ = host // environment-dependent, absence is fine

	if _, svc, err := ReverseResolve(ctx, &sockaddr.IPv4{Port: 49152, Addr: [4]byte{192, 0, 2, 1}}); err != nil || svc != "" {
		t.Errorf("ReverseResolve(unregistered port) = %q, %v, want empty service and nil error", svc, err)
	}

	u, _ := sockaddr.NewUnix("/tmp/rr.sock")
	host, service, err = ReverseResolve(ctx, u)
	if err != nil || host != "/tmp/rr.sock" || service != "" {
		t.Errorf("ReverseResolve(unix) = %q, %q, %v", host, service, err)
	}

	if _, _, err := ReverseResolve(ctx, &sockaddr.System{SysAddr: 1}); !errors.Is(err, sockaddr.ErrUnsupportedOperation) {
		t.Errorf("ReverseResolve(system) error = %v, want ErrUnsupportedOperation", err)
	}
}
