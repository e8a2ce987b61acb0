//go:build linux || darwin

package sockaddr

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

// TestWire_RoundTrip tests decode(encode(v)) == v for every variant.
func TestWire_RoundTrip(t *testing.T) {
	u, err := NewUnix("/var/run/roundtrip.sock")
	if err != nil {
		t.Fatalf("NewUnix() error = %v", err)
	}

	rawUnknown := make([]byte, 20)
	nativeEndian.PutUint16(rawUnknown, 77)
	for i := 2; i < len(rawUnknown); i++ {
		rawUnknown[i] = byte(i)
	}
	unk, err := NewUnknown(rawUnknown)
	if err != nil {
		t.Fatalf("NewUnknown() error = %v", err)
	}

	tests := []struct {
		name  string
		value Value
	}{
		{
			name:  "IPv4",
			value: &IPv4{Port: 33445, Addr: [4]byte{10, 0, 0, 7}},
		},
		{
			name: "IPv6",
			value: &IPv6{
				Port:     443,
				FlowInfo: 0xdeadbe,
				Addr:     [16]byte{0x20, 0x01, 0x0d, 0xb8, 15: 0x01},
				ScopeID:  3,
			},
		},
		{
			name:  "Unix",
			value: u,
		},
		{
			name:  "System",
			value: &System{SysAddr: 2, Reserved: [7]uint32{1, 2, 3, 4, 5, 6, 7}},
		},
		{
			name:  "Unknown",
			value: unk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.value.MarshalWire()
			if err != nil {
				t.Fatalf("MarshalWire() error = %v", err)
			}
			back, err := UnmarshalWire(b)
			if err != nil {
				t.Fatalf("UnmarshalWire() error = %v", err)
			}
			if !reflect.DeepEqual(back, tt.value) {
				t.Errorf("round trip = %#v, want %#v", back, tt.value)
			}
		})
	}
}

// TestWire_PortByteOrder tests that the port field sits at the sockaddr_in
// offset in network byte order regardless of host endianness.
func TestWire_PortByteOrder(t *testing.T) {
	b, err := (&IPv4{Port: 0x1234, Addr: [4]byte{127, 0, 0, 1}}).MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire() error = %v", err)
	}
	if len(b) != SizeofIPv4 {
		t.Fatalf("len = %d, want %d", len(b), SizeofIPv4)
	}
	if b[2] != 0x12 || b[3] != 0x34 {
		t.Errorf("port bytes = %#x %#x, want 0x12 0x34", b[2], b[3])
	}
	if got := binary.BigEndian.Uint16(b[2:4]); got != 0x1234 {
		t.Errorf("network-order port = %#x, want 0x1234", got)
	}
}

// TestUnmarshalWire_ShortBuffer tests truncated layouts per family.
func TestUnmarshalWire_ShortBuffer(t *testing.T) {
	short := func(family Family, n int) []byte {
		b := make([]byte, n)
		nativeEndian.PutUint16(b, uint16(family))
		return b
	}

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"one byte", []byte{0x02}},
		{"truncated inet", short(FamilyINET, SizeofIPv4-1)},
		{"truncated inet6", short(FamilyINET6, SizeofIPv6-1)},
		{"truncated system", short(FamilySystem, SizeofSystem-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalWire(tt.buf); !errors.Is(err, ErrShortBuffer) {
				t.Errorf("UnmarshalWire() error = %v, want ErrShortBuffer", err)
			}
		})
	}
}

// TestUnmarshalWire_UnknownFamily tests that an unrecognized family is
// preserved byte for byte instead of being rejected.
func TestUnmarshalWire_UnknownFamily(t *testing.T) {
	raw := make([]byte, 12)
	nativeEndian.PutUint16(raw, 200)
	copy(raw[2:], []byte("opaque-data"))

	v, err := UnmarshalWire(raw)
	if err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	unk, ok := v.(*Unknown)
	if !ok {
		t.Fatalf("decoded %T, want *Unknown", v)
	}
	if unk.RawFamily != 200 {
		t.Errorf("RawFamily = %d, want 200", unk.RawFamily)
	}
	b, err := unk.MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire() error = %v", err)
	}
	if !reflect.DeepEqual(b, raw) {
		t.Errorf("re-encoded bytes = %v, want %v", b, raw)
	}
}

// TestWire_UnixPadding tests that trailing NUL padding never counts as
// path content.
func TestWire_UnixPadding(t *testing.T) {
	u, err := NewUnix("/tmp/pad.sock")
	if err != nil {
		t.Fatalf("NewUnix() error = %v", err)
	}
	b, err := u.MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire() error = %v", err)
	}
	if len(b) != SizeofUnix {
		t.Fatalf("len = %d, want %d", len(b), SizeofUnix)
	}
	back, err := UnmarshalWire(b)
	if err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	if back.(*Unix).Path() != "/tmp/pad.sock" {
		t.Errorf("Path() = %q, want %q", back.(*Unix).Path(), "/tmp/pad.sock")
	}
}
