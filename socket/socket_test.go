//go:build linux || darwin

package socket

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/opd-ai/sockets/sockaddr"
)

func loopbackStream(t *testing.T) *Socket {
	t.Helper()
	s, err := New(sockaddr.FamilyINET, sockaddr.TypeStream, sockaddr.ProtocolTCP)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// listenLoopback binds a stream socket to an ephemeral loopback port and
// returns it together with the concrete bound address.
func listenLoopback(t *testing.T) (*Socket, *sockaddr.IPv4) {
	t.Helper()
	s := loopbackStream(t)
	require.NoError(t, s.Bind(&sockaddr.IPv4{Addr: [4]byte{127, 0, 0, 1}}))
	require.NoError(t, s.Listen(8))

	bound, err := s.Addr()
	require.NoError(t, err)
	v4, ok := bound.(*sockaddr.IPv4)
	require.True(t, ok, "bound address is %T", bound)
	require.NotZero(t, v4.Port)
	return s, v4
}

// TestLifecycleStates walks the state machine through its transitions.
func TestLifecycleStates(t *testing.T) {
	s := loopbackStream(t)
	require.Equal(t, StateOpen, s.State())

	require.NoError(t, s.Bind(&sockaddr.IPv4{Addr: [4]byte{127, 0, 0, 1}}))
	require.Equal(t, StateBound, s.State())

	require.NoError(t, s.Listen(1))
	require.Equal(t, StateListening, s.State())

	require.NoError(t, s.Close())
	require.Equal(t, StateClosed, s.State())
}

// TestListen_NegativeBacklog tests backlog validation before any syscall.
func TestListen_NegativeBacklog(t *testing.T) {
	s := loopbackStream(t)
	err := s.Listen(-1)
	require.ErrorIs(t, err, ErrNegativeBacklog)
}

// TestClose_Idempotent tests that a double close issues no second
// syscall and reports no second error.
func TestClose_Idempotent(t *testing.T) {
	s, err := New(sockaddr.FamilyINET, sockaddr.TypeDatagram, sockaddr.ProtocolUDP)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

// TestClosedSocket_Misuse tests that everything but Close fails with
// ErrClosed on a closed socket.
func TestClosedSocket_Misuse(t *testing.T) {
	s, err := New(sockaddr.FamilyINET, sockaddr.TypeStream, sockaddr.ProtocolTCP)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	addr := &sockaddr.IPv4{Port: 1, Addr: [4]byte{127, 0, 0, 1}}

	require.ErrorIs(t, s.Bind(addr), ErrClosed)
	require.ErrorIs(t, s.Connect(addr), ErrClosed)
	require.ErrorIs(t, s.Listen(1), ErrClosed)
	_, err = s.Accept()
	require.ErrorIs(t, err, ErrClosed)
	_, err = s.Send([]byte("x"), 0, 0)
	require.ErrorIs(t, err, ErrClosed)
	_, err = s.Recv(1, 0)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Shutdown(PreventBoth), ErrClosed)
	require.ErrorIs(t, s.SetReuseAddress(true), ErrClosed)
	_, err = s.Addr()
	require.ErrorIs(t, err, ErrClosed)
}

// TestAccept_IndependentDescriptor tests that accept hands out a new
// descriptor and that closing the accepted socket leaves the listener
// able to keep accepting.
func TestAccept_IndependentDescriptor(t *testing.T) {
	listener, addr := listenLoopback(t)

	dial := func() *Socket {
		c := loopbackStream(t)
		require.NoError(t, c.Connect(addr))
		return c
	}

	c1 := dial()
	p1, err := listener.Accept()
	require.NoError(t, err)
	require.NotEqual(t, listener.Fd(), p1.Fd())
	require.Equal(t, StateConnected, p1.State())

	// the accepted socket carries the peer's concrete address
	require.NotNil(t, p1.Info())
	peer, ok := p1.Info().Addr.(*sockaddr.IPv4)
	require.True(t, ok)
	require.Equal(t, [4]byte{127, 0, 0, 1}, peer.Addr)

	require.NoError(t, p1.Close())
	require.NoError(t, c1.Close())

	c2 := dial()
	p2, err := listener.Accept()
	require.NoError(t, err)
	require.NoError(t, p2.Close())
	require.NoError(t, c2.Close())
}

// TestGetSetOption tests the raw option escape hatch against SO_REUSEADDR.
func TestGetSetOption(t *testing.T) {
	s := loopbackStream(t)

	require.NoError(t, s.SetReuseAddress(false))
	require.False(t, s.ReuseAddress())
	require.NoError(t, s.SetReuseAddress(true))
	require.True(t, s.ReuseAddress())

	// SO_KEEPALIVE via the raw surface: 4-byte native int
	require.NoError(t, s.SetOption(unix.SOL_SOCKET, unix.SO_KEEPALIVE, []byte{1, 0, 0, 0}))
	v, err := s.GetOption(unix.SOL_SOCKET, unix.SO_KEEPALIVE)
	require.NoError(t, err)
	require.NotEmpty(t, v)
	require.NotZero(t, v[0])
}
