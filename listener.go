//go:build linux || darwin

package sockets

import (
	"net"

	"github.com/opd-ai/sockets/sockaddr"
	"github.com/opd-ai/sockets/socket"
)

// Listener adapts a listening stream Socket to net.Listener.
type Listener struct {
	sock *socket.Socket
}

// NewListener wraps a listening stream socket. The Listener takes over
// the socket's lifetime; close it through the Listener.
func NewListener(s *socket.Socket) *Listener {
	return &Listener{sock: s}
}

// Socket exposes the underlying primitive.
func (l *Listener) Socket() *socket.Socket { return l.sock }

// Accept implements net.Listener, wrapping each accepted socket in a
// Conn.
func (l *Listener) Accept() (net.Conn, error) {
	s, err := l.sock.Accept()
	if err != nil {
		return nil, err
	}
	return NewConn(s), nil
}

// Close implements net.Listener.
func (l *Listener) Close() error {
	return l.sock.Close()
}

// Addr implements net.Listener.
func (l *Listener) Addr() net.Addr {
	v, err := l.sock.Addr()
	if err != nil {
		return nil
	}
	return sockaddr.ToNetAddr(v, "tcp")
}

var _ net.Listener = (*Listener)(nil)
