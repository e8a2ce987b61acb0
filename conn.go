//go:build linux || darwin

package sockets

import (
	"errors"
	"io"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/opd-ai/sockets/sockaddr"
	"github.com/opd-ai/sockets/socket"
)

// Conn adapts a connected stream Socket to net.Conn for code built on
// the standard library interfaces. Deadlines are implemented with the
// kernel's SO_RCVTIMEO and SO_SNDTIMEO options, so a deadline converts
// to a per-call timeout at the moment it is set.
type Conn struct {
	sock *socket.Socket
}

// NewConn wraps a connected stream socket. The Conn takes over the
// socket's lifetime; close it through the Conn.
func NewConn(s *socket.Socket) *Conn {
	return &Conn{sock: s}
}

// Socket exposes the underlying primitive, for options or multiplexing.
func (c *Conn) Socket() *socket.Socket { return c.sock }

// Read implements net.Conn. A peer that shut down writing reads as
// io.EOF; an expired read deadline reads as os.ErrDeadlineExceeded.
func (c *Conn) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	msg, err := c.sock.Recv(len(b), 0)
	if err != nil {
		if errors.Is(err, socket.ErrWouldBlock) {
			return 0, os.ErrDeadlineExceeded
		}
		return 0, err
	}
	if msg == nil {
		return 0, io.EOF
	}
	return copy(b, msg.Data), nil
}

// Write implements net.Conn, transmitting the whole buffer.
func (c *Conn) Write(b []byte) (int, error) {
	n, err := c.sock.Send(b, 0, 0)
	if err != nil && errors.Is(err, socket.ErrWouldBlock) {
		return n, os.ErrDeadlineExceeded
	}
	return n, err
}

// Close implements net.Conn.
func (c *Conn) Close() error {
	return c.sock.Close()
}

// LocalAddr implements net.Conn.
func (c *Conn) LocalAddr() net.Addr {
	v, err := c.sock.Addr()
	if err != nil {
		return nil
	}
	return sockaddr.ToNetAddr(v, c.network())
}

// RemoteAddr implements net.Conn.
func (c *Conn) RemoteAddr() net.Addr {
	v, err := c.sock.Peer()
	if err != nil {
		return nil
	}
	return sockaddr.ToNetAddr(v, c.network())
}

// SetDeadline implements net.Conn.
func (c *Conn) SetDeadline(t time.Time) error {
	if err := c.SetReadDeadline(t); err != nil {
		return err
	}
	return c.SetWriteDeadline(t)
}

// SetReadDeadline implements net.Conn.
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.setTimeout(unix.SO_RCVTIMEO, t)
}

// SetWriteDeadline implements net.Conn.
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.setTimeout(unix.SO_SNDTIMEO, t)
}

// setTimeout converts an absolute deadline to the kernel's relative
// timeout. The zero time clears the timeout; a deadline already in the
// past degrades to the shortest expressible timeout.
func (c *Conn) setTimeout(option int, t time.Time) error {
	var d time.Duration
	if !t.IsZero() {
		d = time.Until(t)
		if d <= 0 {
			d = time.Microsecond
		}
	}
	return c.sock.SetTimeout(option, d)
}

func (c *Conn) network() string {
	if c.sock.Type() == sockaddr.TypeDatagram {
		return "udp"
	}
	return "tcp"
}

var _ net.Conn = (*Conn)(nil)
