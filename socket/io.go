//go:build linux || darwin

package socket

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/opd-ai/sockets/sockaddr"
)

// Message is the result of one receive: the exact bytes transferred plus
// the sender's address when the socket type reports one. From is nil on
// connected stream sockets.
type Message struct {
	Data []byte
	From sockaddr.Value
}

// Send transmits the whole buffer before returning successfully. Each
// underlying syscall carries at most maxChunk bytes (no cap when maxChunk
// is zero or negative); a short write only advances the cursor and the
// loop continues. The returned count is the number of bytes the kernel
// actually accepted, which is authoritative even when an error cuts the
// loop short.
func (s *Socket) Send(p []byte, flags, maxChunk int) (int, error) {
	return s.sendLoop(p, flags, maxChunk, nil)
}

// SendTo is Send for connectionless sockets: every chunk targets the same
// explicit destination address.
func (s *Socket) SendTo(p []byte, flags, maxChunk int, dst sockaddr.Value) (int, error) {
	sa, err := sockaddr.ToSockaddr(dst)
	if err != nil {
		return 0, err
	}
	return s.sendLoop(p, flags, maxChunk, sa)
}

func (s *Socket) sendLoop(p []byte, flags, maxChunk int, to unix.Sockaddr) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	if len(p) == 0 {
		// zero-byte transmissions are meaningful on datagram sockets
		_, err := unix.SendmsgN(s.fd, nil, nil, to, flags)
		if err != nil {
			return 0, newSyscallError("send", err)
		}
		return 0, nil
	}

	sent := 0
	for sent < len(p) {
		end := len(p)
		if maxChunk > 0 && sent+maxChunk < end {
			end = sent + maxChunk
		}
		n, err := unix.SendmsgN(s.fd, p[sent:end], nil, to, flags)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return sent, newSyscallError("send", err)
		}
		sent += n
	}
	return sent, nil
}

// Recv issues a single receive of up to maxSize bytes. Three outcomes are
// distinguished:
//
//   - a stream socket reading zero bytes means the peer shut down its
//     write side: Recv returns a nil Message and a nil error, exactly once
//     per closed stream;
//   - a non-blocking descriptor with nothing pending fails with
//     ErrWouldBlock, which the caller retries after a readiness wait;
//   - everything else is data: a Message with the exact bytes received,
//     possibly empty on datagram sockets, carrying the sender's address
//     when the kernel reports one.
//
// A zero maxSize yields an empty present Message: zero bytes into an
// empty buffer is not evidence of a closed peer.
func (s *Socket) Recv(maxSize, flags int) (*Message, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if maxSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, maxSize)
	}

	buf := make([]byte, maxSize)
	n, sa, err := unix.Recvfrom(s.fd, buf, flags)
	for err == unix.EINTR {
		n, sa, err = unix.Recvfrom(s.fd, buf, flags)
	}
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return nil, fmt.Errorf("recv: %w", ErrWouldBlock)
	}
	if err != nil {
		return nil, newSyscallError("recv", err)
	}

	if n == 0 && maxSize > 0 && s.sotype == sockaddr.TypeStream {
		// orderly peer shutdown, not an error and not an empty message
		return nil, nil
	}

	from, _ := sockaddr.FromSockaddr(sa)
	return &Message{Data: buf[:n:n], From: from}, nil
}
