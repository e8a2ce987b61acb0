//go:build linux || darwin

package sockets

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sockets/resolve"
	"github.com/opd-ai/sockets/sockaddr"
	"github.com/opd-ai/sockets/socket"
)

// DefaultBacklog is the listen backlog the convenience constructors use.
const DefaultBacklog = 128

// DialStream resolves host and service and connects a stream socket to
// the first usable candidate, trying each candidate on a fresh descriptor
// and accumulating every failure.
func DialStream(ctx context.Context, host, service string) (*socket.Socket, error) {
	return dial(ctx, host, service, sockaddr.TypeStream)
}

// DialDatagram is DialStream for datagram sockets; the connect fixes the
// default destination without a handshake.
func DialDatagram(ctx context.Context, host, service string) (*socket.Socket, error) {
	return dial(ctx, host, service, sockaddr.TypeDatagram)
}

func dial(ctx context.Context, host, service string, sotype sockaddr.Type) (*socket.Socket, error) {
	candidates, err := resolve.Resolve(ctx, host, service, &resolve.AddrInfo{SockType: sotype})
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, ai := range candidates {
		s, err := socket.NewFromAddrInfo(ai)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.Connect(ai.Addr); err != nil {
			_ = s.Close()
			errs = append(errs, err)
			continue
		}

		logrus.WithFields(logrus.Fields{
			"function": "dial",
			"address":  ai.Addr.String(),
			"type":     sotype.String(),
		}).Debug("Connected")

		return s, nil
	}
	return nil, &socket.AddrExhaustedError{Op: "connect", Errs: errs}
}

// ListenStream resolves host and service with passive semantics, binds a
// stream socket to the first usable candidate and marks it listening. An
// empty host binds the wildcard address.
func ListenStream(ctx context.Context, host, service string, backlog int) (*socket.Socket, error) {
	s, err := listen(ctx, host, service, sockaddr.TypeStream)
	if err != nil {
		return nil, err
	}
	if err := s.Listen(backlog); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// ListenPacket resolves host and service with passive semantics and binds
// a datagram socket to the first usable candidate.
func ListenPacket(ctx context.Context, host, service string) (*socket.Socket, error) {
	return listen(ctx, host, service, sockaddr.TypeDatagram)
}

func listen(ctx context.Context, host, service string, sotype sockaddr.Type) (*socket.Socket, error) {
	candidates, err := resolve.Resolve(ctx, host, service, &resolve.AddrInfo{
		Flags:    resolve.FlagPassive,
		SockType: sotype,
	})
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, ai := range candidates {
		s, err := socket.NewFromAddrInfo(ai)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.Bind(ai.Addr); err != nil {
			_ = s.Close()
			errs = append(errs, err)
			continue
		}

		logrus.WithFields(logrus.Fields{
			"function": "listen",
			"address":  ai.Addr.String(),
			"type":     sotype.String(),
		}).Debug("Bound")

		return s, nil
	}
	return nil, &socket.AddrExhaustedError{Op: "bind", Errs: errs}
}
