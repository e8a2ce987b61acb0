//go:build darwin

package resolve

import (
	"github.com/opd-ai/sockets/sockaddr"
)

// pointToPointPeer reports no peer: golang.org/x/sys/unix carries no
// ifreq ioctl helpers on this platform.
func pointToPointPeer(string) sockaddr.Value {
	return nil
}
