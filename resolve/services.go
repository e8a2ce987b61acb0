//go:build linux || darwin

package resolve

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

const servicesPath = "/etc/services"

// serviceName maps a port back to a service name for ReverseResolve. The
// platform service database is consulted first; hosts without a readable
// database fall back to a built-in table of well-known assignments. A
// port in neither reports no service rather than an error.
func serviceName(port uint16) string {
	if name := serviceFromFile(servicesPath, port); name != "" {
		return name
	}
	return wellKnownServices[port]
}

func serviceFromFile(path string, port uint16) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	return scanServices(f, port)
}

// scanServices walks a services(5) database: one "name port/proto"
// record per line, with comments and aliases ignored. The first record
// matching the port wins regardless of protocol.
func scanServices(r io.Reader, port uint16) string {
	want := strconv.Itoa(int(port))
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		portProto, _, _ := strings.Cut(fields[1], "/")
		if portProto == want {
			return fields[0]
		}
	}
	return ""
}

// wellKnownServices is the fallback table for hosts without a service
// database.
var wellKnownServices = map[uint16]string{
	7:    "echo",
	20:   "ftp-data",
	21:   "ftp",
	22:   "ssh",
	23:   "telnet",
	25:   "smtp",
	53:   "domain",
	80:   "http",
	110:  "pop3",
	123:  "ntp",
	143:  "imap",
	443:  "https",
	587:  "submission",
	993:  "imaps",
	995:  "pop3s",
	3306: "mysql",
	5432: "postgresql",
	6379: "redis",
}
