//go:build !unix

package acceptor

import "net"

// listenTCP falls back to a plain listener outside unix: golang.org/x/sys
// only exposes the raw socket calls listenTCP's unix build uses via
// golang.org/x/sys/unix, and Windows has no equivalent portable backlog
// knob in this module's dependency set. SO_REUSEADDR/backlog tuning is a
// unix-only refinement here, matching the split hexinfra-gorox itself
// keeps between its net_linux.go/net_freebsd.go and net_windows.go.
func listenTCP(address string, _ int) (net.Listener, error) {
	return net.Listen("tcp", address)
}
