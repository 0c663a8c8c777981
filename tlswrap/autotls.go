package tlswrap

import (
	"crypto/tls"
	"net"

	"golang.org/x/crypto/acme/autocert"
)

// AutoTLS obtains certificates automatically via ACME, grounded on the
// teacher's App.AutoHTTPS for non-localhost domains.
type AutoTLS struct {
	manager *autocert.Manager
}

func NewAutoTLS(cacheDir string, domains ...string) *AutoTLS {
	return &AutoTLS{
		manager: &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(domains...),
			Cache:      autocert.DirCache(cacheDir),
		},
	}
}

func (a *AutoTLS) Wrap(conn net.Conn) (net.Conn, error) {
	tlsConn := tls.Server(conn, a.manager.TLSConfig())
	if err := tlsConn.Handshake(); err != nil {
		return nil, err
	}

	return tlsConn, nil
}

// HTTPHandler returns the underlying autocert.Manager; its own HTTPHandler
// method serves ACME HTTP-01 challenges for an embedder serving plain HTTP
// on :80 alongside this TLS listener.
func (a *AutoTLS) HTTPHandler() *autocert.Manager {
	return a.manager
}
