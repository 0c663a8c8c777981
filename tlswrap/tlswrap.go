// Package tlswrap implements the TLSWrapper plug-in (spec §3 TLSConfig,
// §4.5 step 1: "wrap socket with TLS if configured").
package tlswrap

import (
	"crypto/tls"
	"net"
	"path/filepath"
)

// Config is the immutable triple spec §3 describes; paths are canonicalized
// at construction with filepath.Abs, matching the teacher's habit of
// resolving cert/key paths once up front in HTTPS()/AutoHTTPS().
type Config struct {
	CertFile string
	KeyFile  string
	// KeyPassword is carried with the pair but not read by FromFiles, which
	// loads the key with the stdlib LoadX509KeyPair and does not decrypt
	// encrypted private keys. An encrypted key has to be decoded into a
	// tls.Config outside this package and passed to FromTLSConfig.
	KeyPassword string
}

func NewConfig(certFile, keyFile string) (Config, error) {
	cert, err := filepath.Abs(certFile)
	if err != nil {
		return Config{}, err
	}

	key, err := filepath.Abs(keyFile)
	if err != nil {
		return Config{}, err
	}

	return Config{CertFile: cert, KeyFile: key}, nil
}

// Wrapper upgrades a plain byte stream to TLS. The Acceptor calls it once
// per accepted connection, before any HTTP framing begins.
type Wrapper interface {
	Wrap(conn net.Conn) (net.Conn, error)
}

// FromFiles builds a Wrapper from a certificate/key pair on disk, grounded
// on the teacher's App.HTTPS().
func FromFiles(cfg Config) (Wrapper, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, err
	}

	return &manual{tlsConfig: &tls.Config{Certificates: []tls.Certificate{cert}}}, nil
}

// FromTLSConfig wraps a caller-supplied *tls.Config directly.
func FromTLSConfig(c *tls.Config) Wrapper {
	return &manual{tlsConfig: c}
}

type manual struct {
	tlsConfig *tls.Config
}

func (m *manual) Wrap(conn net.Conn) (net.Conn, error) {
	tlsConn := tls.Server(conn, m.tlsConfig)
	if err := tlsConn.Handshake(); err != nil {
		return nil, err
	}

	return tlsConn, nil
}
