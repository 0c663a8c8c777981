// Package netio wraps a net.Conn (plain or TLS-upgraded) into the small
// Read/Unread/Write/Close contract the wire codec and body readers need,
// applying read/write deadlines per call the way the teacher's
// internal/server/tcp.client does.
package netio

import (
	"net"
	"time"
)

// Client is the byte-level stream the connection engine and wire codec
// operate on. It is deliberately narrower than net.Conn: no deadlines
// exposed, since those are policy the Client applies internally from its
// configured timeouts.
type Client interface {
	Read() ([]byte, error)
	Unread([]byte)
	Write([]byte) error
	RemoteAddr() net.Addr
	Close() error
}

type client struct {
	conn         net.Conn
	unreader     Unreader
	buf          []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// New wraps conn. buf is the scratch read buffer, sized per
// config.NET.ReadBufferSize and reused for the lifetime of the connection.
func New(conn net.Conn, buf []byte, readTimeout, writeTimeout time.Duration) Client {
	return &client{
		conn:         conn,
		buf:          buf,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (c *client) Read() ([]byte, error) {
	return c.unreader.PendingOr(func() ([]byte, error) {
		if c.readTimeout > 0 {
			if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
				return nil, err
			}
		}

		n, err := c.conn.Read(c.buf)
		if n == 0 {
			return nil, err
		}

		// err may be non-nil (e.g. io.EOF) alongside n > 0; hand the bytes
		// back and let the caller see the error on the next call via the
		// zero-length read above, matching net.Conn's own contract.
		return c.buf[:n], nil
	})
}

func (c *client) Unread(b []byte) {
	c.unreader.Unread(b)
}

func (c *client) Write(b []byte) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}

	_, err := c.conn.Write(b)
	return err
}

func (c *client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *client) Close() error {
	return c.conn.Close()
}
