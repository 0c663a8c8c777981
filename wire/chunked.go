// Chunked framing: reading uses github.com/indigo-web/chunkedbody (the
// teacher's own dependency, see internal/transport/http1/body.go); writing
// is a direct RFC 7230 §4.1 encoder since chunkedbody exposes only a parser.
package wire

import (
	"io"
	"strconv"

	"github.com/indigo-web/chunkedbody"
	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/status"
)

// ChunkedReader decodes an input_chunking-enabled body stream.
type ChunkedReader struct {
	client   netio.Client
	parser   *chunkedbody.Parser
	maxSize  uint64
	received uint64
	eof      bool
}

func NewChunkedReader(client netio.Client, maxSize uint64) *ChunkedReader {
	return &ChunkedReader{
		client:  client,
		parser:  chunkedbody.NewParser(chunkedbody.DefaultSettings()),
		maxSize: maxSize,
	}
}

// Read returns the next decoded chunk of body data. io.EOF marks the final
// chunk (0-length terminator consumed).
func (c *ChunkedReader) Read() ([]byte, error) {
	if c.eof {
		return nil, io.EOF
	}

	data, err := c.client.Read()
	if err != nil {
		return nil, err
	}

	chunk, extra, perr := c.parser.Parse(data, false)
	switch perr {
	case nil:
	case io.EOF:
		c.eof = true
	default:
		return nil, status.ErrBadChunk
	}

	c.received += uint64(len(chunk))
	if c.received > c.maxSize {
		return nil, status.ErrBodyTooLarge
	}

	if len(extra) > 0 {
		c.client.Unread(extra)
	}

	return chunk, perr
}

// ChunkedWriter encodes RFC 7230 §4.1 chunks for output_chunking.
type ChunkedWriter struct {
	client netio.Client
	closed bool
}

func NewChunkedWriter(client netio.Client) *ChunkedWriter {
	return &ChunkedWriter{client: client}
}

// WriteChunk emits one length-prefixed chunk. A zero-length write is a
// no-op - the terminating zero-chunk is only ever written by Close.
func (w *ChunkedWriter) WriteChunk(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	buf := make([]byte, 0, len(data)+16)
	buf = strconv.AppendInt(buf, int64(len(data)), 16)
	buf = append(buf, '\r', '\n')
	buf = append(buf, data...)
	buf = append(buf, '\r', '\n')

	return w.client.Write(buf)
}

// Close flushes the terminating "0\r\n\r\n". Disabling output chunking
// without calling Close would desync the stream (spec §4.1 "Disabling
// flushes pending output"), so the connection engine always calls it before
// tearing down chunked framing.
func (w *ChunkedWriter) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	return w.client.Write([]byte("0\r\n\r\n"))
}
