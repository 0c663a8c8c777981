package wire

import (
	"io"

	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/status"
)

// PlainBodyReader reads exactly Content-Length bytes off client, pushing
// back anything read past the boundary so the next request starts cleanly.
// Grounded on the teacher's plainBodyReader in internal/transport/http1/body.go.
type PlainBodyReader struct {
	client     netio.Client
	maxLen     uint64
	bytesLeft  uint64
}

func NewPlainBodyReader(client netio.Client, contentLength int64, maxLen uint64) *PlainBodyReader {
	return &PlainBodyReader{client: client, maxLen: maxLen, bytesLeft: uint64(contentLength)}
}

func (p *PlainBodyReader) Read() ([]byte, error) {
	if p.bytesLeft == 0 {
		return nil, io.EOF
	}

	data, err := p.client.Read()
	if err != nil {
		return nil, err
	}

	if p.bytesLeft > p.maxLen {
		return nil, status.ErrBodyTooLarge
	}

	var body []byte
	if dataLen := uint64(len(data)); dataLen >= p.bytesLeft {
		body, data = data[:p.bytesLeft], data[p.bytesLeft:]
		if len(data) > 0 {
			p.client.Unread(data)
		}
		p.bytesLeft = 0
		err = io.EOF
	} else {
		p.bytesLeft -= dataLen
		body = data
	}

	return body, err
}
