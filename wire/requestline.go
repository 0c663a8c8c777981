package wire

import (
	"bytes"

	"github.com/originhttp/core/headers"
	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/status"
)

// RequestLine is the tokenized first line of an HTTP request.
type RequestLine struct {
	Method, URI, Protocol string
}

// ParseRequestLine reads and tokenizes the request line (spec §4.1).
//
// A nil RequestLine with a nil error means clean EOF - no request came in,
// the connection loop should exit. status.ErrBadRequest is returned for any
// non-printable-ASCII byte or a missing URI. A missing protocol is not an
// error: it means HTTP/0.9, and RequestLine.Protocol is left empty.
func ParseRequestLine(client netio.Client, maxLen int) (*RequestLine, error) {
	line, err := readLine(client, maxLen)
	if err != nil {
		return nil, err
	}

	if line == nil {
		return nil, nil
	}

	for _, b := range line {
		if b < 0x20 || b > 0x7E {
			return nil, status.ErrBadRequest
		}
	}

	// line backs a buffer allocated fresh by this ParseRequestLine call and
	// never reused afterwards, so B2S-aliasing each field instead of
	// copying into a new string is safe for as long as the RequestLine is.
	fields := bytes.Fields(line)
	switch len(fields) {
	case 0:
		return nil, status.ErrBadRequest
	case 1:
		return nil, status.ErrBadRequest
	case 2:
		return &RequestLine{Method: headers.B2S(fields[0]), URI: headers.B2S(fields[1])}, nil
	default:
		return &RequestLine{Method: headers.B2S(fields[0]), URI: headers.B2S(fields[1]), Protocol: headers.B2S(fields[2])}, nil
	}
}

// IsHTTP11 and IsHTTP10 classify the parsed protocol token, treating an
// empty token (no protocol on the request line at all) as HTTP/0.9.
func IsHTTP11(protocol string) bool { return protocol == "HTTP/1.1" }
func IsHTTP10(protocol string) bool { return protocol == "HTTP/1.0" }
func IsHTTP09(protocol string) bool { return protocol == "" }
