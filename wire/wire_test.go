package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/originhttp/core/internal/netio"
)

func TestParseRequestLineHTTP11(t *testing.T) {
	client := netio.NewDummy([]byte("GET /hello?x=1 HTTP/1.1\r\n"))

	rl, err := ParseRequestLine(client, 1024)
	if err != nil {
		t.Fatalf("ParseRequestLine: %v", err)
	}

	if rl.Method != "GET" || rl.URI != "/hello?x=1" || rl.Protocol != "HTTP/1.1" {
		t.Fatalf("got %+v", rl)
	}
}

func TestParseRequestLineHTTP09(t *testing.T) {
	client := netio.NewDummy([]byte("GET /old\r\n"))

	rl, err := ParseRequestLine(client, 1024)
	if err != nil {
		t.Fatalf("ParseRequestLine: %v", err)
	}

	if rl.Protocol != "" || !IsHTTP09(rl.Protocol) {
		t.Fatalf("expected HTTP/0.9 (empty protocol), got %+v", rl)
	}
}

func TestParseRequestLineCleanEOF(t *testing.T) {
	client := netio.NewDummy()

	rl, err := ParseRequestLine(client, 1024)
	if err != nil || rl != nil {
		t.Fatalf("expected (nil, nil) on clean EOF, got (%+v, %v)", rl, err)
	}
}

func TestParseHeadersWithObsFold(t *testing.T) {
	raw := "Host: example.com\r\nX-Long: first\r\n second\r\n\r\n"
	client := netio.NewDummy([]byte(raw))

	h, err := ParseHeaders(client, 1024, 10, nil)
	if err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}

	if v, _ := h.Get("Host"); v != "example.com" {
		t.Fatalf("Host = %q", v)
	}

	if v, _ := h.Get("X-Long"); v != "first second" {
		t.Fatalf("X-Long = %q, want folded continuation joined by a space", v)
	}
}

func TestChunkedRoundTrip(t *testing.T) {
	client := netio.NewDummy()
	w := NewChunkedWriter(client)

	if err := w.WriteChunk([]byte("hello ")); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	if err := w.WriteChunk([]byte("world")); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reader := NewChunkedReader(netio.NewDummy(splitByLine(client.Written)...), ^uint64(0))

	var body []byte
	for {
		chunk, err := reader.Read()
		body = append(body, chunk...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}

	if string(body) != "hello world" {
		t.Fatalf("decoded body = %q, want %q", body, "hello world")
	}
}

// splitByLine feeds the encoded chunk stream to the Dummy client as a single
// blob - chunkedbody.Parser handles arbitrary framing across reads, so one
// chunk is enough to exercise the round trip.
func splitByLine(b []byte) [][]byte {
	return [][]byte{bytes.Clone(b)}
}
