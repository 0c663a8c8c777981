package request

import (
	"io"
	"testing"

	"github.com/originhttp/core/config"
)

type staticReader struct {
	data []byte
	sent bool
}

func (s *staticReader) Read() ([]byte, error) {
	if s.sent {
		return nil, io.EOF
	}

	s.sent = true

	return s.data, nil
}

func newTestRequest(body string) *Request {
	cfg := config.Default()
	r := New(cfg)
	r.Reset()
	r.HasBody = body != ""
	r.SetRawBody(&staticReader{data: []byte(body)})
	r.Headers.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

func TestBodyOctetsThenPostParametersPanics(t *testing.T) {
	r := newTestRequest("a=1")

	if _, err := r.BodyOctets(); err != nil {
		t.Fatalf("BodyOctets: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic switching from BodyOctets to PostParameters")
		}
	}()

	_, _ = r.PostParameters()
}

func TestPostParametersIdempotent(t *testing.T) {
	r := newTestRequest("a=1&b=2")

	f1, err := r.PostParameters()
	if err != nil {
		t.Fatalf("PostParameters: %v", err)
	}

	f2, err := r.PostParameters()
	if err != nil {
		t.Fatalf("PostParameters (second call): %v", err)
	}

	if f1 != f2 {
		t.Fatal("PostParameters should return the same *form.Form on repeated calls")
	}

	v, ok := f1.Get("a")
	if !ok || v != "1" {
		t.Fatalf("Get(a) = %q, %v", v, ok)
	}
}

func TestBodyStreamThenBodyOctetsPanics(t *testing.T) {
	r := newTestRequest("hello")

	if _, err := r.BodyStream(); err != nil {
		t.Fatalf("BodyStream: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic switching from BodyStream to BodyOctets")
		}
	}()

	_, _ = r.BodyOctets()
}

func TestDrainBodyWithoutAccess(t *testing.T) {
	r := newTestRequest("unread bytes")

	if err := r.DrainBody(); err != nil {
		t.Fatalf("DrainBody: %v", err)
	}

	if err := r.DrainBody(); err != nil {
		t.Fatalf("DrainBody (second call, already consumed): %v", err)
	}
}
