package engine

import (
	"io"
	"strings"
	"testing"

	"github.com/originhttp/core/config"
	"github.com/originhttp/core/handler"
	"github.com/originhttp/core/internal/netio"
	"github.com/originhttp/core/logging"
	"github.com/originhttp/core/request"
)

func noopHooks() Hooks {
	return Hooks{
		BeginRequest: func() {},
		EndRequest:   func() {},
		ShuttingDown: func() bool { return false },
	}
}

func TestServeOneKnownLengthKeepAlive(t *testing.T) {
	cfg := config.Default()

	h := handler.Func(func(req *request.Request) (handler.Result, error) {
		return handler.Handled("hi"), nil
	})

	e := New(cfg, h, handler.DefaultErrorGenerator{}, logging.Nop{}, logging.Nop{}, nil, noopHooks())

	client := netio.NewDummy([]byte("GET /hello HTTP/1.1\r\nHost: x\r\n\r\n"))

	closeAfter, err := e.serveOne(client)
	if err != nil {
		t.Fatalf("serveOne: %v", err)
	}

	out := string(client.Written)
	if !strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("response did not start with 200 status line: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 2\r\n") {
		t.Fatalf("missing Content-Length: %q", out)
	}
	if !strings.Contains(out, "Connection: keep-alive\r\n") {
		t.Fatalf("expected keep-alive on HTTP/1.1 with no Connection: close, got %q", out)
	}
	if !strings.HasSuffix(out, "hi") {
		t.Fatalf("expected body 'hi' at the end, got %q", out)
	}
	if closeAfter {
		t.Fatal("expected the connection to stay open on a known-length keep-alive response")
	}
}

func TestServeOneConnectionCloseForcesClose(t *testing.T) {
	cfg := config.Default()

	h := handler.Func(func(req *request.Request) (handler.Result, error) {
		return handler.Handled("bye"), nil
	})

	e := New(cfg, h, handler.DefaultErrorGenerator{}, logging.Nop{}, logging.Nop{}, nil, noopHooks())

	client := netio.NewDummy([]byte("GET /bye HTTP/1.1\r\nConnection: close\r\n\r\n"))

	closeAfter, err := e.serveOne(client)
	if err != nil {
		t.Fatalf("serveOne: %v", err)
	}

	if !closeAfter {
		t.Fatal("expected closeAfter=true when the client sent Connection: close")
	}
	if !strings.Contains(string(client.Written), "Connection: close\r\n") {
		t.Fatalf("expected an echoed Connection: close, got %q", client.Written)
	}
}

func TestServeOneNotHandledAnswers404(t *testing.T) {
	cfg := config.Default()

	h := handler.Func(func(req *request.Request) (handler.Result, error) {
		return handler.NotHandled, nil
	})

	e := New(cfg, h, handler.DefaultErrorGenerator{}, logging.Nop{}, logging.Nop{}, nil, noopHooks())

	client := netio.NewDummy([]byte("GET /missing HTTP/1.1\r\n\r\n"))

	if _, err := e.serveOne(client); err != nil {
		t.Fatalf("serveOne: %v", err)
	}

	if !strings.HasPrefix(string(client.Written), "HTTP/1.1 404 Not Found\r\n") {
		t.Fatalf("expected a 404 status line, got %q", client.Written)
	}
}

func TestServeOnePanicAnswers500(t *testing.T) {
	cfg := config.Default()

	h := handler.Func(func(req *request.Request) (handler.Result, error) {
		panic("boom")
	})

	e := New(cfg, h, handler.DefaultErrorGenerator{}, logging.Nop{}, logging.Nop{}, nil, noopHooks())

	client := netio.NewDummy([]byte("GET /panics HTTP/1.1\r\n\r\n"))

	if _, err := e.serveOne(client); err != nil {
		t.Fatalf("serveOne: %v", err)
	}

	if !strings.HasPrefix(string(client.Written), "HTTP/1.1 500 Internal Server Error\r\n") {
		t.Fatalf("expected a 500 status line after a handler panic, got %q", client.Written)
	}
}

func TestServeOneChunkedRequestBody(t *testing.T) {
	cfg := config.Default()

	var received string
	h := handler.Func(func(req *request.Request) (handler.Result, error) {
		body, err := req.BodyOctets()
		if err != nil {
			return handler.Abort(req, 400), nil
		}

		received = string(body)

		return handler.Handled("ok"), nil
	})

	e := New(cfg, h, handler.DefaultErrorGenerator{}, logging.Nop{}, logging.Nop{}, nil, noopHooks())

	raw := "POST /upload HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"5\r\nhello\r\n0\r\n\r\n"
	client := netio.NewDummy([]byte(raw))

	if _, err := e.serveOne(client); err != nil {
		t.Fatalf("serveOne: %v", err)
	}

	if received != "hello" {
		t.Fatalf("handler received body %q, want %q", received, "hello")
	}
}

func TestServeOneCleanEOFReturnsIOEOF(t *testing.T) {
	cfg := config.Default()
	h := handler.Func(func(req *request.Request) (handler.Result, error) {
		return handler.Handled(""), nil
	})

	e := New(cfg, h, handler.DefaultErrorGenerator{}, logging.Nop{}, logging.Nop{}, nil, noopHooks())

	client := netio.NewDummy()

	closeAfter, err := e.serveOne(client)
	if err != io.EOF {
		t.Fatalf("expected io.EOF on a clean connection close, got %v", err)
	}
	if !closeAfter {
		t.Fatal("expected closeAfter=true on clean EOF")
	}
}
