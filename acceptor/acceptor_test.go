package acceptor

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/originhttp/core/config"
	"github.com/originhttp/core/handler"
	"github.com/originhttp/core/request"
	"github.com/originhttp/core/taskmaster"
)

// newTestAcceptor uses ThreadPerConnection instead of the SingleThreaded
// default so Start returns immediately - SingleThreaded runs the accept
// loop on the caller's own goroutine by design, which would block these
// tests forever.
func newTestAcceptor() *Acceptor {
	a := New("127.0.0.1:0", config.Default(), handler.Func(echoHandler))
	a.Taskmaster = &taskmaster.ThreadPerConnection{MaxThreadCount: 8}

	return a
}

func echoHandler(req *request.Request) (handler.Result, error) {
	return handler.Handled("pong"), nil
}

func TestStartTwiceFails(t *testing.T) {
	a := newTestAcceptor()

	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer a.Stop(false)

	if err := a.Start(); err == nil {
		t.Fatal("expected the second Start call to fail")
	}
}

func TestStopNotStartedFails(t *testing.T) {
	a := newTestAcceptor()

	if err := a.Stop(false); err == nil {
		t.Fatal("expected Stop before Start to fail")
	}
}

func TestSoftStopDrainsInFlight(t *testing.T) {
	a := newTestAcceptor()
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	a.BeginConnection()

	done := make(chan struct{})
	go func() {
		_ = a.Stop(true)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Stop(true) returned before the in-flight request finished")
	case <-time.After(50 * time.Millisecond):
	}

	a.EndConnection()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop(true) never returned after the in-flight request finished")
	}
}

func TestRejectConnectionWrites503(t *testing.T) {
	a := newTestAcceptor()

	server, client := net.Pipe()
	defer client.Close()

	go a.RejectConnection(server)

	buf := make([]byte, 256)
	client.SetReadDeadline(time.Now().Add(time.Second))
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("reading rejection response: %v", err)
	}

	if !strings.HasPrefix(string(buf[:n]), "HTTP/1.1 503") {
		t.Fatalf("expected a 503 status line, got %q", buf[:n])
	}
}
