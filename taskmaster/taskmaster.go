// Package taskmaster implements the concurrency-policy contract (spec §4.3)
// and its two mandatory strategies.
package taskmaster

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/originhttp/core/internal/corelog"
)

// AcceptorHandle is the narrow slice of Acceptor a Taskmaster needs: enough
// to run the accept loop and hand connections off, without importing the
// acceptor package (which itself depends on taskmaster).
type AcceptorHandle interface {
	Accept() (net.Conn, error)
	ShuttingDown() bool
	BeginConnection()
	EndConnection()
	ServeConnection(net.Conn)
	RejectConnection(net.Conn)
}

// Taskmaster decides where each accepted connection runs (spec §4.3).
type Taskmaster interface {
	ExecuteAcceptor(a AcceptorHandle)
	HandleIncomingConnection(a AcceptorHandle, conn net.Conn)
	Shutdown()
}

// SingleThreaded runs the accept loop on the caller and processes every
// connection inline - no worker fan-out, no soft-drain bookkeeping needed
// beyond what the Acceptor itself already does.
type SingleThreaded struct{}

func (SingleThreaded) ExecuteAcceptor(a AcceptorHandle) {
	runAcceptLoop(a, func(conn net.Conn) {
		a.ServeConnection(conn)
	})
}

func (SingleThreaded) HandleIncomingConnection(a AcceptorHandle, conn net.Conn) {
	a.ServeConnection(conn)
}

func (SingleThreaded) Shutdown() {}

// ThreadPerConnection spawns one goroutine per accepted connection, capped
// at MaxThreadCount live workers; beyond the cap, new connections are
// rejected with 503 (spec §4.3). Grounded on the teacher's
// internal/server/tcp.Server accept-loop + sync.WaitGroup pattern.
type ThreadPerConnection struct {
	MaxThreadCount int
	// MaxAcceptCount, if > 0, rejects with 503 every connection after that
	// many have been admitted across the Taskmaster's lifetime.
	MaxAcceptCount int

	mu       sync.Mutex
	live     int
	accepted int
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func (t *ThreadPerConnection) ExecuteAcceptor(a AcceptorHandle) {
	go runAcceptLoop(a, func(conn net.Conn) {
		t.HandleIncomingConnection(a, conn)
	})
}

func (t *ThreadPerConnection) HandleIncomingConnection(a AcceptorHandle, conn net.Conn) {
	if t.stopped.Load() {
		a.RejectConnection(conn)
		return
	}

	t.mu.Lock()
	if t.MaxAcceptCount > 0 && t.accepted >= t.MaxAcceptCount {
		t.mu.Unlock()
		a.RejectConnection(conn)
		return
	}

	if t.MaxThreadCount > 0 && t.live >= t.MaxThreadCount {
		t.mu.Unlock()
		a.RejectConnection(conn)
		return
	}

	t.live++
	t.accepted++
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			t.mu.Lock()
			t.live--
			t.mu.Unlock()
		}()

		a.ServeConnection(conn)
	}()
}

func (t *ThreadPerConnection) Shutdown() {
	t.stopped.Store(true)
}

func runAcceptLoop(a AcceptorHandle, dispatch func(net.Conn)) {
	for {
		if a.ShuttingDown() {
			return
		}

		conn, err := a.Accept()
		if err != nil {
			if a.ShuttingDown() {
				return
			}

			corelog.Printf("accept: %v", err)
			continue
		}

		dispatch(conn)
	}
}
